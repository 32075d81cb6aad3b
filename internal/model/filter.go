package model

import "fmt"

// FilterKind tags which list filter applies.
type FilterKind int

const (
	// FilterAll returns every mueble, in no particular order.
	FilterAll FilterKind = iota
	// FilterCategoria matches categoria exactly, ordered by nombre ascending.
	FilterCategoria
	// FilterPrecioDesde keeps precio >= bound, ordered by precio ascending.
	FilterPrecioDesde
	// FilterPrecioHasta keeps precio <= bound, ordered by precio descending.
	FilterPrecioHasta
)

func (k FilterKind) String() string {
	switch k {
	case FilterCategoria:
		return "categoria"
	case FilterPrecioDesde:
		return "precio_gte"
	case FilterPrecioHasta:
		return "precio_lte"
	default:
		return "all"
	}
}

// ListFilter selects which muebles a list returns. Exactly one variant is
// active: Categoria is only meaningful for FilterCategoria, Precio only for
// the two price variants.
type ListFilter struct {
	Kind      FilterKind
	Categoria string
	Precio    float64
}

// InvalidFilterError reports a price filter that is not a number.
type InvalidFilterError struct {
	Param string
	Value string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("%s must be numeric, got %q", e.Param, e.Value)
}

// ParseListFilter picks the filter from the raw query values. The first
// non-empty parameter wins, in the order categoria, precio_gte,
// precio_lte; the others are ignored.
func ParseListFilter(categoria, precioGTE, precioLTE string) (ListFilter, error) {
	switch {
	case categoria != "":
		return ListFilter{Kind: FilterCategoria, Categoria: categoria}, nil
	case precioGTE != "":
		return parsePrecioFilter(FilterPrecioDesde, precioGTE)
	case precioLTE != "":
		return parsePrecioFilter(FilterPrecioHasta, precioLTE)
	default:
		return ListFilter{Kind: FilterAll}, nil
	}
}

func parsePrecioFilter(kind FilterKind, raw string) (ListFilter, error) {
	precio, err := ParseNumber(raw)
	if err != nil {
		return ListFilter{}, &InvalidFilterError{Param: kind.String(), Value: raw}
	}
	return ListFilter{Kind: kind, Precio: precio}, nil
}
