// Package model holds the domain types shared by every layer.
package model

import (
	"math"
	"strconv"
	"strings"
)

// CodigoInicial is the codigo assigned to the first mueble of an empty
// collection.
const CodigoInicial int64 = 1

// Mueble is a furniture record, the only entity of the API.
type Mueble struct {
	Codigo    int64   `json:"codigo"`
	Nombre    string  `json:"nombre"`
	Precio    float64 `json:"precio"`
	Categoria string  `json:"categoria"`
}

// MuebleData is the client-supplied part of a Mueble. Create and update
// both replace all three fields.
type MuebleData struct {
	Nombre    string
	Precio    float64
	Categoria string
}

// WithCodigo returns the full record for data.
func (d MuebleData) WithCodigo(codigo int64) Mueble {
	return Mueble{
		Codigo:    codigo,
		Nombre:    d.Nombre,
		Precio:    d.Precio,
		Categoria: d.Categoria,
	}
}

// ParseNumber reads a numeric string the way clients send prices and
// codigos: surrounding blanks are ignored and only finite values are
// accepted.
func ParseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// ParseCodigo converts a path parameter into a codigo. It reports false
// when s is not an integral number, in which case no mueble can match.
func ParseCodigo(s string) (int64, bool) {
	n, err := ParseNumber(s)
	if err != nil || n != math.Trunc(n) || n < -(1<<63) || n >= 1<<63 {
		return 0, false
	}
	return int64(n), true
}
