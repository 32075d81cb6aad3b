package repository

import (
	"testing"

	"github.com/GonzaMon/muebles-api/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   model.ListFilter
		contains []string
		args     []any
	}{
		{
			name:     "all",
			filter:   model.ListFilter{Kind: model.FilterAll},
			contains: []string{"ORDER BY codigo ASC"},
		},
		{
			name:     "categoria",
			filter:   model.ListFilter{Kind: model.FilterCategoria, Categoria: "sillas"},
			contains: []string{"WHERE categoria = $1", "ORDER BY nombre ASC"},
			args:     []any{"sillas"},
		},
		{
			name:     "precio desde",
			filter:   model.ListFilter{Kind: model.FilterPrecioDesde, Precio: 60},
			contains: []string{"WHERE precio >= $1", "ORDER BY precio ASC"},
			args:     []any{60.0},
		},
		{
			name:     "precio hasta",
			filter:   model.ListFilter{Kind: model.FilterPrecioHasta, Precio: 100},
			contains: []string{"WHERE precio <= $1", "ORDER BY precio DESC"},
			args:     []any{100.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery(tt.filter)

			assert.Contains(t, query, "FROM muebles")
			for _, fragment := range tt.contains {
				assert.Contains(t, query, fragment)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestBuildListQueryNeverFiltersTwice(t *testing.T) {
	query, _ := buildListQuery(model.ListFilter{Kind: model.FilterCategoria, Categoria: "mesas", Precio: 10})
	assert.NotContains(t, query, "precio >=")
	assert.NotContains(t, query, "precio <=")
}
