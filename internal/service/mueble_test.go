package service

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"testing"

	"github.com/GonzaMon/muebles-api/internal/errs"
	"github.com/GonzaMon/muebles-api/internal/model"
	"github.com/GonzaMon/muebles-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore mirrors the repository semantics in memory.
type memStore struct {
	mu      sync.Mutex
	muebles map[int64]model.Mueble
	err     error
}

func newMemStore() *memStore {
	return &memStore{muebles: make(map[int64]model.Mueble)}
}

func (m *memStore) List(_ context.Context, filter model.ListFilter) ([]model.Mueble, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	var out []model.Mueble
	for _, mb := range m.muebles {
		switch filter.Kind {
		case model.FilterCategoria:
			if mb.Categoria != filter.Categoria {
				continue
			}
		case model.FilterPrecioDesde:
			if mb.Precio < filter.Precio {
				continue
			}
		case model.FilterPrecioHasta:
			if mb.Precio > filter.Precio {
				continue
			}
		}
		out = append(out, mb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

func (m *memStore) FindByCodigo(_ context.Context, codigo int64) (model.Mueble, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mb, ok := m.muebles[codigo]
	if !ok {
		return model.Mueble{}, repository.ErrMuebleNotFound
	}
	return mb, nil
}

func (m *memStore) Create(_ context.Context, data model.MuebleData) (model.Mueble, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.Mueble{}, m.err
	}

	codigo := model.CodigoInicial
	for c := range m.muebles {
		if c >= codigo {
			codigo = c + 1
		}
	}
	mb := data.WithCodigo(codigo)
	m.muebles[codigo] = mb
	return mb, nil
}

func (m *memStore) Update(_ context.Context, codigo int64, data model.MuebleData) (model.Mueble, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.muebles[codigo]; !ok {
		return model.Mueble{}, repository.ErrMuebleNotFound
	}
	mb := data.WithCodigo(codigo)
	m.muebles[codigo] = mb
	return mb, nil
}

func (m *memStore) Delete(_ context.Context, codigo int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.muebles[codigo]; !ok {
		return repository.ErrMuebleNotFound
	}
	delete(m.muebles, codigo)
	return nil
}

func requireNoRegistrado(t *testing.T, err error) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "got %v", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, MsgMuebleNoRegistrado, httpErr.Message)
}

func TestMuebleServiceCodigoGeneration(t *testing.T) {
	svc := NewMuebleService(newMemStore())
	ctx := context.Background()

	first, err := svc.Create(ctx, model.MuebleData{Nombre: "Silla", Precio: 50, Categoria: "sillas"})
	require.NoError(t, err)
	assert.Equal(t, model.CodigoInicial, first.Codigo)

	second, err := svc.Create(ctx, model.MuebleData{Nombre: "Mesa", Precio: 120, Categoria: "mesas"})
	require.NoError(t, err)
	assert.Equal(t, first.Codigo+1, second.Codigo)
}

func TestMuebleServiceUnknownCodigo(t *testing.T) {
	svc := NewMuebleService(newMemStore())
	ctx := context.Background()

	for _, raw := range []string{"999", "abc", "1.5", ""} {
		_, err := svc.Get(ctx, raw)
		requireNoRegistrado(t, err)

		_, err = svc.Update(ctx, raw, model.MuebleData{Nombre: "x", Precio: 1, Categoria: "y"})
		requireNoRegistrado(t, err)

		requireNoRegistrado(t, svc.Delete(ctx, raw))
	}
}

func TestMuebleServiceUpdateKeepsCodigo(t *testing.T) {
	svc := NewMuebleService(newMemStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, model.MuebleData{Nombre: "Silla", Precio: 50, Categoria: "sillas"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "1", model.MuebleData{Nombre: "Sillon", Precio: 90, Categoria: "sillones"})
	require.NoError(t, err)
	assert.Equal(t, model.Mueble{Codigo: created.Codigo, Nombre: "Sillon", Precio: 90, Categoria: "sillones"}, updated)

	got, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestMuebleServiceDeleteThenGet(t *testing.T) {
	svc := NewMuebleService(newMemStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, model.MuebleData{Nombre: "Silla", Precio: 50, Categoria: "sillas"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "1"))
	_, err = svc.Get(ctx, "1")
	requireNoRegistrado(t, err)
}

func TestMuebleServiceListNeverNil(t *testing.T) {
	svc := NewMuebleService(newMemStore())

	muebles, err := svc.List(context.Background(), model.ListFilter{Kind: model.FilterCategoria, Categoria: "nada"})
	require.NoError(t, err)
	assert.NotNil(t, muebles)
	assert.Empty(t, muebles)
}

func TestMuebleServicePropagatesStoreFailure(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("connection refused")
	svc := NewMuebleService(store)

	_, err := svc.List(context.Background(), model.ListFilter{})
	assert.EqualError(t, err, "connection refused")

	_, err = svc.Create(context.Background(), model.MuebleData{Nombre: "a", Precio: 1, Categoria: "b"})
	var httpErr *errs.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}
