package service

import (
	"context"

	"github.com/GonzaMon/muebles-api/internal/errs"
	"github.com/GonzaMon/muebles-api/internal/model"
	"github.com/GonzaMon/muebles-api/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// MsgMuebleNoRegistrado is returned for any codigo that matches no mueble,
// including codigos that are not numbers.
const MsgMuebleNoRegistrado = "El código no corresponde a un mueble registrado"

// MuebleStore is the persistence the service needs.
type MuebleStore interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.Mueble, error)
	FindByCodigo(ctx context.Context, codigo int64) (model.Mueble, error)
	Create(ctx context.Context, data model.MuebleData) (model.Mueble, error)
	Update(ctx context.Context, codigo int64, data model.MuebleData) (model.Mueble, error)
	Delete(ctx context.Context, codigo int64) error
}

type MuebleService struct {
	store MuebleStore
}

func NewMuebleService(store MuebleStore) *MuebleService {
	return &MuebleService{store: store}
}

func errMuebleNoRegistrado() *errs.HTTPError {
	code := "MUEBLE_NOT_FOUND"
	return errs.NewBadRequestError(MsgMuebleNoRegistrado, true, &code, nil)
}

// parseCodigo maps the raw path value onto a codigo. Unparseable values
// are reported exactly like unknown ones.
func parseCodigo(raw string) (int64, error) {
	codigo, ok := model.ParseCodigo(raw)
	if !ok {
		return 0, errMuebleNoRegistrado()
	}
	return codigo, nil
}

// storeError translates the repository's not-found sentinel; every other
// error is left for the global error handler.
func storeError(err error) error {
	if errors.Is(err, repository.ErrMuebleNotFound) {
		return errMuebleNoRegistrado()
	}
	return err
}

// List returns the muebles matching filter, never nil.
func (s *MuebleService) List(ctx context.Context, filter model.ListFilter) ([]model.Mueble, error) {
	muebles, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if muebles == nil {
		muebles = []model.Mueble{}
	}

	zerolog.Ctx(ctx).Debug().
		Str("filter", filter.Kind.String()).
		Int("count", len(muebles)).
		Msg("muebles listed")

	return muebles, nil
}

func (s *MuebleService) Get(ctx context.Context, rawCodigo string) (model.Mueble, error) {
	codigo, err := parseCodigo(rawCodigo)
	if err != nil {
		return model.Mueble{}, err
	}

	mueble, err := s.store.FindByCodigo(ctx, codigo)
	if err != nil {
		return model.Mueble{}, storeError(err)
	}
	return mueble, nil
}

// Create stores data under a freshly generated codigo.
func (s *MuebleService) Create(ctx context.Context, data model.MuebleData) (model.Mueble, error) {
	mueble, err := s.store.Create(ctx, data)
	if err != nil {
		return model.Mueble{}, err
	}

	zerolog.Ctx(ctx).Info().Int64("codigo", mueble.Codigo).Msg("mueble created")
	return mueble, nil
}

// Update fully replaces nombre, precio and categoria.
func (s *MuebleService) Update(ctx context.Context, rawCodigo string, data model.MuebleData) (model.Mueble, error) {
	codigo, err := parseCodigo(rawCodigo)
	if err != nil {
		return model.Mueble{}, err
	}

	mueble, err := s.store.Update(ctx, codigo, data)
	if err != nil {
		return model.Mueble{}, storeError(err)
	}

	zerolog.Ctx(ctx).Info().Int64("codigo", codigo).Msg("mueble updated")
	return mueble, nil
}

func (s *MuebleService) Delete(ctx context.Context, rawCodigo string) error {
	codigo, err := parseCodigo(rawCodigo)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, codigo); err != nil {
		return storeError(err)
	}

	zerolog.Ctx(ctx).Info().Int64("codigo", codigo).Msg("mueble deleted")
	return nil
}
