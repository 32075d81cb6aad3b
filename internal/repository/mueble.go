package repository

import (
	"context"

	"github.com/GonzaMon/muebles-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// ErrMuebleNotFound is returned when no row matches the codigo.
var ErrMuebleNotFound = errors.New("mueble not found")

// codigoLockKey names the advisory lock that serializes codigo generation.
const codigoLockKey int64 = 0x6d7565626c6573 // "muebles"

const (
	selectMuebles = `SELECT codigo, nombre, precio, categoria FROM muebles`

	selectMuebleByCodigo = selectMuebles + ` WHERE codigo = $1`

	nextCodigoQuery = `SELECT COALESCE(MAX(codigo) + 1, $1) FROM muebles`

	insertMueble = `
		INSERT INTO muebles (codigo, nombre, precio, categoria)
		VALUES ($1, $2, $3, $4)
		RETURNING codigo, nombre, precio, categoria`

	updateMueble = `
		UPDATE muebles
		SET nombre = $2, precio = $3, categoria = $4
		WHERE codigo = $1
		RETURNING codigo, nombre, precio, categoria`

	deleteMueble = `DELETE FROM muebles WHERE codigo = $1`
)

// MuebleRepository stores muebles in PostgreSQL. Every method borrows one
// pooled connection and gives it back before returning.
type MuebleRepository struct {
	pool *pgxpool.Pool
}

func NewMuebleRepository(pool *pgxpool.Pool) *MuebleRepository {
	return &MuebleRepository{pool: pool}
}

// buildListQuery renders the SELECT for one filter variant.
func buildListQuery(filter model.ListFilter) (string, []any) {
	switch filter.Kind {
	case model.FilterCategoria:
		return selectMuebles + ` WHERE categoria = $1 ORDER BY nombre ASC`, []any{filter.Categoria}
	case model.FilterPrecioDesde:
		return selectMuebles + ` WHERE precio >= $1 ORDER BY precio ASC`, []any{filter.Precio}
	case model.FilterPrecioHasta:
		return selectMuebles + ` WHERE precio <= $1 ORDER BY precio DESC`, []any{filter.Precio}
	default:
		return selectMuebles + ` ORDER BY codigo ASC`, nil
	}
}

// List returns the muebles matching filter. The result is never nil.
func (r *MuebleRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Mueble, error) {
	query, args := buildListQuery(filter)

	var muebles []model.Mueble
	err := r.pool.AcquireFunc(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}

		muebles, err = pgx.CollectRows(rows, pgx.RowToStructByPos[model.Mueble])
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "list muebles by %s", filter.Kind)
	}

	return muebles, nil
}

// FindByCodigo returns ErrMuebleNotFound when codigo is not registered.
func (r *MuebleRepository) FindByCodigo(ctx context.Context, codigo int64) (model.Mueble, error) {
	var mueble model.Mueble
	err := r.pool.AcquireFunc(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, selectMuebleByCodigo, codigo)
		if err != nil {
			return err
		}

		mueble, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[model.Mueble])
		return err
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Mueble{}, ErrMuebleNotFound
	}
	if err != nil {
		return model.Mueble{}, errors.Wrapf(err, "find mueble %d", codigo)
	}

	return mueble, nil
}

// Create assigns the next codigo and inserts the mueble in one
// transaction. The advisory lock is held until commit, so concurrent
// creates never read the same MAX(codigo).
func (r *MuebleRepository) Create(ctx context.Context, data model.MuebleData) (model.Mueble, error) {
	var mueble model.Mueble
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, codigoLockKey); err != nil {
			return errors.Wrap(err, "lock codigo sequence")
		}

		codigo, err := nextCodigo(ctx, tx)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, insertMueble, codigo, data.Nombre, data.Precio, data.Categoria)
		if err != nil {
			return errors.Wrap(err, "insert mueble")
		}

		mueble, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[model.Mueble])
		return errors.Wrap(err, "insert mueble")
	})
	if err != nil {
		return model.Mueble{}, errors.Wrap(err, "create mueble")
	}

	return mueble, nil
}

func nextCodigo(ctx context.Context, tx pgx.Tx) (int64, error) {
	var codigo int64
	if err := tx.QueryRow(ctx, nextCodigoQuery, model.CodigoInicial).Scan(&codigo); err != nil {
		return 0, errors.Wrap(err, "compute next codigo")
	}
	return codigo, nil
}

// Update replaces every mutable field of the mueble. codigo never changes.
func (r *MuebleRepository) Update(ctx context.Context, codigo int64, data model.MuebleData) (model.Mueble, error) {
	var mueble model.Mueble
	err := r.pool.AcquireFunc(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, updateMueble, codigo, data.Nombre, data.Precio, data.Categoria)
		if err != nil {
			return err
		}

		mueble, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[model.Mueble])
		return err
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Mueble{}, ErrMuebleNotFound
	}
	if err != nil {
		return model.Mueble{}, errors.Wrapf(err, "update mueble %d", codigo)
	}

	return mueble, nil
}

// Delete removes the mueble, or returns ErrMuebleNotFound.
func (r *MuebleRepository) Delete(ctx context.Context, codigo int64) error {
	err := r.pool.AcquireFunc(ctx, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, deleteMueble, codigo)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrMuebleNotFound
		}
		return nil
	})

	if errors.Is(err, ErrMuebleNotFound) {
		return ErrMuebleNotFound
	}
	if err != nil {
		return errors.Wrapf(err, "delete mueble %d", codigo)
	}

	return nil
}
