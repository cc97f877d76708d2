package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
)

// execer est satisfait par *pgxpool.Pool et pgx.Tx : les writes qui doivent
// pouvoir rejoindre une transaction passent par lui.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Code PostgreSQL 23505 = unique_violation.
// Les contraintes UNIQUE sont la source de vérité anti-doublon (les checks
// applicatifs ne sont qu'un fast-path) : chaque violation doit être traduite
// en Conflict du domaine, jamais remontée comme erreur fatale.
const uniqueViolation = "23505"

// translateUnique mappe une violation de contrainte vers l'erreur du domaine
// correspondant à la contrainte touchée.
func translateUnique(err error, onConflict *domain.Error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return onConflict
	}
	return err
}
