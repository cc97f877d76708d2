package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
	"github.com/CarlosDanielOK/snappy-back/internal/core/ports"
)

// Colonnes exposables d'un compte. On ne sélectionne JAMAIS email/password :
// la table users appartient au service d'identité, ce coeur n'en lit que la
// projection publique.
const userSummaryColumns = `id, username, fullname, profile_image, user_type`

type PostgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) ports.UserRepository {
	return &PostgresUserRepo{db: db}
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*domain.UserSummary, error) {
	q := `SELECT ` + userSummaryColumns + ` FROM users WHERE id = $1`

	var u domain.UserSummary
	err := r.db.QueryRow(ctx, q, id).Scan(&u.ID, &u.Username, &u.FullName, &u.ProfileImage, &u.UserType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db: find user by id: %w", err)
	}

	return &u, nil
}

// FindByIDs : batch fetch avec id = ANY($1), un seul round-trip.
// L'appelant détecte les IDs inconnus par count mismatch.
func (r *PostgresUserRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.UserSummary, error) {
	q := `SELECT ` + userSummaryColumns + ` FROM users WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("db: find users by ids: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

// FindAllExcluding : le filtre négatif du pool de découverte.
func (r *PostgresUserRepo) FindAllExcluding(ctx context.Context, excludedIDs []string) ([]domain.UserSummary, error) {
	q := `SELECT ` + userSummaryColumns + ` FROM users WHERE NOT (id = ANY($1))`

	rows, err := r.db.Query(ctx, q, excludedIDs)
	if err != nil {
		return nil, fmt.Errorf("db: find users excluding: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

// --- HELPERS ---

func collectSummaries(rows pgx.Rows) ([]domain.UserSummary, error) {
	users := make([]domain.UserSummary, 0)
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.ProfileImage, &u.UserType); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
