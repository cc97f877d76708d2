package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
	"github.com/CarlosDanielOK/snappy-back/internal/core/ports"
)

type PostgresFollowRepo struct {
	db *pgxpool.Pool
}

func NewPostgresFollowRepo(db *pgxpool.Pool) ports.FollowRepository {
	return &PostgresFollowRepo{db: db}
}

// Save insère l'arête. La contrainte UNIQUE (follower_id, following_id) tranche
// les follows concurrents : sa violation sort en ErrAlreadyFollowing.
func (r *PostgresFollowRepo) Save(ctx context.Context, follow *domain.Follow) error {
	q := `
		INSERT INTO follows (id, follower_id, following_id, created_at)
		VALUES (@id, @follower_id, @following_id, @created_at)
	`
	args := pgx.NamedArgs{
		"id":           follow.ID,
		"follower_id":  follow.FollowerID,
		"following_id": follow.FollowingID,
		"created_at":   follow.CreatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return translateUnique(err, domain.ErrAlreadyFollowing)
	}
	return nil
}

// Delete : hard delete, pas de soft-delete sur les arêtes.
func (r *PostgresFollowRepo) Delete(ctx context.Context, followerID, followingID string) error {
	q := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`

	tag, err := r.db.Exec(ctx, q, followerID, followingID)
	if err != nil {
		return fmt.Errorf("db: delete follow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFollowNotFound
	}
	return nil
}

func (r *PostgresFollowRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	q := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, followerID, followingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db: follow exists: %w", err)
	}
	return exists, nil
}

// FollowersOf : tous les comptes ayant une arête ENTRANTE vers userID,
// projetés directement en résumé public par le JOIN.
func (r *PostgresFollowRepo) FollowersOf(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	q := `
		SELECT u.id, u.username, u.fullname, u.profile_image, u.user_type
		FROM follows f
		INNER JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
	`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("db: followers of: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

// FollowingOf : tous les comptes ayant une arête SORTANTE depuis userID.
func (r *PostgresFollowRepo) FollowingOf(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	q := `
		SELECT u.id, u.username, u.fullname, u.profile_image, u.user_type
		FROM follows f
		INNER JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
	`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("db: following of: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}
