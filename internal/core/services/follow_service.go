package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
	"github.com/CarlosDanielOK/snappy-back/internal/core/ports"
)

type followService struct {
	follows  ports.FollowRepository
	users    ports.UserRepository
	notifier ports.NotificationPublisher
	clock    ports.Clock
}

// NewFollowService est le constructeur avec injection de dépendances.
func NewFollowService(
	follows ports.FollowRepository,
	users ports.UserRepository,
	notifier ports.NotificationPublisher,
	clock ports.Clock,
) ports.FollowService {
	return &followService{
		follows:  follows,
		users:    users,
		notifier: notifier,
		clock:    clock,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followingID string) error {
	// 1. Invariant du domaine : pas de self-follow (avant tout I/O)
	if followerID == followingID {
		return domain.ErrSelfFollow
	}

	// 2. Les deux comptes doivent exister
	if err := s.ensureUsersExist(ctx, followerID, followingID); err != nil {
		return err
	}

	// 3. Fail Fast : check de doublon "soft".
	// La contrainte UNIQUE (follower_id, following_id) reste la sécurité
	// ultime en cas de deux Follow(A,B) concurrents.
	alreadyFollowing, err := s.follows.Exists(ctx, followerID, followingID)
	if err != nil {
		return fmt.Errorf("follow exists check: %w", err)
	}
	if alreadyFollowing {
		return domain.ErrAlreadyFollowing
	}

	// 4. Domaine : création de l'arête
	follow, err := domain.NewFollow(followerID, followingID, s.clock.Now())
	if err != nil {
		return err
	}

	// 5. Persistance (le repo traduit la violation de contrainte en Conflict)
	if err := s.follows.Save(ctx, follow); err != nil {
		return err
	}

	// 6. Side Effect : notification au suivi (Best effort).
	// Le follow est déjà commité : un broker down ne doit pas le faire échouer.
	notif := domain.Notification{
		Content:     "ha comenzado a seguirte",
		Type:        domain.NotificationFollower,
		RecipientID: followingID,
		SenderID:    followerID,
	}
	if err := s.notifier.Publish(ctx, notif); err != nil {
		slog.Warn("follower notification dropped", "error", err, "recipient", followingID)
	}

	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followingID string) error {
	if err := s.ensureUsersExist(ctx, followerID, followingID); err != nil {
		return err
	}

	// Delete renvoie ErrFollowNotFound si l'arête n'existait pas.
	// Pas de notification sur unfollow.
	return s.follows.Delete(ctx, followerID, followingID)
}

func (s *followService) Followers(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.follows.FollowersOf(ctx, userID)
}

func (s *followService) Following(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.follows.FollowingOf(ctx, userID)
}

// Friends recalcule l'intersection à chaque appel : la relation d'amitié n'est
// jamais persistée, elle reste donc toujours cohérente avec les arêtes.
func (s *followService) Friends(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	followers, err := s.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.Friends(following, followers), nil
}

func (s *followService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.follows.Exists(ctx, followerID, followingID)
}

// ensureUsersExist vérifie l'existence des deux comptes en une seule requête.
func (s *followService) ensureUsersExist(ctx context.Context, ids ...string) error {
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve users: %w", err)
	}
	if len(users) != len(ids) {
		return domain.ErrUserNotFound
	}
	return nil
}
