package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow est une arête dirigée du graphe social (follower -> following).
// L'unicité du couple (FollowerID, FollowingID) est garantie par la contrainte
// UNIQUE en base ; le check applicatif n'est qu'un fast-path.
type Follow struct {
	ID          string
	FollowerID  string
	FollowingID string
	CreatedAt   time.Time
}

// NewFollow crée une arête valide. C'est le SEUL moyen d'en créer une :
// l'invariant "pas de self-follow" est vérifié ici, pas dans le service.
func NewFollow(followerID, followingID string, now time.Time) (*Follow, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}
	return &Follow{
		ID:          uuid.NewString(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   now.UTC(),
	}, nil
}

// Friends calcule l'amitié dérivée : following ∩ followers par égalité d'ID.
// Relation jamais persistée, recalculée à chaque lecture du graphe (sinon elle
// deviendrait stale dès le premier unfollow).
func Friends(following, followers []UserSummary) []UserSummary {
	followerIDs := make(map[string]struct{}, len(followers))
	for _, f := range followers {
		followerIDs[f.ID] = struct{}{}
	}

	friends := make([]UserSummary, 0)
	for _, u := range following {
		if _, ok := followerIDs[u.ID]; ok {
			friends = append(friends, u)
		}
	}
	return friends
}
