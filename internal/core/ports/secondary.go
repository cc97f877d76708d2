package ports

import (
	"context"
	"time"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
)

// --- PERSISTANCE (Driven) ---

// UserRepository lit les comptes (le service d'identité en est propriétaire).
// On ne sélectionne JAMAIS les credentials : tout sort en UserSummary.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.UserSummary, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.UserSummary, error)
	FindAllExcluding(ctx context.Context, excludedIDs []string) ([]domain.UserSummary, error)
}

// FollowRepository persiste les arêtes du graphe. La contrainte UNIQUE
// (follower_id, following_id) est la source de vérité anti-doublon : Save doit
// traduire sa violation en domain.ErrAlreadyFollowing.
type FollowRepository interface {
	Save(ctx context.Context, follow *domain.Follow) error
	Delete(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	FollowersOf(ctx context.Context, userID string) ([]domain.UserSummary, error)
	FollowingOf(ctx context.Context, userID string) ([]domain.UserSummary, error)
}

// ChatRepository persiste les conversations directes. La contrainte UNIQUE sur
// chats.key est la source de vérité de la déduplication.
type ChatRepository interface {
	Save(ctx context.Context, chat *domain.Chat) error
	FindByKey(ctx context.Context, key string) (*domain.Chat, error)
	FindByID(ctx context.Context, chatID string) (*domain.Chat, error)
	ListByParticipant(ctx context.Context, userID string) ([]*domain.Chat, error)
}

// ChatGroupRepository persiste les groupes et leur roster.
type ChatGroupRepository interface {
	// Create insère le groupe ET le membership admin du créateur dans une
	// seule transaction : rollback des deux si l'un échoue.
	Create(ctx context.Context, group *domain.ChatGroup, admin *domain.GroupMember) error

	FindByID(ctx context.Context, groupID string) (*domain.ChatGroup, error)
	FindByName(ctx context.Context, name string) (*domain.ChatGroup, error)
	FindAll(ctx context.Context) ([]*domain.ChatGroup, error)
	Update(ctx context.Context, group *domain.ChatGroup) error
	Delete(ctx context.Context, groupID string) error

	AddMember(ctx context.Context, member *domain.GroupMember) error
	FindWithMessages(ctx context.Context, groupID string) (*domain.ChatGroup, error)
	MembershipsByUser(ctx context.Context, userID string) ([]*domain.GroupMember, error)
}

// --- NOTIFICATIONS (Driven) ---

// NotificationPublisher est le port vers le service de notifications (NATS).
// Fire-and-forget : l'appelant loggue l'erreur mais ne la propage jamais.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification domain.Notification) error
}

// --- HORLOGE ---

// Clock est injectée pour que les timestamps soient déterministes en test.
type Clock interface {
	Now() time.Time
}
