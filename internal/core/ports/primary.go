package ports

import (
	"context"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
)

// --- INPUTS (Command Pattern) ---
// Des structs plutôt que des listes de paramètres : on peut ajouter des champs
// optionnels plus tard sans casser la signature.

type CreateGroupCmd struct {
	CreatorID   string
	Name        string
	Description string
	Privacy     bool
}

// --- PORTS PRIMAIRES (Driving) ---
// L'API que l'hexagone expose au monde extérieur (HTTP, CLI, tests).

// FollowService gère le graphe de follows et la relation d'amitié dérivée.
type FollowService interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	Followers(ctx context.Context, userID string) ([]domain.UserSummary, error)
	Following(ctx context.Context, userID string) ([]domain.UserSummary, error)
	Friends(ctx context.Context, userID string) ([]domain.UserSummary, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
}

// ChatService gère les conversations directes dédupliquées par clé canonique,
// plus le filtre de découverte (construit sur FollowService + les chats).
type ChatService interface {
	CreateChat(ctx context.Context, userIDs []string) (*domain.Chat, error)
	FindChatBetween(ctx context.Context, senderID, receiverID string) (*domain.Chat, error)
	ChatsForUser(ctx context.Context, userID string) ([]*domain.Chat, error)
	MessagesForChat(ctx context.Context, chatID string) (*domain.Chat, error)
	DiscoverableUsers(ctx context.Context, userID string) ([]domain.UserSummary, error)
}

// ChatGroupService gère le cycle de vie des groupes et leur roster.
type ChatGroupService interface {
	CreateGroup(ctx context.Context, cmd CreateGroupCmd) (*domain.ChatGroup, error)
	ListGroups(ctx context.Context) ([]*domain.ChatGroup, error)
	GetGroup(ctx context.Context, groupID string) (*domain.ChatGroup, error)
	UpdateGroup(ctx context.Context, groupID string, update domain.GroupUpdate) (*domain.ChatGroup, error)
	RemoveGroup(ctx context.Context, groupID string) error
	JoinGroup(ctx context.Context, groupID, userID string) (*domain.GroupMember, error)
	MessagesForGroup(ctx context.Context, groupID string) (*domain.ChatGroup, error)
	GroupsForUser(ctx context.Context, userID string) ([]*domain.GroupMember, error)
}
