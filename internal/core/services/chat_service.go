package services

import (
	"context"
	"fmt"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
	"github.com/CarlosDanielOK/snappy-back/internal/core/ports"
)

type chatService struct {
	chats         ports.ChatRepository
	users         ports.UserRepository
	followService ports.FollowService
}

// NewChatService construit le registre des conversations directes.
// Il dépend du port primaire FollowService (pas du repo) pour le calcul des
// amis : la découverte compose les deux registres.
func NewChatService(
	chats ports.ChatRepository,
	users ports.UserRepository,
	followService ports.FollowService,
) ports.ChatService {
	return &chatService{
		chats:         chats,
		users:         users,
		followService: followService,
	}
}

func (s *chatService) CreateChat(ctx context.Context, userIDs []string) (*domain.Chat, error) {
	// 1. Résolution des participants : un seul round-trip, le count mismatch
	// détecte les IDs inconnus.
	participants, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve participants: %w", err)
	}
	if len(participants) != len(userIDs) {
		return nil, domain.ErrUserNotFound
	}

	// 2. Fail Fast sur la clé canonique. L'index UNIQUE sur chats.key reste
	// l'arbitre final si deux créations identiques se croisent.
	key := domain.ChatKey(userIDs)
	if _, err := s.chats.FindByKey(ctx, key); err == nil {
		return nil, domain.ErrChatAlreadyExists
	}

	// 3. Domaine : création (valide le nombre de participants)
	chat, err := domain.NewChat(participants)
	if err != nil {
		return nil, err
	}

	// 4. Persistance (chat + lignes de jonction)
	if err := s.chats.Save(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

func (s *chatService) FindChatBetween(ctx context.Context, senderID, receiverID string) (*domain.Chat, error) {
	if senderID == "" || receiverID == "" {
		return nil, domain.ErrUserNotFound
	}

	// Même clé quel que soit l'ordre des deux IDs. Le repo distingue déjà
	// l'absence de ligne (ErrChatNotFound) d'une panne du storage : celle-ci
	// doit remonter telle quelle, jamais déguisée en NotFound.
	return s.chats.FindByKey(ctx, domain.ChatKey([]string{senderID, receiverID}))
}

func (s *chatService) ChatsForUser(ctx context.Context, userID string) ([]*domain.Chat, error) {
	return s.chats.ListByParticipant(ctx, userID)
}

func (s *chatService) MessagesForChat(ctx context.Context, chatID string) (*domain.Chat, error) {
	return s.chats.FindByID(ctx, chatID)
}

// DiscoverableUsers calcule le pool de découverte : tous les comptes qui ne
// sont ni l'utilisateur lui-même, ni un ami, ni déjà présents dans une de ses
// conversations directes.
func (s *chatService) DiscoverableUsers(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	// 1. Les amis (relation dérivée, fraîche par construction)
	friends, err := s.followService.Friends(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. Tous les participants des chats existants de l'utilisateur
	chats, err := s.chats.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3. Union dédupliquée : amis ∪ {soi} ∪ participants
	excluded := make(map[string]struct{}, len(friends)+1)
	excluded[userID] = struct{}{}
	for _, f := range friends {
		excluded[f.ID] = struct{}{}
	}
	for _, chat := range chats {
		for _, p := range chat.Participants {
			excluded[p.ID] = struct{}{}
		}
	}

	excludedIDs := make([]string, 0, len(excluded))
	for id := range excluded {
		excludedIDs = append(excludedIDs, id)
	}

	// 4. Filtre négatif en base
	return s.users.FindAllExcluding(ctx, excludedIDs)
}
