package services

import (
	"context"
	"log/slog"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
	"github.com/CarlosDanielOK/snappy-back/internal/core/ports"
)

type chatGroupService struct {
	groups   ports.ChatGroupRepository
	users    ports.UserRepository
	notifier ports.NotificationPublisher
	clock    ports.Clock
}

// NewChatGroupService construit le registre des groupes.
func NewChatGroupService(
	groups ports.ChatGroupRepository,
	users ports.UserRepository,
	notifier ports.NotificationPublisher,
	clock ports.Clock,
) ports.ChatGroupService {
	return &chatGroupService{
		groups:   groups,
		users:    users,
		notifier: notifier,
		clock:    clock,
	}
}

func (s *chatGroupService) CreateGroup(ctx context.Context, cmd ports.CreateGroupCmd) (*domain.ChatGroup, error) {
	// 1. Le créateur doit exister
	creator, err := s.users.FindByID(ctx, cmd.CreatorID)
	if err != nil {
		return nil, err
	}

	// 2. Fail Fast sur le nom (la contrainte UNIQUE tranche en concurrence)
	if _, err := s.groups.FindByName(ctx, cmd.Name); err == nil {
		return nil, domain.ErrGroupNameTaken
	}

	// 3. Domaine : groupe + membership ADMIN du créateur
	now := s.clock.Now()
	group := domain.NewChatGroup(cmd.Name, cmd.Description, cmd.Privacy, *creator, now)
	admin := domain.NewGroupMember(group.ID, creator.ID, domain.RoleAdmin, now)

	// 4. Persistance transactionnelle : un groupe sans admin ne doit jamais
	// exister, les deux INSERT partent ou échouent ensemble.
	if err := s.groups.Create(ctx, group, admin); err != nil {
		return nil, err
	}

	group.Members = []domain.GroupMember{*admin}
	return group, nil
}

func (s *chatGroupService) ListGroups(ctx context.Context) ([]*domain.ChatGroup, error) {
	return s.groups.FindAll(ctx)
}

func (s *chatGroupService) GetGroup(ctx context.Context, groupID string) (*domain.ChatGroup, error) {
	return s.groups.FindByID(ctx, groupID)
}

func (s *chatGroupService) UpdateGroup(ctx context.Context, groupID string, update domain.GroupUpdate) (*domain.ChatGroup, error) {
	// 1. Charger l'existant
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	// 2. Shallow merge : seuls nom/description/privacy sont mutables
	group.Apply(update)

	// 3. Persister (un rename vers un nom pris remonte en Conflict via le repo)
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *chatGroupService) RemoveGroup(ctx context.Context, groupID string) error {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return err
	}

	// La suppression des memberships et des messages est portée par les
	// FK ON DELETE CASCADE, pas orchestrée ici.
	return s.groups.Delete(ctx, groupID)
}

func (s *chatGroupService) JoinGroup(ctx context.Context, groupID, userID string) (*domain.GroupMember, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	// La PK composite (group_id, user_id) garantit "au plus une fois par
	// groupe" ; le repo traduit sa violation en ErrAlreadyMember.
	member := domain.NewGroupMember(groupID, userID, domain.RoleMember, s.clock.Now())
	if err := s.groups.AddMember(ctx, member); err != nil {
		return nil, err
	}

	// Notification au créateur (Best effort), sauf s'il se rejoint lui-même.
	if userID != group.Creator.ID {
		notif := domain.Notification{
			Content:     "se ha unido a tu grupo",
			Type:        domain.NotificationGroup,
			RecipientID: group.Creator.ID,
			SenderID:    userID,
		}
		if err := s.notifier.Publish(ctx, notif); err != nil {
			slog.Warn("group notification dropped", "error", err, "group_id", groupID)
		}
	}

	return member, nil
}

func (s *chatGroupService) MessagesForGroup(ctx context.Context, groupID string) (*domain.ChatGroup, error) {
	return s.groups.FindWithMessages(ctx, groupID)
}

func (s *chatGroupService) GroupsForUser(ctx context.Context, userID string) ([]*domain.GroupMember, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.groups.MembershipsByUser(ctx, userID)
}
