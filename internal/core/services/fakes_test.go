package services

import (
	"context"
	"time"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
)

// Fakes en mémoire pour les ports driven. Ils reproduisent le contrat des
// repos Postgres, y compris la traduction des violations d'unicité en erreurs
// du domaine.

// --- CLOCK ---

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// --- USERS ---

type fakeUserRepo struct {
	users map[string]domain.UserSummary
}

func newFakeUserRepo(users ...domain.UserSummary) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]domain.UserSummary)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.UserSummary, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []string) ([]domain.UserSummary, error) {
	seen := make(map[string]struct{})
	found := make([]domain.UserSummary, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if u, ok := r.users[id]; ok {
			found = append(found, u)
		}
	}
	return found, nil
}

func (r *fakeUserRepo) FindAllExcluding(_ context.Context, excludedIDs []string) ([]domain.UserSummary, error) {
	excluded := make(map[string]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = struct{}{}
	}
	users := make([]domain.UserSummary, 0)
	for id, u := range r.users {
		if _, ok := excluded[id]; !ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// --- FOLLOWS ---

type fakeFollowRepo struct {
	users *fakeUserRepo
	edges map[string]*domain.Follow // "follower->following"
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{users: users, edges: make(map[string]*domain.Follow)}
}

func edgeKey(followerID, followingID string) string {
	return followerID + "->" + followingID
}

func (r *fakeFollowRepo) Save(_ context.Context, follow *domain.Follow) error {
	key := edgeKey(follow.FollowerID, follow.FollowingID)
	if _, exists := r.edges[key]; exists {
		return domain.ErrAlreadyFollowing // comme la contrainte UNIQUE
	}
	r.edges[key] = follow
	return nil
}

func (r *fakeFollowRepo) Delete(_ context.Context, followerID, followingID string) error {
	key := edgeKey(followerID, followingID)
	if _, exists := r.edges[key]; !exists {
		return domain.ErrFollowNotFound
	}
	delete(r.edges, key)
	return nil
}

func (r *fakeFollowRepo) Exists(_ context.Context, followerID, followingID string) (bool, error) {
	_, exists := r.edges[edgeKey(followerID, followingID)]
	return exists, nil
}

func (r *fakeFollowRepo) FollowersOf(_ context.Context, userID string) ([]domain.UserSummary, error) {
	followers := make([]domain.UserSummary, 0)
	for _, edge := range r.edges {
		if edge.FollowingID == userID {
			followers = append(followers, r.users.users[edge.FollowerID])
		}
	}
	return followers, nil
}

func (r *fakeFollowRepo) FollowingOf(_ context.Context, userID string) ([]domain.UserSummary, error) {
	following := make([]domain.UserSummary, 0)
	for _, edge := range r.edges {
		if edge.FollowerID == userID {
			following = append(following, r.users.users[edge.FollowingID])
		}
	}
	return following, nil
}

// --- CHATS ---

type fakeChatRepo struct {
	byKey   map[string]*domain.Chat
	byID    map[string]*domain.Chat
	findErr error // forcé pour simuler une panne du storage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{byKey: make(map[string]*domain.Chat), byID: make(map[string]*domain.Chat)}
}

func (r *fakeChatRepo) Save(_ context.Context, chat *domain.Chat) error {
	if _, exists := r.byKey[chat.Key]; exists {
		return domain.ErrChatAlreadyExists // comme l'index UNIQUE sur key
	}
	r.byKey[chat.Key] = chat
	r.byID[chat.ID] = chat
	return nil
}

func (r *fakeChatRepo) FindByKey(_ context.Context, key string) (*domain.Chat, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	chat, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrChatNotFound
	}
	return chat, nil
}

func (r *fakeChatRepo) FindByID(_ context.Context, chatID string) (*domain.Chat, error) {
	chat, ok := r.byID[chatID]
	if !ok {
		return nil, domain.ErrChatNotFound
	}
	return chat, nil
}

func (r *fakeChatRepo) ListByParticipant(_ context.Context, userID string) ([]*domain.Chat, error) {
	chats := make([]*domain.Chat, 0)
	for _, chat := range r.byID {
		for _, p := range chat.Participants {
			if p.ID == userID {
				chats = append(chats, chat)
				break
			}
		}
	}
	return chats, nil
}

// --- GROUPES ---

type fakeGroupRepo struct {
	groups   map[string]*domain.ChatGroup
	members  map[string]map[string]domain.GroupMember // groupID -> userID -> membership
	messages map[string][]domain.Message
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:   make(map[string]*domain.ChatGroup),
		members:  make(map[string]map[string]domain.GroupMember),
		messages: make(map[string][]domain.Message),
	}
}

func (r *fakeGroupRepo) Create(_ context.Context, group *domain.ChatGroup, admin *domain.GroupMember) error {
	for _, g := range r.groups {
		if g.Name == group.Name {
			return domain.ErrGroupNameTaken
		}
	}
	stored := *group
	r.groups[group.ID] = &stored
	r.members[group.ID] = map[string]domain.GroupMember{admin.UserID: *admin}
	return nil
}

func (r *fakeGroupRepo) FindByID(_ context.Context, groupID string) (*domain.ChatGroup, error) {
	g, ok := r.groups[groupID]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	out := *g
	out.Members = r.rosterOf(groupID)
	return &out, nil
}

func (r *fakeGroupRepo) FindByName(_ context.Context, name string) (*domain.ChatGroup, error) {
	for _, g := range r.groups {
		if g.Name == name {
			out := *g
			return &out, nil
		}
	}
	return nil, domain.ErrGroupNotFound
}

func (r *fakeGroupRepo) FindAll(_ context.Context) ([]*domain.ChatGroup, error) {
	groups := make([]*domain.ChatGroup, 0, len(r.groups))
	for id, g := range r.groups {
		out := *g
		out.Members = r.rosterOf(id)
		groups = append(groups, &out)
	}
	return groups, nil
}

func (r *fakeGroupRepo) Update(_ context.Context, group *domain.ChatGroup) error {
	if _, ok := r.groups[group.ID]; !ok {
		return domain.ErrGroupNotFound
	}
	for id, g := range r.groups {
		if id != group.ID && g.Name == group.Name {
			return domain.ErrGroupNameTaken
		}
	}
	stored := *group
	stored.Members = nil
	r.groups[group.ID] = &stored
	return nil
}

func (r *fakeGroupRepo) Delete(_ context.Context, groupID string) error {
	if _, ok := r.groups[groupID]; !ok {
		return domain.ErrGroupNotFound
	}
	// Cascade : memberships et messages tombent avec le groupe
	delete(r.groups, groupID)
	delete(r.members, groupID)
	delete(r.messages, groupID)
	return nil
}

func (r *fakeGroupRepo) AddMember(_ context.Context, member *domain.GroupMember) error {
	roster, ok := r.members[member.GroupID]
	if !ok {
		roster = make(map[string]domain.GroupMember)
		r.members[member.GroupID] = roster
	}
	if _, exists := roster[member.UserID]; exists {
		return domain.ErrAlreadyMember // comme la PK composite
	}
	roster[member.UserID] = *member
	return nil
}

func (r *fakeGroupRepo) FindWithMessages(ctx context.Context, groupID string) (*domain.ChatGroup, error) {
	group, err := r.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Messages = r.messages[groupID]
	return group, nil
}

func (r *fakeGroupRepo) MembershipsByUser(_ context.Context, userID string) ([]*domain.GroupMember, error) {
	memberships := make([]*domain.GroupMember, 0)
	for groupID, roster := range r.members {
		if m, ok := roster[userID]; ok {
			out := m
			group := *r.groups[groupID]
			group.Messages = r.messages[groupID]
			out.Group = &group
			memberships = append(memberships, &out)
		}
	}
	return memberships, nil
}

func (r *fakeGroupRepo) rosterOf(groupID string) []domain.GroupMember {
	roster := make([]domain.GroupMember, 0, len(r.members[groupID]))
	for _, m := range r.members[groupID] {
		roster = append(roster, m)
	}
	return roster
}

// --- NOTIFIER ---

type fakeNotifier struct {
	published []domain.Notification
	err       error // forcé pour tester l'asymétrie fire-and-forget
}

func (n *fakeNotifier) Publish(_ context.Context, notification domain.Notification) error {
	if n.err != nil {
		return n.err
	}
	n.published = append(n.published, notification)
	return nil
}
