package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
	"github.com/CarlosDanielOK/snappy-back/internal/core/ports"
)

type chatFixture struct {
	chats    ports.ChatService
	follows  ports.FollowService
	chatRepo *fakeChatRepo
	userRepo *fakeUserRepo
}

func newChatFixture(users ...domain.UserSummary) *chatFixture {
	userRepo := newFakeUserRepo(users...)
	followRepo := newFakeFollowRepo(userRepo)
	chatRepo := newFakeChatRepo()
	follows := NewFollowService(followRepo, userRepo, &fakeNotifier{}, fixedClock{t: testTime})
	chats := NewChatService(chatRepo, userRepo, follows)
	return &chatFixture{chats: chats, follows: follows, chatRepo: chatRepo, userRepo: userRepo}
}

func TestCreateChat(t *testing.T) {
	f := newChatFixture(alice, bob)

	chat, err := f.chats.CreateChat(context.Background(), []string{bob.ID, alice.ID})
	require.NoError(t, err)

	// Clé canonique : IDs triés joints par "/" quel que soit l'ordre d'entrée
	assert.Equal(t, alice.ID+"/"+bob.ID, chat.Key)
	assert.ElementsMatch(t, []domain.UserSummary{alice, bob}, chat.Participants)
	assert.NotEmpty(t, chat.ID)
}

func TestCreateChat_DuplicateAnyOrder(t *testing.T) {
	f := newChatFixture(alice, bob)
	ctx := context.Background()

	_, err := f.chats.CreateChat(ctx, []string{alice.ID, bob.ID})
	require.NoError(t, err)

	// Le même ensemble de participants, dans l'autre ordre
	_, err = f.chats.CreateChat(ctx, []string{bob.ID, alice.ID})
	assert.ErrorIs(t, err, domain.ErrChatAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Pas de doublon créé
	assert.Len(t, f.chatRepo.byID, 1)
}

func TestCreateChat_UnknownParticipant(t *testing.T) {
	f := newChatFixture(alice)

	_, err := f.chats.CreateChat(context.Background(), []string{alice.ID, bob.ID})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, f.chatRepo.byID)
}

func TestFindChatBetween_OrderInvariant(t *testing.T) {
	f := newChatFixture(alice, bob)
	ctx := context.Background()

	created, err := f.chats.CreateChat(ctx, []string{alice.ID, bob.ID})
	require.NoError(t, err)

	found, err := f.chats.FindChatBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// Ordre inversé : même chat
	found, err = f.chats.FindChatBetween(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestFindChatBetween_NoChat(t *testing.T) {
	f := newChatFixture(alice, bob)

	_, err := f.chats.FindChatBetween(context.Background(), alice.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrChatNotFound)

	_, err = f.chats.FindChatBetween(context.Background(), "", bob.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestFindChatBetween_StorageFailureIsNotNotFound(t *testing.T) {
	f := newChatFixture(alice, bob)
	f.chatRepo.findErr = errors.New("pgx: connection refused")

	_, err := f.chats.FindChatBetween(context.Background(), alice.ID, bob.ID)

	// Une panne du storage remonte telle quelle, jamais déguisée en NotFound
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrChatNotFound)
}

func TestChatsForUser(t *testing.T) {
	f := newChatFixture(alice, bob, carol)
	ctx := context.Background()

	_, err := f.chats.CreateChat(ctx, []string{alice.ID, bob.ID})
	require.NoError(t, err)
	_, err = f.chats.CreateChat(ctx, []string{bob.ID, carol.ID})
	require.NoError(t, err)

	chats, err := f.chats.ChatsForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, chats, 2)

	chats, err = f.chats.ChatsForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestDiscoverableUsers(t *testing.T) {
	dave := domain.UserSummary{ID: "0b54b9a1-0000-4000-8000-000000000004", Username: "dave"}
	erin := domain.UserSummary{ID: "0b54b9a1-0000-4000-8000-000000000005", Username: "erin"}
	f := newChatFixture(alice, bob, carol, dave, erin)
	ctx := context.Background()

	// Bob est ami d'Alice (follow mutuel)
	require.NoError(t, f.follows.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, f.follows.Follow(ctx, bob.ID, alice.ID))

	// Carol partage déjà un chat direct avec Alice
	_, err := f.chats.CreateChat(ctx, []string{alice.ID, carol.ID})
	require.NoError(t, err)

	// Dave ne suit Alice qu'à sens unique : pas un ami, donc découvrable
	require.NoError(t, f.follows.Follow(ctx, dave.ID, alice.ID))

	discoverable, err := f.chats.DiscoverableUsers(ctx, alice.ID)
	require.NoError(t, err)

	// Exclus : Alice elle-même, son amie Bob, sa partenaire de chat Carol
	assert.ElementsMatch(t, []domain.UserSummary{dave, erin}, discoverable)
}
