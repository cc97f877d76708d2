package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Chat est une conversation directe entre deux participants ou plus.
// La Key canonique est LE mécanisme de déduplication : une seule conversation
// peut exister par ensemble de participants (contrainte UNIQUE sur chats.key).
type Chat struct {
	ID           string
	Key          string
	Participants []UserSummary
	Messages     []Message
}

// Message appartient au store de messages ; ce coeur ne fait que le lire.
// Sender est volontairement une projection réduite (contrat d'exposition).
type Message struct {
	ID      string
	Content string
	SentAt  time.Time
	Sender  UserSummary
}

// ChatKey calcule la signature canonique d'un ensemble de participants :
// tri lexicographique des IDs puis jointure avec "/". Deux ensembles contenant
// les mêmes IDs dans n'importe quel ordre donnent la même clé.
func ChatKey(userIDs []string) string {
	ids := make([]string, len(userIDs))
	copy(ids, userIDs)
	sort.Strings(ids)
	return strings.Join(ids, "/")
}

// NewChat crée une conversation à partir des participants résolus.
func NewChat(participants []UserSummary) (*Chat, error) {
	if len(participants) < 2 {
		return nil, ErrTooFewParticipants
	}

	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}

	return &Chat{
		ID:           uuid.NewString(),
		Key:          ChatKey(ids),
		Participants: participants,
	}, nil
}
