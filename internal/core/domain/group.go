package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role d'un membre au sein d'un groupe. Le créateur est toujours ADMIN.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ChatGroup est une conversation de groupe nommée. Le nom est globalement
// unique (contrainte UNIQUE sur chat_groups.name).
type ChatGroup struct {
	ID           string
	Name         string
	Description  string
	Privacy      bool
	Creator      UserSummary
	CreationDate time.Time
	Members      []GroupMember
	Messages     []Message
}

// GroupMember est une ligne du roster : un utilisateur apparaît au plus une
// fois par groupe (PK composite (group_id, user_id) en base).
type GroupMember struct {
	GroupID  string
	UserID   string
	Role     Role
	JoinDate time.Time

	// Group n'est hydraté que par la vue "mes groupes" (GroupsForUser).
	Group *ChatGroup
}

// GroupUpdate porte une mise à jour partielle : nil = champ inchangé.
// Seuls le nom, la description et la confidentialité sont mutables.
type GroupUpdate struct {
	Name        *string
	Description *string
	Privacy     *bool
}

// NewChatGroup crée le groupe. L'appelant doit l'insérer dans la MÊME
// transaction que le membership ADMIN du créateur : un groupe sans admin ne
// doit jamais exister.
func NewChatGroup(name, description string, privacy bool, creator UserSummary, now time.Time) *ChatGroup {
	return &ChatGroup{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		Privacy:      privacy,
		Creator:      creator,
		CreationDate: now.UTC(),
	}
}

// NewGroupMember crée une ligne de roster.
func NewGroupMember(groupID, userID string, role Role, now time.Time) *GroupMember {
	return &GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		Role:     role,
		JoinDate: now.UTC(),
	}
}

// Apply fusionne la mise à jour partielle (shallow merge).
func (g *ChatGroup) Apply(u GroupUpdate) {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.Privacy != nil {
		g.Privacy = *u.Privacy
	}
}
