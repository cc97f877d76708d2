package http

import (
	"time"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
)

// --- DTOs DE SORTIE ---
// Le domaine reste vierge de tags JSON : le mapping vit ici, à la frontière.

type userSummaryDTO struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"fullname"`
	ProfileImage string `json:"profile_image"`
	UserType     string `json:"user_type"`
}

type messageDTO struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	SendDate time.Time      `json:"send_date"`
	Sender   userSummaryDTO `json:"sender"`
}

type chatDTO struct {
	ID           string           `json:"id"`
	Key          string           `json:"key"`
	Participants []userSummaryDTO `json:"participants"`
	Messages     []messageDTO     `json:"messages"`
}

type groupMemberDTO struct {
	GroupID  string    `json:"group_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinDate time.Time `json:"join_date"`
	Group    *groupDTO `json:"group,omitempty"`
}

type groupDTO struct {
	ID           string           `json:"group_id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Privacy      bool             `json:"privacy"`
	CreationDate time.Time        `json:"creation_date"`
	Creator      userSummaryDTO   `json:"creator"`
	Members      []groupMemberDTO `json:"group_members,omitempty"`
	Messages     []messageDTO     `json:"messages,omitempty"`
}

// --- MAPPERS Domain -> DTO ---

func toUserSummaryDTO(u domain.UserSummary) userSummaryDTO {
	return userSummaryDTO{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		ProfileImage: u.ProfileImage,
		UserType:     string(u.UserType),
	}
}

func toUserSummaryDTOs(users []domain.UserSummary) []userSummaryDTO {
	dtos := make([]userSummaryDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserSummaryDTO(u)
	}
	return dtos
}

func toMessageDTOs(messages []domain.Message) []messageDTO {
	dtos := make([]messageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = messageDTO{
			ID:       m.ID,
			Content:  m.Content,
			SendDate: m.SentAt,
			Sender:   toUserSummaryDTO(m.Sender),
		}
	}
	return dtos
}

func toChatDTO(chat *domain.Chat) chatDTO {
	return chatDTO{
		ID:           chat.ID,
		Key:          chat.Key,
		Participants: toUserSummaryDTOs(chat.Participants),
		Messages:     toMessageDTOs(chat.Messages),
	}
}

func toChatDTOs(chats []*domain.Chat) []chatDTO {
	dtos := make([]chatDTO, len(chats))
	for i, chat := range chats {
		dtos[i] = toChatDTO(chat)
	}
	return dtos
}

func toGroupMemberDTO(m domain.GroupMember) groupMemberDTO {
	dto := groupMemberDTO{
		GroupID:  m.GroupID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinDate: m.JoinDate,
	}
	if m.Group != nil {
		g := toGroupDTO(m.Group)
		dto.Group = &g
	}
	return dto
}

func toGroupDTO(group *domain.ChatGroup) groupDTO {
	dto := groupDTO{
		ID:           group.ID,
		Name:         group.Name,
		Description:  group.Description,
		Privacy:      group.Privacy,
		CreationDate: group.CreationDate,
		Creator:      toUserSummaryDTO(group.Creator),
		Messages:     toMessageDTOs(group.Messages),
	}
	dto.Members = make([]groupMemberDTO, len(group.Members))
	for i, m := range group.Members {
		dto.Members[i] = toGroupMemberDTO(m)
	}
	return dto
}

func toGroupDTOs(groups []*domain.ChatGroup) []groupDTO {
	dtos := make([]groupDTO, len(groups))
	for i, g := range groups {
		dtos[i] = toGroupDTO(g)
	}
	return dtos
}
