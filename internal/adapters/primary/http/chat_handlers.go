package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createChatRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=2,dive,uuid"`
}

func (s *Server) createChat(c *gin.Context) {
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := s.chats.CreateChat(c.Request.Context(), req.UserIDs)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toChatDTO(chat))
}

func (s *Server) findChatBetween(c *gin.Context) {
	senderID := c.Query("sender_id")
	receiverID := c.Query("receiver_id")

	chat, err := s.chats.FindChatBetween(c.Request.Context(), senderID, receiverID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toChatDTO(chat))
}

func (s *Server) chatsForUser(c *gin.Context) {
	chats, err := s.chats.ChatsForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toChatDTOs(chats))
}

func (s *Server) messagesForChat(c *gin.Context) {
	chat, err := s.chats.MessagesForChat(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toChatDTO(chat))
}

func (s *Server) discoverableUsers(c *gin.Context) {
	users, err := s.chats.DiscoverableUsers(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserSummaryDTOs(users))
}
