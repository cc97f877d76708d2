package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
	"github.com/CarlosDanielOK/snappy-back/internal/core/ports"
)

type createGroupRequest struct {
	CreatorID   string `json:"creator_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Privacy     bool   `json:"privacy"`
}

func (s *Server) createGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := s.groups.CreateGroup(c.Request.Context(), ports.CreateGroupCmd{
		CreatorID:   req.CreatorID,
		Name:        req.Name,
		Description: req.Description,
		Privacy:     req.Privacy,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toGroupDTO(group))
}

func (s *Server) listGroups(c *gin.Context) {
	groups, err := s.groups.ListGroups(c.Request.Context())
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupDTOs(groups))
}

func (s *Server) getGroup(c *gin.Context) {
	group, err := s.groups.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupDTO(group))
}

// updateGroupRequest : pointeurs pour distinguer "absent" de "vide"
// (seuls nom/description/privacy sont mutables).
type updateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Privacy     *bool   `json:"privacy"`
}

func (s *Server) updateGroup(c *gin.Context) {
	var req updateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := s.groups.UpdateGroup(c.Request.Context(), c.Param("id"), domain.GroupUpdate{
		Name:        req.Name,
		Description: req.Description,
		Privacy:     req.Privacy,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toGroupDTO(group))
}

func (s *Server) removeGroup(c *gin.Context) {
	if err := s.groups.RemoveGroup(c.Request.Context(), c.Param("id")); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "group chat deleted successfully"})
}

type joinGroupRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

func (s *Server) joinGroup(c *gin.Context) {
	var req joinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := s.groups.JoinGroup(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toGroupMemberDTO(*member))
}

func (s *Server) messagesForGroup(c *gin.Context) {
	group, err := s.groups.MessagesForGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupDTO(group))
}

func (s *Server) groupsForUser(c *gin.Context) {
	members, err := s.groups.GroupsForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	dtos := make([]groupMemberDTO, len(members))
	for i, m := range members {
		dtos[i] = toGroupMemberDTO(*m)
	}
	c.JSON(http.StatusOK, dtos)
}
