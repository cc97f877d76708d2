package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type followRequest struct {
	FollowerID  string `json:"follower_id" binding:"required,uuid"`
	FollowingID string `json:"following_id" binding:"required,uuid"`
}

func (s *Server) follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.follows.Follow(c.Request.Context(), req.FollowerID, req.FollowingID); err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully followed the user"})
}

func (s *Server) unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.follows.Unfollow(c.Request.Context(), req.FollowerID, req.FollowingID); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) followers(c *gin.Context) {
	users, err := s.follows.Followers(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserSummaryDTOs(users))
}

func (s *Server) following(c *gin.Context) {
	users, err := s.follows.Following(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserSummaryDTOs(users))
}

func (s *Server) friends(c *gin.Context) {
	users, err := s.follows.Friends(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserSummaryDTOs(users))
}
