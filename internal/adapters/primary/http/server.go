package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
	"github.com/CarlosDanielOK/snappy-back/internal/core/ports"
)

// Server adapte le transport HTTP vers les ports primaires du domaine.
// Le transport reste une frontière fine : binding, appel du service, mapping.
type Server struct {
	follows ports.FollowService
	chats   ports.ChatService
	groups  ports.ChatGroupService
}

func NewServer(follows ports.FollowService, chats ports.ChatService, groups ports.ChatGroupService) *Server {
	return &Server{follows: follows, chats: chats, groups: groups}
}

// Router assemble le moteur gin avec l'instrumentation OTEL.
func (s *Server) Router(serviceName string) *gin.Engine {
	router := gin.New()
	router.Use(otelgin.Middleware(serviceName))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Graphe de follows
		api.POST("/follows", s.follow)
		api.DELETE("/follows", s.unfollow)
		api.GET("/users/:id/followers", s.followers)
		api.GET("/users/:id/following", s.following)
		api.GET("/users/:id/friends", s.friends)
		api.GET("/users/:id/discover", s.discoverableUsers)

		// Conversations directes
		api.POST("/chats", s.createChat)
		api.GET("/chats/between", s.findChatBetween)
		api.GET("/users/:id/chats", s.chatsForUser)
		api.GET("/chats/:id/messages", s.messagesForChat)

		// Groupes
		api.POST("/chat-groups", s.createGroup)
		api.GET("/chat-groups", s.listGroups)
		api.GET("/chat-groups/:id", s.getGroup)
		api.PATCH("/chat-groups/:id", s.updateGroup)
		api.DELETE("/chat-groups/:id", s.removeGroup)
		api.POST("/chat-groups/:id/members", s.joinGroup)
		api.GET("/chat-groups/:id/messages", s.messagesForGroup)
		api.GET("/users/:id/chat-groups", s.groupsForUser)
	}

	return router
}

// mapDomainError traduit le Kind du domaine en statut HTTP.
// Le Kind détermine le statut, le Message est affichable tel quel ; tout le
// reste sort en 500 générique (jamais le détail de l'erreur interne).
func mapDomainError(c *gin.Context, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		c.JSON(statusOf(domainErr.Kind), gin.H{"error": domainErr.Message})
		return
	}

	slog.Error("unexpected error", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindSelfReference, domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
