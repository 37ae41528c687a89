package favorites

import (
	"encoding/json"
	"net/http"
	"time"
	"travel/internal/httpx"
	"travel/pkg/idgen"

	"github.com/gin-gonic/gin"
)

type ToggleRequest struct {
	Type       string          `json:"type" binding:"required,oneof=flight hotel"`
	ProviderID string          `json:"provider_id" binding:"required"`
	Details    json.RawMessage `json:"details"`
}

type Handler struct {
	store Store
	idgen idgen.Generator
}

func NewHandler(store Store, idgen idgen.Generator) *Handler {
	return &Handler{store: store, idgen: idgen}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/travel/favorite", h.ToggleFavoriteHandler)
	router.GET("/v1/travel/favorites", h.ListFavoritesHandler)
}

// ToggleFavoriteHandler removes the favorite when it exists, creates it
// otherwise.
func (h *Handler) ToggleFavoriteHandler(c *gin.Context) {
	userID, clientID, ok := httpx.Identity(c)
	if !ok {
		return
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	removed, err := h.store.Delete(c.Request.Context(), userID, clientID, req.Type, req.ProviderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if removed {
		c.JSON(http.StatusOK, gin.H{"favorited": false})
		return
	}

	favorite := &Favorite{
		ID:         h.idgen.GenerateID(),
		UserID:     userID,
		ClientID:   clientID,
		Type:       req.Type,
		ProviderID: req.ProviderID,
		Details:    req.Details,
		CreatedAt:  time.Now(),
	}
	if err := h.store.Insert(c.Request.Context(), favorite); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": true})
}

func (h *Handler) ListFavoritesHandler(c *gin.Context) {
	userID, clientID, ok := httpx.Identity(c)
	if !ok {
		return
	}

	favorites, err := h.store.ListByOwner(c.Request.Context(), userID, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
