package settings

import (
	"errors"
	"net/http"
	"travel/internal/httpx"
	"travel/internal/pricing"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/travel/settings", h.GetSettingsHandler)
	router.POST("/v1/travel/settings", h.UpdateSettingsHandler)
}

func (h *Handler) GetSettingsHandler(c *gin.Context) {
	userID, _, ok := httpx.Identity(c)
	if !ok {
		return
	}

	cfg, err := h.store.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateSettingsHandler(c *gin.Context) {
	userID, _, ok := httpx.Identity(c)
	if !ok {
		return
	}

	var cfg pricing.PricingConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	updated, err := h.store.Update(c.Request.Context(), userID, cfg)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidConfig) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"settings": updated,
	})
}
