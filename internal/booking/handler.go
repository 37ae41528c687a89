package booking

import (
	"errors"
	"net/http"
	"travel/internal/httpx"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/travel/book", h.CreateBookingHandler)
	router.GET("/v1/travel/bookings", h.ListBookingsHandler)
}

func (h *Handler) CreateBookingHandler(c *gin.Context) {
	userID, clientID, ok := httpx.Identity(c)
	if !ok {
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	booking, err := h.service.Create(c.Request.Context(), userID, clientID, req)
	if err != nil {
		if errors.Is(err, ErrSupplierBooking) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Booking failed, please try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *Handler) ListBookingsHandler(c *gin.Context) {
	userID, clientID, ok := httpx.Identity(c)
	if !ok {
		return
	}

	bookings, err := h.service.List(c.Request.Context(), userID, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
