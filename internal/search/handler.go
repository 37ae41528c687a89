package search

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"travel/internal/httpx"
	"travel/internal/results"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/travel/search", h.CreateSearchHandler)
	router.GET("/v1/travel/flights", h.FlightResultsHandler)
	router.GET("/v1/travel/hotels", h.HotelResultsHandler)
}

func (h *Handler) CreateSearchHandler(c *gin.Context) {
	userID, clientID, ok := httpx.Identity(c)
	if !ok {
		return
	}

	var req CreateSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	search, err := h.service.CreateSearch(c.Request.Context(), userID, clientID, req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, search)
}

// FlightResultsHandler godoc
// @Summary      Priced flight results for a stored search
// @Description  Applies the agency markup, then filters, sorts, and paginates
// @Tags         travel
// @Produce      json
// @Param        search_id    query int    true  "Stored search ID"
// @Param        sort         query string false "price_asc|price_desc|duration_asc|stops_asc"
// @Param        stops        query string false "Comma-separated stop counts"
// @Param        price_range  query string false "min-max on the resold total"
// @Param        airlines     query string false "Comma-separated airline codes"
// @Param        page         query int    false "1-indexed page"
// @Success      200 {object} results.ResultPage
// @Failure      404 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /v1/travel/flights [get]
func (h *Handler) FlightResultsHandler(c *gin.Context) {
	userID, clientID, ok := httpx.Identity(c)
	if !ok {
		return
	}

	searchID, err := strconv.ParseInt(c.Query("search_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing or invalid search_id",
			"code":  ErrorCodeValidation,
		})
		return
	}

	ref := refinementFromQuery(c)
	page, err := h.service.Flights(c.Request.Context(), userID, clientID, searchID, ref)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) HotelResultsHandler(c *gin.Context) {
	userID, clientID, ok := httpx.Identity(c)
	if !ok {
		return
	}

	searchID, err := strconv.ParseInt(c.Query("search_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing or invalid search_id",
			"code":  ErrorCodeValidation,
		})
		return
	}

	ref := refinementFromQuery(c)
	page, err := h.service.Hotels(c.Request.Context(), userID, clientID, searchID, ref)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// refinementFromQuery parses the filter/sort/page parameters. Unrecognized
// values are dropped, never rejected.
func refinementFromQuery(c *gin.Context) Refinement {
	ref := Refinement{
		Sort: results.ParseSortKey(c.Query("sort")),
		Page: 1,
	}

	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		ref.Page = p
	}

	if raw := c.Query("stops"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && n >= 0 {
				ref.Filters.Stops = append(ref.Filters.Stops, n)
			}
		}
	}

	if raw := c.Query("price_range"); raw != "" {
		if bounds := parsePriceRange(raw); bounds != nil {
			ref.Filters.PriceRange = bounds
		}
	}

	if raw := c.Query("airlines"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if code := strings.TrimSpace(part); code != "" {
				ref.Filters.Airlines = append(ref.Filters.Airlines, code)
			}
		}
	}

	if raw := c.Query("rating"); raw != "" {
		if r, err := strconv.ParseFloat(raw, 64); err == nil && r >= 0 {
			ref.Filters.MinRating = &r
		}
	}

	if raw := c.Query("amenities"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if a := strings.TrimSpace(part); a != "" {
				ref.Filters.Amenities = append(ref.Filters.Amenities, a)
			}
		}
	}

	return ref
}

// parsePriceRange reads "min-max" against the resold total price.
func parsePriceRange(raw string) *results.PriceRange {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return nil
	}

	min, errMin := decimal.NewFromString(strings.TrimSpace(parts[0]))
	max, errMax := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if errMin != nil || errMax != nil || min.GreaterThan(max) {
		return nil
	}

	return &results.PriceRange{Min: min, Max: max}
}

func sendError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		switch {
		case errors.Is(err, ErrNotFound):
			appErr = NewNotFoundError("Search not found")
		case errors.Is(err, ErrSupplierFetch):
			appErr = NewSupplierError()
		default:
			// Default to 500 for unknown errors
			appErr = NewInternalError()
		}
	}

	c.JSON(appErr.Status, gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}
