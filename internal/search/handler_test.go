package search

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"travel/internal/results"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/travel/flights?"+rawQuery, nil)
	return c
}

func TestRefinementFromQuery_Defaults(t *testing.T) {
	ref := refinementFromQuery(queryContext(t, ""))

	assert.Equal(t, results.SortPriceAsc, ref.Sort)
	assert.Equal(t, 1, ref.Page)
	assert.True(t, ref.Filters.PriceRange == nil && len(ref.Filters.Stops) == 0)
}

func TestRefinementFromQuery_FullQuery(t *testing.T) {
	ref := refinementFromQuery(queryContext(t,
		"sort=price_desc&page=3&stops=0,1&airlines=GA,SQ&price_range=100-500&rating=4&amenities=pool,wifi"))

	assert.Equal(t, results.SortPriceDesc, ref.Sort)
	assert.Equal(t, 3, ref.Page)
	assert.Equal(t, []int{0, 1}, ref.Filters.Stops)
	assert.Equal(t, []string{"GA", "SQ"}, ref.Filters.Airlines)
	require.NotNil(t, ref.Filters.PriceRange)
	assert.True(t, ref.Filters.PriceRange.Min.Equal(decimal.NewFromInt(100)))
	assert.True(t, ref.Filters.PriceRange.Max.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, ref.Filters.MinRating)
	assert.Equal(t, 4.0, *ref.Filters.MinRating)
	assert.Equal(t, []string{"pool", "wifi"}, ref.Filters.Amenities)
}

func TestRefinementFromQuery_DropsUnrecognizedValues(t *testing.T) {
	ref := refinementFromQuery(queryContext(t,
		"sort=cheapest&page=-2&stops=0,abc,-1&price_range=banana&rating=lots"))

	assert.Equal(t, results.SortPriceAsc, ref.Sort)
	assert.Equal(t, 1, ref.Page)
	assert.Equal(t, []int{0}, ref.Filters.Stops)
	assert.Nil(t, ref.Filters.PriceRange)
	assert.Nil(t, ref.Filters.MinRating)
}

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		in      string
		wantNil bool
	}{
		{"100-500", false},
		{"0-0", false},
		{" 10 - 20 ", false},
		{"500-100", true},
		{"100", true},
		{"a-b", true},
		{"", true},
	}

	for _, tc := range tests {
		got := parsePriceRange(tc.in)
		if tc.wantNil {
			assert.Nil(t, got, "parsePriceRange(%q)", tc.in)
		} else {
			assert.NotNil(t, got, "parsePriceRange(%q)", tc.in)
		}
	}
}

func TestSendError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{"not found", ErrNotFound, http.StatusNotFound, ErrorCodeNotFound},
		{"wrapped not found", fmt.Errorf("search 9 is not a flight search: %w", ErrNotFound), http.StatusNotFound, ErrorCodeNotFound},
		{"supplier failure", ErrSupplierFetch, http.StatusBadGateway, ErrorCodeSupplier},
		{"app error passthrough", &AppError{Status: http.StatusUnprocessableEntity, Code: ErrorCodeValidation, Message: "bad input"}, http.StatusUnprocessableEntity, ErrorCodeValidation},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, ErrorCodeInternalFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			sendError(c, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), string(tc.wantCode))
		})
	}
}
