package search

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
	"travel/internal/pricing"
	"travel/internal/results"
	"travel/pkg/amadeus"
	"travel/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, search *Search) error {
	args := m.Called(ctx, search)
	return args.Error(0)
}

func (m *MockStore) GetByID(ctx context.Context, id, userID, clientID int64) (*Search, error) {
	args := m.Called(ctx, id, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Search), args.Error(1)
}

type MockSupplier struct {
	mock.Mock
}

func (m *MockSupplier) SearchFlightOffers(ctx context.Context, params amadeus.FlightSearchParams) ([]amadeus.RawFlightOffer, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]amadeus.RawFlightOffer), args.Error(1)
}

func (m *MockSupplier) SearchHotelOffers(ctx context.Context, params amadeus.HotelSearchParams) ([]amadeus.RawHotelOffer, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]amadeus.RawHotelOffer), args.Error(1)
}

type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) GetOrCreate(ctx context.Context, userID int64) (pricing.PricingConfig, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(pricing.PricingConfig), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockIDGen struct {
	mock.Mock
}

func (m *MockIDGen) GenerateID() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockIDGen) GenerateStringID() string {
	args := m.Called()
	return args.String(0)
}

func rawFlight(id, total string) amadeus.RawFlightOffer {
	return amadeus.RawFlightOffer{
		ID: id,
		Itineraries: []amadeus.RawItinerary{{
			Duration: "PT2H25M",
			Segments: []amadeus.RawSegment{{
				Departure: amadeus.RawEndpoint{IataCode: "CGK", At: "2026-09-10T07:00:00"},
				Arrival:   amadeus.RawEndpoint{IataCode: "SIN", At: "2026-09-10T09:25:00"},
			}},
		}},
		Price:                  amadeus.RawPrice{Total: total, Currency: "EUR"},
		ValidatingAirlineCodes: []string{"GA"},
	}
}

func flightSearch() *Search {
	return &Search{
		ID:            100,
		UserID:        7,
		ClientID:      3,
		Type:          SearchTypeFlight,
		FromLocation:  "CGK",
		ToLocation:    "SIN",
		DepartureDate: "2026-09-10",
		Adults:        1,
	}
}

func newTestService(store Store, supplier SupplierClient, settings SettingsProvider, c *MockCache, gen *MockIDGen) *Service {
	log := logger.NewWithWriter("development", &bytes.Buffer{})
	return NewService(store, supplier, settings, c, 30, gen, log)
}

func TestService_CreateSearch(t *testing.T) {
	store := new(MockStore)
	gen := new(MockIDGen)
	svc := newTestService(store, new(MockSupplier), new(MockSettings), new(MockCache), gen)

	gen.On("GenerateID").Return(int64(42))
	store.On("Create", mock.Anything, mock.AnythingOfType("*search.Search")).Return(nil)

	got, err := svc.CreateSearch(context.Background(), 7, 3, CreateSearchRequest{
		Type:          SearchTypeFlight,
		FromLocation:  "CGK",
		ToLocation:    "SIN",
		DepartureDate: "2026-09-10",
		Adults:        1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, int64(3), got.ClientID)
	store.AssertExpectations(t)
}

func TestService_Flights_Pipeline(t *testing.T) {
	store := new(MockStore)
	supplier := new(MockSupplier)
	settings := new(MockSettings)
	c := new(MockCache)
	svc := newTestService(store, supplier, settings, c, new(MockIDGen))

	store.On("GetByID", mock.Anything, int64(100), int64(7), int64(3)).Return(flightSearch(), nil)
	settings.On("GetOrCreate", mock.Anything, int64(7)).Return(pricing.DefaultConfig(), nil)
	c.On("Get", mock.Anything, mock.AnythingOfType("string")).Return("", errors.New("cache miss"))
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	supplier.On("SearchFlightOffers", mock.Anything, mock.AnythingOfType("amadeus.FlightSearchParams")).
		Return([]amadeus.RawFlightOffer{
			rawFlight("1", "300.00"),
			rawFlight("2", "100.00"),
			rawFlight("3", "200.00"),
		}, nil)

	page, err := svc.Flights(context.Background(), 7, 3, 100, Refinement{Sort: results.SortPriceAsc, Page: 1})

	require.NoError(t, err)
	require.Len(t, page.Results, 3)
	// Cheapest first: 100 base + 10% + 50 fee = 160.
	assert.Equal(t, "2", page.Results[0].ID())
	assert.True(t, page.Results[0].Price.TotalPrice.Equal(decimal.NewFromInt(160)))
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, []string{"GA"}, page.Facets.Airlines)
	store.AssertExpectations(t)
	supplier.AssertExpectations(t)
}

func TestService_Flights_FilterAppliesBeforeFacets(t *testing.T) {
	store := new(MockStore)
	supplier := new(MockSupplier)
	settings := new(MockSettings)
	c := new(MockCache)
	svc := newTestService(store, supplier, settings, c, new(MockIDGen))

	twoSegments := rawFlight("stopover", "500.00")
	twoSegments.Itineraries[0].Segments = append(twoSegments.Itineraries[0].Segments,
		twoSegments.Itineraries[0].Segments[0])

	store.On("GetByID", mock.Anything, int64(100), int64(7), int64(3)).Return(flightSearch(), nil)
	settings.On("GetOrCreate", mock.Anything, int64(7)).Return(pricing.DefaultConfig(), nil)
	c.On("Get", mock.Anything, mock.AnythingOfType("string")).Return("", errors.New("cache miss"))
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	supplier.On("SearchFlightOffers", mock.Anything, mock.Anything).
		Return([]amadeus.RawFlightOffer{rawFlight("direct", "300.00"), twoSegments}, nil)

	page, err := svc.Flights(context.Background(), 7, 3, 100, Refinement{
		Filters: results.FilterSpec{Stops: []int{0}},
		Page:    1,
	})

	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "direct", page.Results[0].ID())
	// Facets describe the filtered set, not the full supplier response.
	assert.Equal(t, []int{0}, page.Facets.Stops)
}

func TestService_Flights_CacheHitSkipsSupplier(t *testing.T) {
	store := new(MockStore)
	supplier := new(MockSupplier)
	settings := new(MockSettings)
	c := new(MockCache)
	svc := newTestService(store, supplier, settings, c, new(MockIDGen))

	cached := `[{"id":"7","itineraries":[{"duration":"PT1H30M","segments":[{"departure":{"iataCode":"CGK","at":"2026-09-10T07:00:00"},"arrival":{"iataCode":"SIN","at":"2026-09-10T08:30:00"}}]}],"price":{"total":"150.00","currency":"EUR"},"validatingAirlineCodes":["SQ"]}]`

	store.On("GetByID", mock.Anything, int64(100), int64(7), int64(3)).Return(flightSearch(), nil)
	settings.On("GetOrCreate", mock.Anything, int64(7)).Return(pricing.DefaultConfig(), nil)
	c.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(cached, nil)

	page, err := svc.Flights(context.Background(), 7, 3, 100, Refinement{Page: 1})

	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "7", page.Results[0].ID())
	supplier.AssertNotCalled(t, "SearchFlightOffers", mock.Anything, mock.Anything)
}

func TestService_Flights_SupplierFailure(t *testing.T) {
	store := new(MockStore)
	supplier := new(MockSupplier)
	settings := new(MockSettings)
	c := new(MockCache)
	svc := newTestService(store, supplier, settings, c, new(MockIDGen))

	store.On("GetByID", mock.Anything, int64(100), int64(7), int64(3)).Return(flightSearch(), nil)
	settings.On("GetOrCreate", mock.Anything, int64(7)).Return(pricing.DefaultConfig(), nil)
	c.On("Get", mock.Anything, mock.AnythingOfType("string")).Return("", errors.New("cache miss"))
	supplier.On("SearchFlightOffers", mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream timeout"))

	_, err := svc.Flights(context.Background(), 7, 3, 100, Refinement{Page: 1})

	assert.ErrorIs(t, err, ErrSupplierFetch)
}

func TestService_Flights_WrongSearchType(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, new(MockSupplier), new(MockSettings), new(MockCache), new(MockIDGen))

	hotel := flightSearch()
	hotel.Type = SearchTypeHotel
	store.On("GetByID", mock.Anything, int64(100), int64(7), int64(3)).Return(hotel, nil)

	_, err := svc.Flights(context.Background(), 7, 3, 100, Refinement{Page: 1})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Flights_SearchNotFound(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, new(MockSupplier), new(MockSettings), new(MockCache), new(MockIDGen))

	store.On("GetByID", mock.Anything, int64(999), int64(7), int64(3)).Return(nil, ErrNotFound)

	_, err := svc.Flights(context.Background(), 7, 3, 999, Refinement{Page: 1})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Hotels_Pipeline(t *testing.T) {
	store := new(MockStore)
	supplier := new(MockSupplier)
	settings := new(MockSettings)
	c := new(MockCache)
	svc := newTestService(store, supplier, settings, c, new(MockIDGen))

	checkOut := "2026-09-14"
	rooms := uint32(1)
	hotelSearch := &Search{
		ID:            200,
		UserID:        7,
		ClientID:      3,
		Type:          SearchTypeHotel,
		ToLocation:    "PAR",
		DepartureDate: "2026-09-10",
		ReturnDate:    &checkOut,
		Adults:        2,
		Rooms:         &rooms,
	}

	store.On("GetByID", mock.Anything, int64(200), int64(7), int64(3)).Return(hotelSearch, nil)
	settings.On("GetOrCreate", mock.Anything, int64(7)).Return(pricing.DefaultConfig(), nil)
	c.On("Get", mock.Anything, mock.AnythingOfType("string")).Return("", errors.New("cache miss"))
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	supplier.On("SearchHotelOffers", mock.Anything, amadeus.HotelSearchParams{
		CityCode:     "PAR",
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-14",
		Adults:       2,
		Rooms:        1,
	}).Return([]amadeus.RawHotelOffer{{
		Hotel: amadeus.RawHotelInfo{HotelID: "HTPAR001", Name: "Hotel One", Rating: "4", Amenities: []string{"WIFI"}},
		Offers: []amadeus.RawRoomOffer{{
			ID:    "RO1",
			Price: amadeus.RawPrice{Total: "200.00", Currency: "EUR"},
		}},
	}}, nil)

	page, err := svc.Hotels(context.Background(), 7, 3, 200, Refinement{Page: 1})

	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "HTPAR001", page.Results[0].ID())
	// 200 base + 20 commission + 50 fee.
	assert.True(t, page.Results[0].Price.TotalPrice.Equal(decimal.NewFromInt(270)))
	supplier.AssertExpectations(t)
}
