package search

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"travel/internal/pricing"
	"travel/internal/results"
	"travel/pkg/amadeus"
	"travel/pkg/cache"
	"travel/pkg/idgen"
	"travel/pkg/logger"
)

// ErrSupplierFetch marks an upstream failure. Fatal for the whole request;
// handlers surface it as a retryable search failure.
var ErrSupplierFetch = errors.New("supplier search failed")

// SupplierClient is the upstream travel supplier, treated as a black box.
type SupplierClient interface {
	SearchFlightOffers(ctx context.Context, params amadeus.FlightSearchParams) ([]amadeus.RawFlightOffer, error)
	SearchHotelOffers(ctx context.Context, params amadeus.HotelSearchParams) ([]amadeus.RawHotelOffer, error)
}

// SettingsProvider yields the requesting agent's pricing configuration.
type SettingsProvider interface {
	GetOrCreate(ctx context.Context, userID int64) (pricing.PricingConfig, error)
}

// Refinement carries the UI-selected filters, sort key, and page.
type Refinement struct {
	Filters results.FilterSpec
	Sort    results.SortKey
	Page    int
}

// Service runs the results pipeline: fetch, annotate, filter, sort, paginate.
// Each stage after the fetch is a pure transformation; a fetch failure aborts
// the request, annotation failures degrade it offer by offer.
type Service struct {
	store    Store
	supplier SupplierClient
	settings SettingsProvider
	cache    cache.Cache
	ttl      time.Duration
	idgen    idgen.Generator
	logger   logger.Client

	annotator *pricing.Annotator
}

func NewService(store Store, supplier SupplierClient, settings SettingsProvider,
	cache cache.Cache, ttlMinutes int, idgen idgen.Generator, logger logger.Client) *Service {
	return &Service{
		store:     store,
		supplier:  supplier,
		settings:  settings,
		cache:     cache,
		ttl:       time.Duration(ttlMinutes) * time.Minute,
		idgen:     idgen,
		logger:    logger,
		annotator: pricing.NewAnnotator(logger),
	}
}

func (s *Service) CreateSearch(ctx context.Context, userID, clientID int64, req CreateSearchRequest) (*Search, error) {
	search := &Search{
		ID:            s.idgen.GenerateID(),
		UserID:        userID,
		ClientID:      clientID,
		Type:          req.Type,
		FromLocation:  req.FromLocation,
		ToLocation:    req.ToLocation,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Rooms:         req.Rooms,
		WithPets:      req.WithPets,
		CreatedAt:     time.Now(),
	}

	if err := s.store.Create(ctx, search); err != nil {
		return nil, err
	}
	return search, nil
}

func (s *Service) GetSearch(ctx context.Context, id, userID, clientID int64) (*Search, error) {
	return s.store.GetByID(ctx, id, userID, clientID)
}

// Flights executes the pipeline for a stored flight search.
func (s *Service) Flights(ctx context.Context, userID, clientID, searchID int64, ref Refinement) (*results.ResultPage, error) {
	search, err := s.store.GetByID(ctx, searchID, userID, clientID)
	if err != nil {
		return nil, err
	}
	if search.Type != SearchTypeFlight {
		return nil, fmt.Errorf("%w: search %d is not a flight search", ErrNotFound, searchID)
	}

	// Pricing config is loaded once and threaded explicitly through the
	// pipeline, never read from ambient state.
	config, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw, err := s.fetchFlightOffers(ctx, search)
	if err != nil {
		return nil, err
	}

	priced := s.annotator.AnnotateFlights(raw, config)
	return assemblePage(priced, ref), nil
}

// Hotels executes the pipeline for a stored hotel search.
func (s *Service) Hotels(ctx context.Context, userID, clientID, searchID int64, ref Refinement) (*results.ResultPage, error) {
	search, err := s.store.GetByID(ctx, searchID, userID, clientID)
	if err != nil {
		return nil, err
	}
	if search.Type != SearchTypeHotel {
		return nil, fmt.Errorf("%w: search %d is not a hotel search", ErrNotFound, searchID)
	}

	config, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw, err := s.fetchHotelOffers(ctx, search)
	if err != nil {
		return nil, err
	}

	priced := s.annotator.AnnotateHotels(raw, config)
	return assemblePage(priced, ref), nil
}

// assemblePage runs the pure stages: filter, sort, facets, paginate.
// These never fail on well-formed priced offers.
func assemblePage(priced []pricing.PricedOffer, ref Refinement) *results.ResultPage {
	filtered := results.Filter(priced, ref.Filters)
	sorted := results.Sort(filtered, ref.Sort)

	page := ref.Page
	if page < 1 {
		page = 1
	}
	items, totalPages := results.Paginate(sorted, results.PageSize, page)

	return &results.ResultPage{
		Results:     items,
		CurrentPage: page,
		TotalPages:  totalPages,
		Facets:      results.ComputeFacets(filtered),
	}
}

func (s *Service) fetchFlightOffers(ctx context.Context, search *Search) ([]amadeus.RawFlightOffer, error) {
	cacheKey := s.cacheKey(search)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var raw []amadeus.RawFlightOffer
		if err := json.Unmarshal([]byte(cached), &raw); err == nil {
			s.logger.Debug("supplier cache hit", logger.Field{Key: "cache_key", Value: cacheKey})
			return raw, nil
		}
		s.logger.Error("failed to unmarshal cached offers", logger.Err(err))
	}

	returnDate := ""
	if search.ReturnDate != nil {
		returnDate = *search.ReturnDate
	}
	raw, err := s.supplier.SearchFlightOffers(ctx, amadeus.FlightSearchParams{
		Origin:        search.FromLocation,
		Destination:   search.ToLocation,
		DepartureDate: search.DepartureDate,
		ReturnDate:    returnDate,
		Adults:        search.Adults,
		Children:      search.Children,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSupplierFetch, err)
	}

	s.storeInCache(cacheKey, raw)
	return raw, nil
}

func (s *Service) fetchHotelOffers(ctx context.Context, search *Search) ([]amadeus.RawHotelOffer, error) {
	cacheKey := s.cacheKey(search)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var raw []amadeus.RawHotelOffer
		if err := json.Unmarshal([]byte(cached), &raw); err == nil {
			s.logger.Debug("supplier cache hit", logger.Field{Key: "cache_key", Value: cacheKey})
			return raw, nil
		}
		s.logger.Error("failed to unmarshal cached offers", logger.Err(err))
	}

	checkOut := ""
	if search.ReturnDate != nil {
		checkOut = *search.ReturnDate
	}
	rooms := uint32(0)
	if search.Rooms != nil {
		rooms = *search.Rooms
	}
	raw, err := s.supplier.SearchHotelOffers(ctx, amadeus.HotelSearchParams{
		CityCode:     search.ToLocation,
		CheckInDate:  search.DepartureDate,
		CheckOutDate: checkOut,
		Adults:       search.Adults,
		Rooms:        rooms,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSupplierFetch, err)
	}

	s.storeInCache(cacheKey, raw)
	return raw, nil
}

// storeInCache writes raw supplier results in the background; cache failures
// are logged, never surfaced.
func (s *Service) storeInCache(cacheKey string, raw any) {
	rawBytes, err := json.Marshal(raw)
	if err != nil {
		s.logger.Error("failed to marshal offers for caching", logger.Err(err))
		return
	}

	go func() {
		bgCtx := context.Background()
		if err := s.cache.Set(bgCtx, cacheKey, string(rawBytes), s.ttl); err != nil {
			s.logger.Error("failed to cache supplier results",
				logger.Err(err),
				logger.Field{Key: "cache_key", Value: cacheKey},
			)
		}
	}()
}

// cacheKey creates a deterministic key from the stored search parameters
func (s *Service) cacheKey(search *Search) string {
	returnDate := ""
	if search.ReturnDate != nil {
		returnDate = *search.ReturnDate
	}
	rooms := uint32(0)
	if search.Rooms != nil {
		rooms = *search.Rooms
	}

	key := fmt.Sprintf("%s:%s:%s:%s:%s:%d:%d:%d",
		search.Type,
		search.FromLocation,
		search.ToLocation,
		search.DepartureDate,
		returnDate,
		search.Adults,
		search.Children,
		rooms,
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("travel:search:%x", hash[:16])
}
