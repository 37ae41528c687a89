package amadeus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"travel/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// APIError is a non-2xx answer from the supplier.
type APIError struct {
	Status int
	Title  string
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amadeus: api returned status %d: %s: %s", e.Status, e.Title, e.Detail)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Client
}

// NewClient builds a supplier client authenticating with the client
// credentials grant. The token source caches the token and refreshes it
// before expiry; token requests go through the caller's httpClient.
func NewClient(httpClient *http.Client, baseURL, clientID, clientSecret string, logger logger.Client) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	authClient := &http.Client{
		Timeout: httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: conf.TokenSource(ctx),
			Base:   httpClient.Transport,
		},
	}

	return &Client{
		httpClient: authClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + query.Encode()
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("amadeus: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("amadeus: failed to decode json response: %w", err)
	}
	return nil
}

func (c *Client) doPost(ctx context.Context, path string, body any, out any) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("amadeus: failed to marshal request: %w", err)
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("amadeus: failed to build request: %w", err)
	}
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("amadeus: failed to decode json response: %w", err)
	}
	return nil
}

// wrapTransportError surfaces a failed token exchange as an APIError; other
// transport failures keep their cause.
func wrapTransportError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		apiErr := &APIError{Status: retrieveErr.Response.StatusCode}
		var body apiErrorBody
		if jsonErr := json.Unmarshal(retrieveErr.Body, &body); jsonErr == nil && len(body.Errors) > 0 {
			apiErr.Title = body.Errors[0].Title
			apiErr.Detail = body.Errors[0].Detail
		}
		return apiErr
	}
	return fmt.Errorf("amadeus: external api call failed: %w", err)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var body apiErrorBody
		if err := json.Unmarshal(raw, &body); err == nil && len(body.Errors) > 0 {
			apiErr.Title = body.Errors[0].Title
			apiErr.Detail = body.Errors[0].Detail
		}
	}
	return apiErr
}

func (c *Client) SearchFlightOffers(ctx context.Context, params FlightSearchParams) ([]RawFlightOffer, error) {
	q := url.Values{}
	q.Set("originLocationCode", params.Origin)
	q.Set("destinationLocationCode", params.Destination)
	q.Set("departureDate", params.DepartureDate)
	if params.ReturnDate != "" {
		q.Set("returnDate", params.ReturnDate)
	}
	q.Set("adults", strconv.FormatUint(uint64(params.Adults), 10))
	if params.Children > 0 {
		q.Set("children", strconv.FormatUint(uint64(params.Children), 10))
	}
	q.Set("max", "100")

	var out flightOffersResponse
	if err := c.doGet(ctx, "/v2/shopping/flight-offers", q, &out); err != nil {
		return nil, err
	}
	c.logger.Debug("amadeus flight offers fetched", logger.Field{Key: "count", Value: len(out.Data)})
	return out.Data, nil
}

func (c *Client) SearchHotelOffers(ctx context.Context, params HotelSearchParams) ([]RawHotelOffer, error) {
	q := url.Values{}
	q.Set("cityCode", params.CityCode)
	q.Set("checkInDate", params.CheckInDate)
	q.Set("checkOutDate", params.CheckOutDate)
	q.Set("adults", strconv.FormatUint(uint64(params.Adults), 10))
	if params.Rooms > 0 {
		q.Set("roomQuantity", strconv.FormatUint(uint64(params.Rooms), 10))
	}

	var out hotelOffersResponse
	if err := c.doGet(ctx, "/v2/shopping/hotel-offers", q, &out); err != nil {
		return nil, err
	}
	c.logger.Debug("amadeus hotel offers fetched", logger.Field{Key: "count", Value: len(out.Data)})
	return out.Data, nil
}

// CreateFlightOrder books a flight offer previously returned by search.
// details is the supplier-shaped order payload assembled by the caller.
func (c *Client) CreateFlightOrder(ctx context.Context, details json.RawMessage) (*BookingConfirmation, error) {
	var out bookingResponse
	if err := c.doPost(ctx, "/v1/booking/flight-orders", map[string]json.RawMessage{"data": details}, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateHotelBooking books a hotel room offer previously returned by search.
func (c *Client) CreateHotelBooking(ctx context.Context, details json.RawMessage) (*BookingConfirmation, error) {
	var out bookingResponse
	if err := c.doPost(ctx, "/v1/booking/hotel-bookings", map[string]json.RawMessage{"data": details}, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
