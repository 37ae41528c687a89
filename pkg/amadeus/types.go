package amadeus

// Raw wire types mirroring the Amadeus Self-Service API payloads. Monetary
// amounts arrive as JSON strings and are kept that way here; parsing and
// validation happen at the annotation boundary, not in this package.

type RawPrice struct {
	Total    string `json:"total"`
	Base     string `json:"base,omitempty"`
	Currency string `json:"currency"`
}

type RawEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type RawSegment struct {
	Departure   RawEndpoint `json:"departure"`
	Arrival     RawEndpoint `json:"arrival"`
	CarrierCode string      `json:"carrierCode"`
	Number      string      `json:"number"`
	Duration    string      `json:"duration,omitempty"`
}

type RawItinerary struct {
	// Duration is ISO 8601, e.g. "PT5H30M".
	Duration string       `json:"duration"`
	Segments []RawSegment `json:"segments"`
}

type RawFlightOffer struct {
	ID                     string         `json:"id"`
	Source                 string         `json:"source,omitempty"`
	Itineraries            []RawItinerary `json:"itineraries"`
	Price                  RawPrice       `json:"price"`
	ValidatingAirlineCodes []string       `json:"validatingAirlineCodes"`
	NumberOfBookableSeats  uint32         `json:"numberOfBookableSeats,omitempty"`
}

type RawHotelInfo struct {
	HotelID  string   `json:"hotelId"`
	Name     string   `json:"name"`
	CityCode string   `json:"cityCode,omitempty"`
	// Rating is a string on the wire ("1".."5").
	Rating    string   `json:"rating,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

type RawRoomOffer struct {
	ID           string   `json:"id"`
	CheckInDate  string   `json:"checkInDate,omitempty"`
	CheckOutDate string   `json:"checkOutDate,omitempty"`
	Price        RawPrice `json:"price"`
}

type RawHotelOffer struct {
	Hotel     RawHotelInfo   `json:"hotel"`
	Available bool           `json:"available,omitempty"`
	Offers    []RawRoomOffer `json:"offers"`
}

type FlightSearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        uint32
	Children      uint32
}

type HotelSearchParams struct {
	CityCode     string
	CheckInDate  string
	CheckOutDate string
	Adults       uint32
	Rooms        uint32
}

// BookingConfirmation is the supplier's answer to a booking request: its own
// reference plus the confirmed (pre-markup) price.
type BookingConfirmation struct {
	ID    string   `json:"id"`
	Price RawPrice `json:"price"`
}

type flightOffersResponse struct {
	Data []RawFlightOffer `json:"data"`
}

type hotelOffersResponse struct {
	Data []RawHotelOffer `json:"data"`
}

type bookingResponse struct {
	Data BookingConfirmation `json:"data"`
}

type apiErrorBody struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}
