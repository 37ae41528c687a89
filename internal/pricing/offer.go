package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"travel/pkg/amadeus"

	"github.com/shopspring/decimal"
)

type OfferType string

const (
	OfferTypeFlight OfferType = "flight"
	OfferTypeHotel  OfferType = "hotel"
)

// FlightOffer is the validated, typed form of one supplier flight itinerary.
type FlightOffer struct {
	ID              string   `json:"id"`
	Airline         string   `json:"airline"`
	Segments        int      `json:"segments"`
	DurationMinutes int      `json:"duration_minutes"`
	Departure       string   `json:"departure"`
	Arrival         string   `json:"arrival"`
	DepartureAt     string   `json:"departure_at"`
	ArrivalAt       string   `json:"arrival_at"`
	BookableSeats   uint32   `json:"bookable_seats,omitempty"`
	AirlineCodes    []string `json:"airline_codes,omitempty"`
}

// HotelOffer is the validated, typed form of one supplier hotel property plus
// its single room offer.
type HotelOffer struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CityCode     string   `json:"city_code,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	RoomOfferID  string   `json:"room_offer_id"`
	CheckInDate  string   `json:"check_in_date,omitempty"`
	CheckOutDate string   `json:"check_out_date,omitempty"`
}

// Offer is a tagged union over the two product kinds. Exactly one of Flight
// and Hotel is set, matching Type.
type Offer struct {
	Type   OfferType    `json:"type"`
	Flight *FlightOffer `json:"flight,omitempty"`
	Hotel  *HotelOffer  `json:"hotel,omitempty"`
}

// PricedOffer is an Offer with its resold price breakdown attached. Immutable
// once built; re-annotating the same base price with the same config yields
// the same breakdown.
type PricedOffer struct {
	Offer Offer          `json:"offer"`
	Price PriceBreakdown `json:"price"`
}

func (p PricedOffer) ID() string {
	switch p.Offer.Type {
	case OfferTypeFlight:
		if p.Offer.Flight != nil {
			return p.Offer.Flight.ID
		}
	case OfferTypeHotel:
		if p.Offer.Hotel != nil {
			return p.Offer.Hotel.ID
		}
	}
	return ""
}

// Stops reports segments-1 for a flight offer. ok is false for hotels.
func (p PricedOffer) Stops() (int, bool) {
	if p.Offer.Type != OfferTypeFlight || p.Offer.Flight == nil {
		return 0, false
	}
	return p.Offer.Flight.Segments - 1, true
}

// AirlineCode reports the primary validating airline. ok is false for hotels
// and for flights the supplier sent without one.
func (p PricedOffer) AirlineCode() (string, bool) {
	if p.Offer.Type != OfferTypeFlight || p.Offer.Flight == nil || p.Offer.Flight.Airline == "" {
		return "", false
	}
	return p.Offer.Flight.Airline, true
}

// DurationMinutes reports the first itinerary's elapsed duration.
func (p PricedOffer) DurationMinutes() (int, bool) {
	if p.Offer.Type != OfferTypeFlight || p.Offer.Flight == nil {
		return 0, false
	}
	return p.Offer.Flight.DurationMinutes, true
}

// Rating reports the hotel star rating when the supplier sent one.
func (p PricedOffer) Rating() (float64, bool) {
	if p.Offer.Type != OfferTypeHotel || p.Offer.Hotel == nil || p.Offer.Hotel.Rating == nil {
		return 0, false
	}
	return *p.Offer.Hotel.Rating, true
}

// Amenities reports the hotel amenity set. ok is false for flights.
func (p PricedOffer) Amenities() ([]string, bool) {
	if p.Offer.Type != OfferTypeHotel || p.Offer.Hotel == nil {
		return nil, false
	}
	return p.Offer.Hotel.Amenities, true
}

// flightOfferFromRaw validates one raw flight offer and extracts its base
// price. The price lives at the offer's top level.
func flightOfferFromRaw(raw amadeus.RawFlightOffer) (*FlightOffer, decimal.Decimal, string, error) {
	if len(raw.Itineraries) == 0 || len(raw.Itineraries[0].Segments) == 0 {
		return nil, decimal.Zero, "", &MalformedOfferError{OfferID: raw.ID, Reason: "no itinerary segments"}
	}

	base, err := parseAmount(raw.Price.Total)
	if err != nil {
		return nil, decimal.Zero, "", &MalformedOfferError{OfferID: raw.ID, Reason: "missing or non-numeric price total"}
	}

	duration, err := parseISODuration(raw.Itineraries[0].Duration)
	if err != nil {
		return nil, decimal.Zero, "", &MalformedOfferError{OfferID: raw.ID, Reason: "unparseable itinerary duration"}
	}

	itin := raw.Itineraries[0]
	first := itin.Segments[0]
	last := itin.Segments[len(itin.Segments)-1]

	airline := ""
	if len(raw.ValidatingAirlineCodes) > 0 {
		airline = raw.ValidatingAirlineCodes[0]
	}

	return &FlightOffer{
		ID:              raw.ID,
		Airline:         airline,
		Segments:        len(itin.Segments),
		DurationMinutes: duration,
		Departure:       first.Departure.IataCode,
		Arrival:         last.Arrival.IataCode,
		DepartureAt:     first.Departure.At,
		ArrivalAt:       last.Arrival.At,
		BookableSeats:   raw.NumberOfBookableSeats,
		AirlineCodes:    raw.ValidatingAirlineCodes,
	}, base, raw.Price.Currency, nil
}

// hotelOfferFromRaw validates one raw hotel result and extracts its base
// price. The supplier nests hotel pricing under the offers array, with
// exactly one offer per property in this domain; anything else is malformed.
func hotelOfferFromRaw(raw amadeus.RawHotelOffer) (*HotelOffer, decimal.Decimal, string, error) {
	room, err := singleRoomOffer(raw)
	if err != nil {
		return nil, decimal.Zero, "", err
	}

	base, err := parseAmount(room.Price.Total)
	if err != nil {
		return nil, decimal.Zero, "", &MalformedOfferError{OfferID: raw.Hotel.HotelID, Reason: "missing or non-numeric price total"}
	}

	var rating *float64
	if raw.Hotel.Rating != "" {
		if r, err := strconv.ParseFloat(raw.Hotel.Rating, 64); err == nil {
			rating = &r
		}
	}

	return &HotelOffer{
		ID:           raw.Hotel.HotelID,
		Name:         raw.Hotel.Name,
		CityCode:     raw.Hotel.CityCode,
		Rating:       rating,
		Amenities:    raw.Hotel.Amenities,
		RoomOfferID:  room.ID,
		CheckInDate:  room.CheckInDate,
		CheckOutDate: room.CheckOutDate,
	}, base, room.Price.Currency, nil
}

// singleRoomOffer returns the property's room offer.
// Precondition: the supplier sends exactly one offer per property.
func singleRoomOffer(raw amadeus.RawHotelOffer) (amadeus.RawRoomOffer, error) {
	if len(raw.Offers) != 1 {
		return amadeus.RawRoomOffer{}, &MalformedOfferError{
			OfferID: raw.Hotel.HotelID,
			Reason:  fmt.Sprintf("expected exactly 1 room offer, got %d", len(raw.Offers)),
		}
	}
	return raw.Offers[0], nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(s)
}

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?)?$`)

// parseISODuration converts an ISO 8601 duration like "PT5H30M" to minutes.
func parseISODuration(s string) (int, error) {
	m := isoDurationPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("invalid ISO 8601 duration: %q", s)
	}

	minutes := 0
	if m[1] != "" {
		d, _ := strconv.Atoi(m[1])
		minutes += d * 24 * 60
	}
	if m[2] != "" {
		h, _ := strconv.Atoi(m[2])
		minutes += h * 60
	}
	if m[3] != "" {
		mm, _ := strconv.Atoi(m[3])
		minutes += mm
	}
	return minutes, nil
}
