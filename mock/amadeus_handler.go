package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type Endpoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type FlightOffer struct {
	ID                     string      `json:"id"`
	Itineraries            []Itinerary `json:"itineraries"`
	Price                  Price       `json:"price"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
	NumberOfBookableSeats  uint32      `json:"numberOfBookableSeats"`
}

type HotelInfo struct {
	HotelID   string   `json:"hotelId"`
	Name      string   `json:"name"`
	CityCode  string   `json:"cityCode"`
	Rating    string   `json:"rating"`
	Amenities []string `json:"amenities"`
}

type RoomOffer struct {
	ID           string `json:"id"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Price        Price  `json:"price"`
}

type HotelOffer struct {
	Hotel     HotelInfo   `json:"hotel"`
	Available bool        `json:"available"`
	Offers    []RoomOffer `json:"offers"`
}

func TokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"access_token": "mock-token",
		"token_type":   "Bearer",
		"expires_in":   1799,
	})
}

var airlines = []string{"GA", "SQ", "QF", "EK", "LH"}

func FlightOffersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	origin := r.URL.Query().Get("originLocationCode")
	destination := r.URL.Query().Get("destinationLocationCode")
	departureDate := r.URL.Query().Get("departureDate")
	if origin == "" || destination == "" || departureDate == "" {
		http.Error(w, `{"errors":[{"status":400,"title":"INVALID REQUEST","detail":"missing required query parameter"}]}`, http.StatusBadRequest)
		return
	}

	offers := make([]FlightOffer, 0, 30)
	for i := 1; i <= 30; i++ {
		segments := 1 + rand.Intn(3)
		durationMinutes := 90 + rand.Intn(600)
		price := 80 + rand.Intn(900)

		itin := Itinerary{
			Duration: fmt.Sprintf("PT%dH%dM", durationMinutes/60, durationMinutes%60),
		}
		depTime, _ := time.Parse("2006-01-02", departureDate)
		for s := 0; s < segments; s++ {
			from := origin
			to := destination
			if segments > 1 && s < segments-1 {
				to = "SIN"
			}
			if s > 0 {
				from = "SIN"
			}
			at := depTime.Add(time.Duration(7+s*3) * time.Hour)
			itin.Segments = append(itin.Segments, Segment{
				Departure:   Endpoint{IataCode: from, At: at.Format("2006-01-02T15:04:05")},
				Arrival:     Endpoint{IataCode: to, At: at.Add(2 * time.Hour).Format("2006-01-02T15:04:05")},
				CarrierCode: airlines[i%len(airlines)],
				Number:      fmt.Sprintf("%d", 100+i),
			})
		}

		offers = append(offers, FlightOffer{
			ID:                     fmt.Sprintf("%d", i),
			Itineraries:            []Itinerary{itin},
			Price:                  Price{Total: fmt.Sprintf("%d.00", price), Currency: "EUR"},
			ValidatingAirlineCodes: []string{airlines[i%len(airlines)]},
			NumberOfBookableSeats:  uint32(1 + rand.Intn(9)),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": offers})
}

var amenityPool = []string{"WIFI", "POOL", "GYM", "SPA", "PARKING", "RESTAURANT", "PETS_ALLOWED"}

func HotelOffersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cityCode := r.URL.Query().Get("cityCode")
	checkIn := r.URL.Query().Get("checkInDate")
	checkOut := r.URL.Query().Get("checkOutDate")
	if cityCode == "" || checkIn == "" {
		http.Error(w, `{"errors":[{"status":400,"title":"INVALID REQUEST","detail":"missing required query parameter"}]}`, http.StatusBadRequest)
		return
	}

	offers := make([]HotelOffer, 0, 25)
	for i := 1; i <= 25; i++ {
		amenities := amenityPool[:2+rand.Intn(len(amenityPool)-2)]
		price := 60 + rand.Intn(400)

		offers = append(offers, HotelOffer{
			Hotel: HotelInfo{
				HotelID:   fmt.Sprintf("HT%s%03d", cityCode, i),
				Name:      fmt.Sprintf("Hotel %s %d", cityCode, i),
				CityCode:  cityCode,
				Rating:    fmt.Sprintf("%d", 2+rand.Intn(4)),
				Amenities: amenities,
			},
			Available: true,
			Offers: []RoomOffer{{
				ID:           fmt.Sprintf("RO%03d", i),
				CheckInDate:  checkIn,
				CheckOutDate: checkOut,
				Price:        Price{Total: fmt.Sprintf("%d.00", price), Currency: "EUR"},
			}},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": offers})
}

func BookingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"data": map[string]any{
			"id": fmt.Sprintf("MOCK-%d", rand.Intn(1000000)),
			"price": Price{
				Total:    fmt.Sprintf("%d.00", 100+rand.Intn(900)),
				Currency: "EUR",
			},
		},
	})
}
