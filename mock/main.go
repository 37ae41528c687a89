package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

// Standalone mock of the Amadeus Self-Service API for local development:
// token issuing, flight/hotel offer search, and booking creation.
func main() {
	// Default port
	port := "8081"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/v1/security/oauth2/token", TokenHandler)
	http.HandleFunc("/v2/shopping/flight-offers", FlightOffersHandler)
	http.HandleFunc("/v2/shopping/hotel-offers", HotelOffersHandler)
	http.HandleFunc("/v1/booking/flight-orders", BookingHandler)
	http.HandleFunc("/v1/booking/hotel-bookings", BookingHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Amadeus Mock Server running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
