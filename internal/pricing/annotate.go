package pricing

import (
	"travel/pkg/amadeus"
	"travel/pkg/logger"
)

// Annotator turns raw supplier offers into priced offers by applying one
// PricingConfig to every base price. Malformed offers are skipped and logged;
// the batch never aborts. Input order is preserved.
type Annotator struct {
	logger logger.Client
}

func NewAnnotator(logger logger.Client) *Annotator {
	return &Annotator{logger: logger}
}

func (a *Annotator) AnnotateFlights(raw []amadeus.RawFlightOffer, cfg PricingConfig) []PricedOffer {
	priced := make([]PricedOffer, 0, len(raw))

	for _, r := range raw {
		offer, base, currency, err := flightOfferFromRaw(r)
		if err != nil {
			a.logger.Error("skipping malformed flight offer",
				logger.Field{Key: "offer_id", Value: r.ID},
				logger.Err(err),
			)
			continue
		}

		breakdown, err := ComputeBreakdown(base, cfg)
		if err != nil {
			a.logger.Error("skipping unpriceable flight offer",
				logger.Field{Key: "offer_id", Value: r.ID},
				logger.Err(err),
			)
			continue
		}
		breakdown.Currency = currency

		priced = append(priced, PricedOffer{
			Offer: Offer{Type: OfferTypeFlight, Flight: offer},
			Price: breakdown,
		})
	}

	return priced
}

func (a *Annotator) AnnotateHotels(raw []amadeus.RawHotelOffer, cfg PricingConfig) []PricedOffer {
	priced := make([]PricedOffer, 0, len(raw))

	for _, r := range raw {
		offer, base, currency, err := hotelOfferFromRaw(r)
		if err != nil {
			a.logger.Error("skipping malformed hotel offer",
				logger.Field{Key: "hotel_id", Value: r.Hotel.HotelID},
				logger.Err(err),
			)
			continue
		}

		breakdown, err := ComputeBreakdown(base, cfg)
		if err != nil {
			a.logger.Error("skipping unpriceable hotel offer",
				logger.Field{Key: "hotel_id", Value: r.Hotel.HotelID},
				logger.Err(err),
			)
			continue
		}
		breakdown.Currency = currency

		priced = append(priced, PricedOffer{
			Offer: Offer{Type: OfferTypeHotel, Hotel: offer},
			Price: breakdown,
		})
	}

	return priced
}
