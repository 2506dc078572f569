package pricing

import (
	"context"
	"strconv"
	"strings"

	"github.com/richxcame/booking-platform/internal/places"
	"github.com/richxcame/booking-platform/internal/settings"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/geo"
	"github.com/richxcame/booking-platform/pkg/logger"
	"github.com/richxcame/booking-platform/pkg/tracing"
	"go.uber.org/zap"
)

const tracerName = "booking-platform/pricing"

// PlaceResolver maps place names to coordinates
type PlaceResolver interface {
	Resolve(name string) (places.Location, bool)
}

// Service suggests ride and hotel prices from configured rates
type Service struct {
	settings settings.Store
	places   PlaceResolver
}

// NewService creates a new pricing service
func NewService(store settings.Store, resolver PlaceResolver) *Service {
	return &Service{settings: store, places: resolver}
}

// Distance returns the great-circle distance and travel time between two points
func (s *Service) Distance(req DistanceRequest) *DistanceResponse {
	d := geo.Haversine(req.FromLat, req.FromLng, req.ToLat, req.ToLng)
	return &DistanceResponse{
		DistanceKm:       d,
		EstimatedMinutes: geo.EstimateTravelTime(d),
	}
}

// SuggestRidePrice prices a ride of distanceKm. A nil pricePerKm uses the
// configured default.
func (s *Service) SuggestRidePrice(ctx context.Context, distanceKm float64, pricePerKm *float64) *RidePriceSuggestion {
	snap := s.settings.Snapshot(ctx, settings.KeyDefaultPricePerKm, settings.KeyBaseRidePrice)
	return suggestFromSnapshot(snap, distanceKm, pricePerKm)
}

func suggestFromSnapshot(snap settings.Reader, distanceKm float64, pricePerKm *float64) *RidePriceSuggestion {
	rate := snap.Amount(settings.KeyDefaultPricePerKm, settings.DefaultPricePerKm)
	if pricePerKm != nil {
		rate = *pricePerKm
	}
	base := snap.Amount(settings.KeyBaseRidePrice, settings.DefaultBaseRidePrice)
	return SuggestRide(distanceKm, rate, base)
}

// SuggestHotelPrice prices a stay using rates read in a single snapshot.
func (s *Service) SuggestHotelPrice(ctx context.Context, input HotelPriceInput) *HotelPriceBreakdown {
	snap := s.settings.Snapshot(ctx,
		settings.KeyExtraAdultPrice,
		settings.KeyExtraChildPrice,
		settings.KeyLongStayDiscountPercent,
		settings.KeyPlatformFeePercentage,
	)

	rates := HotelRates{
		ExtraAdultPrice:         snap.Amount(settings.KeyExtraAdultPrice, settings.DefaultExtraAdultPrice),
		ExtraChildPrice:         snap.Amount(settings.KeyExtraChildPrice, settings.DefaultExtraChildPrice),
		LongStayDiscountPercent: snap.Percentage(settings.KeyLongStayDiscountPercent, settings.DefaultLongStayDiscountPercent),
		PlatformFeePercentage:   snap.Percentage(settings.KeyPlatformFeePercentage, settings.DefaultPlatformFeePercentage),
	}

	return HotelPrice(input, rates)
}

// QuoteRide resolves both ends of a ride and returns its distance, travel
// time and, when automatic pricing is on, a suggested price.
func (s *Service) QuoteRide(ctx context.Context, req RideQuoteRequest) (*RideQuote, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "pricing.QuoteRide")
	defer span.End()

	pickup, pickupName, err := s.resolveWaypoint(req.Pickup, "pickup")
	if err != nil {
		return nil, err
	}
	dropoff, dropoffName, err := s.resolveWaypoint(req.Dropoff, "dropoff")
	if err != nil {
		return nil, err
	}

	distance := geo.Distance(pickup, dropoff)
	quote := &RideQuote{
		Pickup:           pickup,
		Dropoff:          dropoff,
		PickupName:       pickupName,
		DropoffName:      dropoffName,
		Distance:         distance,
		EstimatedMinutes: geo.EstimateTravelTime(distance),
	}

	snap := s.settings.Snapshot(ctx,
		settings.KeyAutomaticPricingEnabled,
		settings.KeyDefaultPricePerKm,
		settings.KeyBaseRidePrice,
	)
	quote.Automatic = snap.Bool(settings.KeyAutomaticPricingEnabled, settings.DefaultAutomaticPricingEnabled)
	if !quote.Automatic {
		return quote, nil
	}

	suggestion := suggestFromSnapshot(snap, distance, req.PricePerKm)
	quote.PricePerKm = &suggestion.PricePerKm
	quote.BasePrice = &suggestion.BasePrice
	quote.SuggestedPrice = &suggestion.SuggestedPrice

	return quote, nil
}

func (s *Service) resolveWaypoint(w Waypoint, label string) (geo.Point, string, error) {
	if name := strings.TrimSpace(w.Name); name != "" {
		loc, ok := s.places.Resolve(name)
		if !ok {
			return geo.Point{}, "", common.NewNotFoundError("place not found: "+name, nil).WithCode("PLACE_NOT_FOUND")
		}
		return loc.Point(), loc.Name, nil
	}

	if w.Lat == nil || w.Lng == nil {
		return geo.Point{}, "", common.NewValidationError(label + " needs a place name or lat and lng")
	}
	return geo.Point{Lat: *w.Lat, Lng: *w.Lng}, "", nil
}

// AutomaticPricingEnabled reports the current setting along with the ride rates.
func (s *Service) AutomaticPricingEnabled(ctx context.Context) *AutomaticPricingStatus {
	snap := s.settings.Snapshot(ctx,
		settings.KeyAutomaticPricingEnabled,
		settings.KeyDefaultPricePerKm,
		settings.KeyBaseRidePrice,
	)
	return &AutomaticPricingStatus{
		Enabled:    snap.Bool(settings.KeyAutomaticPricingEnabled, settings.DefaultAutomaticPricingEnabled),
		BasePrice:  snap.Amount(settings.KeyBaseRidePrice, settings.DefaultBaseRidePrice),
		PricePerKm: snap.Amount(settings.KeyDefaultPricePerKm, settings.DefaultPricePerKm),
	}
}

// SetAutomaticPricing switches automatic ride pricing and optionally updates
// the base price and per-km rate.
func (s *Service) SetAutomaticPricing(ctx context.Context, req AutomaticPricingRequest, adminID string) (*AutomaticPricingStatus, error) {
	if req.Enabled == nil {
		return nil, common.NewValidationError("enabled is required")
	}

	if _, err := s.settings.Set(ctx, settings.KeyAutomaticPricingEnabled, strconv.FormatBool(*req.Enabled), "", adminID); err != nil {
		return nil, err
	}
	if req.BasePrice != nil {
		if _, err := s.settings.Set(ctx, settings.KeyBaseRidePrice, formatAmount(*req.BasePrice), "", adminID); err != nil {
			return nil, err
		}
	}
	if req.PricePerKm != nil {
		if _, err := s.settings.Set(ctx, settings.KeyDefaultPricePerKm, formatAmount(*req.PricePerKm), "", adminID); err != nil {
			return nil, err
		}
	}

	logger.InfoContext(ctx, "automatic pricing updated",
		zap.Bool("enabled", *req.Enabled),
		zap.String("admin_id", adminID),
	)

	return s.AutomaticPricingEnabled(ctx), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
