package pricing

import "github.com/richxcame/booking-platform/pkg/geo"

const (
	defaultAdults = 2
	// includedAdults is the occupancy covered by the room base price
	includedAdults = 2
	// longStayNights is the minimum stay that qualifies for the long-stay discount
	longStayNights = 7
)

// RidePriceSuggestion is a distance-based fare suggestion
type RidePriceSuggestion struct {
	Distance         float64 `json:"distance"`
	PricePerKm       float64 `json:"price_per_km"`
	BasePrice        float64 `json:"base_price"`
	SuggestedPrice   float64 `json:"suggested_price"`
	EstimatedMinutes int     `json:"estimated_minutes"`
}

// DistancePriceRequest is the body of POST /pricing/suggest
type DistancePriceRequest struct {
	DistanceKm float64  `json:"distance_km" binding:"gte=0"`
	PricePerKm *float64 `json:"price_per_km" binding:"omitempty,gt=0"`
}

// DistanceRequest is the body of POST /pricing/distance
type DistanceRequest struct {
	FromLat float64 `json:"from_lat" binding:"latitude"`
	FromLng float64 `json:"from_lng" binding:"longitude"`
	ToLat   float64 `json:"to_lat" binding:"latitude"`
	ToLng   float64 `json:"to_lng" binding:"longitude"`
}

// DistanceResponse is the great-circle distance between two points
type DistanceResponse struct {
	DistanceKm       float64 `json:"distance_km"`
	EstimatedMinutes int     `json:"estimated_minutes"`
}

// Waypoint is a ride endpoint given as a place name or coordinates. A name
// wins when both are present.
type Waypoint struct {
	Name string   `json:"name,omitempty"`
	Lat  *float64 `json:"lat,omitempty" binding:"omitempty,latitude"`
	Lng  *float64 `json:"lng,omitempty" binding:"omitempty,longitude"`
}

// RideQuoteRequest is the body of POST /pricing/ride-quote
type RideQuoteRequest struct {
	Pickup     Waypoint `json:"pickup"`
	Dropoff    Waypoint `json:"dropoff"`
	PricePerKm *float64 `json:"price_per_km" binding:"omitempty,gt=0"`
}

// RideQuote is the answer to a ride quote. Price fields are omitted when
// automatic pricing is switched off.
type RideQuote struct {
	Pickup           geo.Point `json:"pickup"`
	Dropoff          geo.Point `json:"dropoff"`
	PickupName       string    `json:"pickup_name,omitempty"`
	DropoffName      string    `json:"dropoff_name,omitempty"`
	Distance         float64   `json:"distance"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	Automatic        bool      `json:"automatic"`
	PricePerKm       *float64  `json:"price_per_km,omitempty"`
	BasePrice        *float64  `json:"base_price,omitempty"`
	SuggestedPrice   *float64  `json:"suggested_price,omitempty"`
}

// HotelPriceInput describes a stay. Adults defaults to 2 and children to 0.
type HotelPriceInput struct {
	BasePrice           float64 `json:"base_price" binding:"gt=0"`
	Nights              int     `json:"nights" binding:"gt=0"`
	Adults              *int    `json:"adults" binding:"omitempty,gte=1"`
	Children            *int    `json:"children" binding:"omitempty,gte=0"`
	HasLongStayDiscount bool    `json:"has_long_stay_discount"`
}

// HotelRates are the configured rates a hotel quote depends on
type HotelRates struct {
	ExtraAdultPrice         float64 `json:"extra_adult_price"`
	ExtraChildPrice         float64 `json:"extra_child_price"`
	LongStayDiscountPercent float64 `json:"long_stay_discount_percent"`
	PlatformFeePercentage   float64 `json:"platform_fee_percentage"`
}

// HotelPriceBreakdown is a priced stay. The platform fee is added on top of
// the subtotal.
type HotelPriceBreakdown struct {
	BaseTotal             float64 `json:"base_total"`
	ExtraAdults           float64 `json:"extra_adults"`
	ExtraChildren         float64 `json:"extra_children"`
	LongStayDiscount      float64 `json:"long_stay_discount"`
	Subtotal              float64 `json:"subtotal"`
	PlatformFeePercentage float64 `json:"platform_fee_percentage"`
	PlatformFee           float64 `json:"platform_fee"`
	Total                 float64 `json:"total"`
}

// AutomaticPricingRequest is the body of PUT /pricing/automatic. Rates left
// out are not changed.
type AutomaticPricingRequest struct {
	Enabled    *bool    `json:"enabled" binding:"required"`
	BasePrice  *float64 `json:"base_price" binding:"omitempty,gte=0"`
	PricePerKm *float64 `json:"price_per_km" binding:"omitempty,gt=0"`
}

// AutomaticPricingStatus reports whether ride prices are suggested
type AutomaticPricingStatus struct {
	Enabled    bool    `json:"enabled"`
	BasePrice  float64 `json:"base_price"`
	PricePerKm float64 `json:"price_per_km"`
}
