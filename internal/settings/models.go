package settings

import "time"

// Known configuration keys
const (
	KeyPlatformFeePercentage   = "platform_fee_percentage"
	KeyDefaultPricePerKm       = "default_price_per_km"
	KeyBaseRidePrice           = "base_ride_price"
	KeyExtraAdultPrice         = "extra_adult_price"
	KeyExtraChildPrice         = "extra_child_price"
	KeyLongStayDiscountPercent = "long_stay_discount_percent"
	KeyAutomaticPricingEnabled = "automatic_pricing_enabled"
)

// Defaults used when a key is missing, unparseable or the store is unreachable
const (
	DefaultPlatformFeePercentage   = 11.0
	DefaultPricePerKm              = 15.0
	DefaultBaseRidePrice           = 50.0
	DefaultExtraAdultPrice         = 200.0
	DefaultExtraChildPrice         = 100.0
	DefaultLongStayDiscountPercent = 10.0
	DefaultAutomaticPricingEnabled = true
)

// MaxPlatformFeePercentage caps the platform fee on every write path.
const MaxPlatformFeePercentage = 50.0

// ValueKind is how a stored string is interpreted
type ValueKind string

const (
	KindPercentage    ValueKind = "percentage"
	KindFeePercentage ValueKind = "fee_percentage"
	KindAmount        ValueKind = "amount"
	KindBool          ValueKind = "bool"
)

// KnownKeys maps every key the platform reads to its value kind.
var KnownKeys = map[string]ValueKind{
	KeyPlatformFeePercentage:   KindFeePercentage,
	KeyDefaultPricePerKm:       KindAmount,
	KeyBaseRidePrice:           KindAmount,
	KeyExtraAdultPrice:         KindAmount,
	KeyExtraChildPrice:         KindAmount,
	KeyLongStayDiscountPercent: KindPercentage,
	KeyAutomaticPricingEnabled: KindBool,
}

// ConfigEntry is one platform configuration value
type ConfigEntry struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedBy   string    `json:"updated_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SetConfigRequest is the body of PUT /settings/:key
type SetConfigRequest struct {
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}
