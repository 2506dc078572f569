package pricing

import (
	"context"
	"testing"

	"github.com/richxcame/booking-platform/internal/places"
	"github.com/richxcame/booking-platform/internal/settings"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of settings.Store
type MockStore struct {
	mock.Mock
	values map[string]string
}

func (m *MockStore) Snapshot(ctx context.Context, keys ...string) settings.Snapshot {
	return settings.NewSnapshot(m.values)
}

func (m *MockStore) Set(ctx context.Context, key, value, description, updatedBy string) (*settings.ConfigEntry, error) {
	args := m.Called(ctx, key, value, description, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.ConfigEntry), args.Error(1)
}

func floatPtr(v float64) *float64 { return &v }

func newTestService(t *testing.T, values map[string]string) (*Service, *MockStore) {
	t.Helper()
	store := &MockStore{values: values}
	return NewService(store, places.MustNewGazetteer()), store
}

func TestService_SuggestRidePrice(t *testing.T) {
	t.Run("explicit rate with default base", func(t *testing.T) {
		svc, _ := newTestService(t, nil)

		s := svc.SuggestRidePrice(context.Background(), 10, floatPtr(15))

		assert.Equal(t, 200.00, s.SuggestedPrice)
		assert.Equal(t, settings.DefaultBaseRidePrice, s.BasePrice)
	})

	t.Run("configured rates", func(t *testing.T) {
		svc, _ := newTestService(t, map[string]string{
			settings.KeyDefaultPricePerKm: "20",
			settings.KeyBaseRidePrice:     "60",
		})

		s := svc.SuggestRidePrice(context.Background(), 10, nil)

		assert.Equal(t, 20.0, s.PricePerKm)
		assert.Equal(t, 260.00, s.SuggestedPrice)
	})

	t.Run("store unavailable uses defaults", func(t *testing.T) {
		svc, _ := newTestService(t, nil)

		s := svc.SuggestRidePrice(context.Background(), 10, nil)

		assert.Equal(t, settings.DefaultPricePerKm, s.PricePerKm)
		assert.Equal(t, 200.00, s.SuggestedPrice)
	})
}

func TestService_SuggestHotelPrice(t *testing.T) {
	svc, _ := newTestService(t, nil)

	b := svc.SuggestHotelPrice(context.Background(), HotelPriceInput{
		BasePrice:           1000,
		Nights:              7,
		HasLongStayDiscount: true,
	})

	assert.Equal(t, 700.0, b.LongStayDiscount)
	assert.Equal(t, settings.DefaultPlatformFeePercentage, b.PlatformFeePercentage)
	assert.Equal(t, 6993.0, b.Total)
}

func TestService_SuggestHotelPrice_ConfiguredRates(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		settings.KeyExtraChildPrice:         "50",
		settings.KeyLongStayDiscountPercent: "20",
		settings.KeyPlatformFeePercentage:   "0",
	})

	b := svc.SuggestHotelPrice(context.Background(), HotelPriceInput{
		BasePrice:           100,
		Nights:              7,
		Children:            intPtr(2),
		HasLongStayDiscount: true,
	})

	assert.Equal(t, 700.0, b.ExtraChildren)
	assert.Equal(t, 140.0, b.LongStayDiscount)
	assert.Equal(t, 1260.0, b.Total)
}

func TestService_QuoteRide_ByName(t *testing.T) {
	svc, _ := newTestService(t, nil)

	quote, err := svc.QuoteRide(context.Background(), RideQuoteRequest{
		Pickup:  Waypoint{Name: "Maputó"},
		Dropoff: Waypoint{Name: "matola"},
	})

	require.NoError(t, err)
	assert.Equal(t, "maputo", quote.PickupName)
	assert.Equal(t, 12.2, quote.Distance)
	assert.Equal(t, 15, quote.EstimatedMinutes)
	assert.True(t, quote.Automatic)
	require.NotNil(t, quote.SuggestedPrice)
	assert.Equal(t, 233.0, *quote.SuggestedPrice)
}

func TestService_QuoteRide_ByCoordinates(t *testing.T) {
	svc, _ := newTestService(t, nil)

	quote, err := svc.QuoteRide(context.Background(), RideQuoteRequest{
		Pickup:     Waypoint{Lat: floatPtr(0), Lng: floatPtr(0)},
		Dropoff:    Waypoint{Lat: floatPtr(0), Lng: floatPtr(1)},
		PricePerKm: floatPtr(10),
	})

	require.NoError(t, err)
	assert.Equal(t, 111.2, quote.Distance)
	assert.Equal(t, 1162.0, *quote.SuggestedPrice)
}

func TestService_QuoteRide_UnknownPlace(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.QuoteRide(context.Background(), RideQuoteRequest{
		Pickup:  Waypoint{Name: "Maputo"},
		Dropoff: Waypoint{Name: "Nowhereland"},
	})

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
	assert.Contains(t, appErr.Message, "Nowhereland")
}

func TestService_QuoteRide_MissingCoordinates(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.QuoteRide(context.Background(), RideQuoteRequest{
		Pickup:  Waypoint{Lat: floatPtr(-25.9)},
		Dropoff: Waypoint{Name: "Matola"},
	})

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestService_QuoteRide_MissingDropoff(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.QuoteRide(context.Background(), RideQuoteRequest{
		Pickup: Waypoint{Name: "Maputo"},
	})

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "dropoff")
}

func TestService_QuoteRide_AutomaticPricingOff(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{settings.KeyAutomaticPricingEnabled: "false"})

	quote, err := svc.QuoteRide(context.Background(), RideQuoteRequest{
		Pickup:  Waypoint{Name: "Maputo"},
		Dropoff: Waypoint{Name: "Matola"},
	})

	require.NoError(t, err)
	assert.False(t, quote.Automatic)
	assert.Equal(t, 12.2, quote.Distance)
	assert.Nil(t, quote.SuggestedPrice)
	assert.Nil(t, quote.PricePerKm)
}

func TestService_SetAutomaticPricing(t *testing.T) {
	svc, store := newTestService(t, nil)
	enabled := false

	store.On("Set", mock.Anything, settings.KeyAutomaticPricingEnabled, "false", "", "admin-1").
		Return(&settings.ConfigEntry{}, nil)
	store.On("Set", mock.Anything, settings.KeyDefaultPricePerKm, "17.5", "", "admin-1").
		Return(&settings.ConfigEntry{}, nil)

	_, err := svc.SetAutomaticPricing(context.Background(), AutomaticPricingRequest{
		Enabled:    &enabled,
		PricePerKm: floatPtr(17.5),
	}, "admin-1")

	require.NoError(t, err)
	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "Set", 2)
}

func TestService_SetAutomaticPricing_PropagatesStoreError(t *testing.T) {
	svc, store := newTestService(t, nil)
	enabled := true

	store.On("Set", mock.Anything, settings.KeyAutomaticPricingEnabled, "true", "", "admin-1").
		Return(nil, common.NewInternalError("failed to save config", nil))

	_, err := svc.SetAutomaticPricing(context.Background(), AutomaticPricingRequest{
		Enabled:   &enabled,
		BasePrice: floatPtr(70),
	}, "admin-1")

	require.Error(t, err)
	store.AssertNumberOfCalls(t, "Set", 1)
}
