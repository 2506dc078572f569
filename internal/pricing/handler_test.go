package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPricingService implements ServiceInterface for testing
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Distance(req DistanceRequest) *DistanceResponse {
	args := m.Called(req)
	return args.Get(0).(*DistanceResponse)
}

func (m *MockPricingService) SuggestRidePrice(ctx context.Context, distanceKm float64, pricePerKm *float64) *RidePriceSuggestion {
	args := m.Called(ctx, distanceKm, pricePerKm)
	return args.Get(0).(*RidePriceSuggestion)
}

func (m *MockPricingService) SuggestHotelPrice(ctx context.Context, input HotelPriceInput) *HotelPriceBreakdown {
	args := m.Called(ctx, input)
	return args.Get(0).(*HotelPriceBreakdown)
}

func (m *MockPricingService) QuoteRide(ctx context.Context, req RideQuoteRequest) (*RideQuote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RideQuote), args.Error(1)
}

func (m *MockPricingService) AutomaticPricingEnabled(ctx context.Context) *AutomaticPricingStatus {
	args := m.Called(ctx)
	return args.Get(0).(*AutomaticPricingStatus)
}

func (m *MockPricingService) SetAutomaticPricing(ctx context.Context, req AutomaticPricingRequest, adminID string) (*AutomaticPricingStatus, error) {
	args := m.Called(ctx, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AutomaticPricingStatus), args.Error(1)
}

func setupRouter(svc ServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func performRequest(r *gin.Engine, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestHandler_SuggestRidePrice(t *testing.T) {
	svc := new(MockPricingService)
	svc.On("SuggestRidePrice", mock.Anything, 10.0, mock.MatchedBy(func(p *float64) bool {
		return p != nil && *p == 15
	})).Return(SuggestRide(10, 15, 50))

	w, resp := performRequest(setupRouter(svc), http.MethodPost, "/api/v1/pricing/suggest",
		`{"distance_km":10,"price_per_km":15}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 200.0, data["suggested_price"])
	assert.Equal(t, 12.0, data["estimated_minutes"])
}

func TestHandler_SuggestRidePrice_Invalid(t *testing.T) {
	svc := new(MockPricingService)

	w, _ := performRequest(setupRouter(svc), http.MethodPost, "/api/v1/pricing/suggest",
		`{"distance_km":10,"price_per_km":-1}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SuggestRidePrice", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Distance(t *testing.T) {
	svc := new(MockPricingService)
	svc.On("Distance", mock.Anything).Return(&DistanceResponse{DistanceKm: 12.2, EstimatedMinutes: 15})

	w, resp := performRequest(setupRouter(svc), http.MethodPost, "/api/v1/pricing/distance",
		`{"from_lat":-25.966375,"from_lng":32.580611,"to_lat":-25.96237,"to_lng":32.458885}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 12.2, resp["data"].(map[string]interface{})["distance_km"])
}

func TestHandler_Distance_OutOfRange(t *testing.T) {
	svc := new(MockPricingService)

	w, _ := performRequest(setupRouter(svc), http.MethodPost, "/api/v1/pricing/distance",
		`{"from_lat":-125,"from_lng":32.5,"to_lat":-25.9,"to_lng":32.4}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_QuoteRide_PlaceNotFound(t *testing.T) {
	svc := new(MockPricingService)
	svc.On("QuoteRide", mock.Anything, mock.Anything).
		Return(nil, common.NewNotFoundError("place not found: Nowhereland", nil).WithCode("PLACE_NOT_FOUND"))

	w, resp := performRequest(setupRouter(svc), http.MethodPost, "/api/v1/pricing/ride-quote",
		`{"pickup":{"name":"Maputo"},"dropoff":{"name":"Nowhereland"}}`, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PLACE_NOT_FOUND", resp["error"].(map[string]interface{})["error_code"])
}

func TestHandler_SuggestHotelPrice(t *testing.T) {
	svc := new(MockPricingService)
	svc.On("SuggestHotelPrice", mock.Anything, mock.MatchedBy(func(in HotelPriceInput) bool {
		return in.BasePrice == 1000 && in.Nights == 7 && in.HasLongStayDiscount && in.Adults == nil
	})).Return(HotelPrice(HotelPriceInput{BasePrice: 1000, Nights: 7, HasLongStayDiscount: true}, defaultRates))

	w, resp := performRequest(setupRouter(svc), http.MethodPost, "/api/v1/pricing/hotel-quote",
		`{"base_price":1000,"nights":7,"has_long_stay_discount":true}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 700.0, resp["data"].(map[string]interface{})["long_stay_discount"])
}

func TestHandler_SuggestHotelPrice_RequiresNights(t *testing.T) {
	svc := new(MockPricingService)

	w, _ := performRequest(setupRouter(svc), http.MethodPost, "/api/v1/pricing/hotel-quote",
		`{"base_price":1000}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SetAutomaticPricing(t *testing.T) {
	svc := new(MockPricingService)
	svc.On("SetAutomaticPricing", mock.Anything, mock.Anything, "admin-3").
		Return(&AutomaticPricingStatus{Enabled: false, BasePrice: 50, PricePerKm: 15}, nil)

	w, resp := performRequest(setupRouter(svc), http.MethodPut, "/api/v1/pricing/automatic",
		`{"enabled":false}`, map[string]string{middleware.AdminIDHeader: "admin-3"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["data"].(map[string]interface{})["enabled"])
}

func TestHandler_SetAutomaticPricing_RequiresAdmin(t *testing.T) {
	svc := new(MockPricingService)

	w, _ := performRequest(setupRouter(svc), http.MethodPut, "/api/v1/pricing/automatic",
		`{"enabled":false}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SetAutomaticPricing", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GetAutomaticPricing(t *testing.T) {
	svc := new(MockPricingService)
	svc.On("AutomaticPricingEnabled", mock.Anything).
		Return(&AutomaticPricingStatus{Enabled: true, BasePrice: 50, PricePerKm: 15})

	w, resp := performRequest(setupRouter(svc), http.MethodGet, "/api/v1/pricing/automatic", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["data"].(map[string]interface{})["enabled"])
}
