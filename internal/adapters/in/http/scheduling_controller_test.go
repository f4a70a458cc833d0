package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suchimauz/booking-scheduling-engine/internal/config"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)               {}
func (nopLogger) Info(string, out.LogFields)                {}
func (nopLogger) Warn(string, out.LogFields)                {}
func (nopLogger) Error(string, out.LogFields)               {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

// stubUseCase подменяет движок: контроллерные тесты проверяют только
// HTTP-плоскость — маршрутизацию, авторизацию, коды ответов
type stubUseCase struct {
	checkResult *domain.AvailabilityResult
	checkErr    error
	suggested   []domain.TimeSlot
	suggestErr  error
	bookResult  *domain.BookingResult
	bookErr     error

	lastRequest domain.BookingRequest
}

func (s *stubUseCase) CheckAvailability(ctx context.Context, request domain.BookingRequest) (*domain.AvailabilityResult, error) {
	s.lastRequest = request
	return s.checkResult, s.checkErr
}

func (s *stubUseCase) SuggestSlots(ctx context.Context, request domain.BookingRequest, maxSuggestions int) ([]domain.TimeSlot, error) {
	s.lastRequest = request
	return s.suggested, s.suggestErr
}

func (s *stubUseCase) BookAppointment(ctx context.Context, request domain.BookingRequest) (*domain.BookingResult, error) {
	s.lastRequest = request
	return s.bookResult, s.bookErr
}

func newTestRouter(stub *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Auth.BasicClients = []config.ConfigBasicClient{
		{Username: "scheduling_engine", Password: "secret"},
	}

	router := gin.New()
	NewSchedulingController(stub, cfg, nopLogger{}).RegisterRoutes(router)
	return router
}

func validBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"serviceId":       "service_1",
		"serviceDuration": 60,
		"requestedDate":   "2026-01-15",
		"requestedTime":   "10:30",
		"staffId":         "staff_1",
		"customerId":      "cust_123",
		"tenantId":        "default",
	})
	require.NoError(t, err)
	return body
}

func doRequest(router *gin.Engine, path string, body []byte, authorized bool) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if authorized {
		request.SetBasicAuth("scheduling_engine", "secret")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestCheckAvailability_RequiresAuth(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	recorder := doRequest(router, "/api/v1/availability/check", validBody(t), false)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Header().Get("WWW-Authenticate"), "Basic")
}

func TestCheckAvailability_RejectsWrongCredentials(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	request := httptest.NewRequest(http.MethodPost, "/api/v1/availability/check", bytes.NewReader(validBody(t)))
	request.Header.Set("Content-Type", "application/json")
	request.SetBasicAuth("scheduling_engine", "wrong")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCheckAvailability_OK(t *testing.T) {
	stub := &stubUseCase{
		checkResult: &domain.AvailabilityResult{IsAvailable: true},
	}
	router := newTestRouter(stub)

	recorder := doRequest(router, "/api/v1/availability/check", validBody(t), true)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.AvailabilityResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.IsAvailable)

	// DTO дошел до движка без потерь
	assert.Equal(t, "service_1", stub.lastRequest.ServiceID)
	assert.Equal(t, 60, stub.lastRequest.ServiceDuration)
	assert.Equal(t, "staff_1", stub.lastRequest.StaffID)
}

func TestCheckAvailability_MissingRequiredFields(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	recorder := doRequest(router, "/api/v1/availability/check", []byte(`{"serviceId":"service_1"}`), true)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckAvailability_MalformedJSON(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	recorder := doRequest(router, "/api/v1/availability/check", []byte(`{not json`), true)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckAvailability_InvalidRequestMapsTo400(t *testing.T) {
	stub := &stubUseCase{
		checkErr: domain.ErrInvalidRequest,
	}
	router := newTestRouter(stub)

	recorder := doRequest(router, "/api/v1/availability/check", validBody(t), true)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckAvailability_InternalErrorMapsTo500(t *testing.T) {
	stub := &stubUseCase{
		checkErr: assert.AnError,
	}
	router := newTestRouter(stub)

	recorder := doRequest(router, "/api/v1/availability/check", validBody(t), true)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestSuggestSlots_OK(t *testing.T) {
	stub := &stubUseCase{
		suggested: []domain.TimeSlot{
			{Start: "2026-01-15T11:30", End: "2026-01-15T12:30", StaffID: "staff_1", StaffName: "Sarah"},
		},
	}
	router := newTestRouter(stub)

	recorder := doRequest(router, "/api/v1/availability/suggest", validBody(t), true)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		SuggestedSlots []domain.TimeSlot `json:"suggestedSlots"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.SuggestedSlots, 1)
	assert.Equal(t, "2026-01-15T11:30", response.SuggestedSlots[0].Start)
}

func TestBookAppointment_Created(t *testing.T) {
	stub := &stubUseCase{
		bookResult: &domain.BookingResult{
			Success: true,
			StaffID: "staff_1",
			Availability: domain.AvailabilityResult{IsAvailable: true},
		},
	}
	router := newTestRouter(stub)

	recorder := doRequest(router, "/api/v1/bookings", validBody(t), true)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var response domain.BookingResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "staff_1", response.StaffID)
}

func TestBookAppointment_ConflictMapsTo409(t *testing.T) {
	stub := &stubUseCase{
		bookResult: &domain.BookingResult{
			Success: false,
			Availability: domain.AvailabilityResult{
				IsAvailable: false,
				Reason:      domain.ReasonDoubleBooking,
			},
		},
	}
	router := newTestRouter(stub)

	recorder := doRequest(router, "/api/v1/bookings", validBody(t), true)
	require.Equal(t, http.StatusConflict, recorder.Code)

	var response domain.BookingResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, domain.ReasonDoubleBooking, response.Availability.Reason)
}
