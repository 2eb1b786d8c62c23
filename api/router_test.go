package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockHandler implements Handlers for testing
type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) GenerateQRCode(w http.ResponseWriter, r *http.Request) {
	m.Called(w, r)
	w.WriteHeader(http.StatusOK)
}

func (m *MockHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	m.Called(w, r)
	w.WriteHeader(http.StatusOK)
}

func TestNewRouter(t *testing.T) {
	mockHandler := new(MockHandler)

	router := NewRouter(mockHandler)

	assert.NotNil(t, router)
	assert.Equal(t, mockHandler, router.handler)
	assert.IsType(t, &chi.Mux{}, router.router)
}

func TestRouter_SetupRoutes(t *testing.T) {
	mockHandler := new(MockHandler)
	router := NewRouter(mockHandler)
	router.SetupRoutes()

	mockHandler.On("GenerateQRCode", mock.Anything, mock.Anything).Twice()
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, "/api/qr", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	mockHandler.On("ListHistory", mock.Anything, mock.Anything).Once()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Healthy", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/qr", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	mockHandler.AssertExpectations(t)
}

func TestRouter_SetsRequestID(t *testing.T) {
	router := NewRouter(new(MockHandler))
	router.SetupRoutes()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestRouter_ChiRequestID(t *testing.T) {
	mockHandler := new(MockHandler)
	router := NewRouter(mockHandler)
	router.SetupRoutes()

	var reqID string
	mockHandler.On("ListHistory", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		reqID = middleware.GetReqID(args.Get(1).(*http.Request).Context())
	}).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, reqID)
	mockHandler.AssertExpectations(t)
}
