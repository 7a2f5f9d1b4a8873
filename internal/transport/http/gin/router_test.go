package httpgin

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tessera-live/tessera/internal/service/catalog"
	"github.com/tessera-live/tessera/internal/service/inventory"
	"github.com/tessera-live/tessera/internal/service/query"
	"github.com/tessera-live/tessera/internal/service/wishlist"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErr_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ticket type not found", inventory.ErrTicketTypeNotFound, http.StatusNotFound},
		{"event not found", inventory.ErrEventNotFound, http.StatusNotFound},
		{"ticket not found", inventory.ErrTicketNotFound, http.StatusNotFound},
		{"sold out", inventory.ErrSoldOut, http.StatusConflict},
		{"purchase limit", inventory.ErrPurchaseLimitExceeded, http.StatusConflict},
		{"event mismatch", inventory.ErrTicketTypeEventMismatch, http.StatusBadRequest},
		{"invalid status", inventory.ErrInvalidStatus, http.StatusBadRequest},
		{"retryable", inventory.ErrRetryable, http.StatusServiceUnavailable},
		{"catalog conflict", catalog.ErrEventConflict, http.StatusConflict},
		{"invalid transition", catalog.ErrInvalidTransition, http.StatusConflict},
		{"query event not found", query.ErrEventNotFound, http.StatusNotFound},
		{"wishlist duplicate", wishlist.ErrAlreadyInList, http.StatusConflict},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondErr(c, fmt.Errorf("op: %w", tt.err))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRespondErr_RetryableSetsRetryAfter(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondErr(c, inventory.ErrRetryable)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestWriteJSONWithCache_NotModified(t *testing.T) {
	payload := map[string]string{"name": "Summerfest"}

	w1 := httptest.NewRecorder()
	c1, _ := gin.CreateTestContext(w1)
	c1.Request = httptest.NewRequest(http.MethodGet, "/events/1", nil)

	writeJSONWithCache(c1, http.StatusOK, payload, "public, max-age=60", true)

	assert.Equal(t, http.StatusOK, w1.Code)
	tag := w1.Header().Get("ETag")
	assert.NotEmpty(t, tag)
	assert.Equal(t, "public, max-age=60", w1.Header().Get("Cache-Control"))

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	req := httptest.NewRequest(http.MethodGet, "/events/1", nil)
	req.Header.Set("If-None-Match", tag)
	c2.Request = req

	writeJSONWithCache(c2, http.StatusOK, payload, "public, max-age=60", true)
	// gin defers WriteHeader until a body write; flush so the recorder sees 304
	c2.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNotModified, w2.Code)
	assert.Empty(t, w2.Body.Bytes())
}
