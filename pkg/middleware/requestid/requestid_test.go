package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func serve(headers map[string]string) (*httptest.ResponseRecorder, string) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestMiddlewareReusesClientID(t *testing.T) {
	w, seen := serve(map[string]string{Header: "abc-123"})

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(Header))
}

func TestMiddlewareFallsBackToCorrelationID(t *testing.T) {
	_, seen := serve(map[string]string{"X-Correlation-ID": "corr.42"})

	assert.Equal(t, "corr.42", seen)
}

func TestMiddlewareReplacesUnsafeIDs(t *testing.T) {
	for name, id := range map[string]string{
		"spaces":   "has spaces",
		"quotes":   `"quoted"`,
		"too long": strings.Repeat("a", maxLength+1),
	} {
		t.Run(name, func(t *testing.T) {
			w, seen := serve(map[string]string{Header: id})

			assert.NotEqual(t, id, seen)
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
			assert.Equal(t, seen, w.Header().Get(Header))
		})
	}
}

func TestValueWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, Value(c))
}
