package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/private", AuthMiddleware(testJWTSecret), func(c *gin.Context) {
		id, err := getUserIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, id.Hex())
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, userID, -time.Minute), http.StatusUnauthorized},
		{"bad user id", "Bearer " + signToken(t, "nope", time.Hour), http.StatusUnauthorized},
		{"valid", "Bearer " + signToken(t, userID, time.Hour), http.StatusOK},
	}

	r := newAuthRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, userID, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	r := gin.New()
	r.GET("/private", AuthMiddleware("other-secret"), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, primitive.NewObjectID().Hex(), time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	ts := newTestServer()

	for _, path := range []string{"/ping", "/ping", "/missing"} {
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(ts.metrics.CounterRequests.WithLabelValues("GET", "200")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(ts.metrics.CounterRequests.WithLabelValues("GET", "404")), 1e-9)
	assert.InDelta(t, 0, testutil.ToFloat64(ts.metrics.GaugeRequests), 1e-9)
}
