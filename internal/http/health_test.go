package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/mediateca/internal/catalog"
)

type fakeHealth struct {
	pingErr  error
	countErr error
}

func (f fakeHealth) Ping(context.Context) error { return f.pingErr }

func (f fakeHealth) Counts(context.Context) (map[catalog.Kind]int64, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	return map[catalog.Kind]int64{catalog.KindAuthor: 3}, nil
}

func getHealth(t *testing.T, checker HealthChecker) (int, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", NewHealthController(checker, "1.0.0").Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy with row counts", func(t *testing.T) {
		code, response := getHealth(t, fakeHealth{})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, int64(3), response.Counts[catalog.KindAuthor])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("reports not configured without a store", func(t *testing.T) {
		code, response := getHealth(t, nil)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when ping fails", func(t *testing.T) {
		code, response := getHealth(t, fakeHealth{pingErr: errors.New("sql: database is closed")})

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "database is closed")
	})

	t.Run("returns unhealthy when counting fails", func(t *testing.T) {
		code, response := getHealth(t, fakeHealth{countErr: errors.New("no such table: authors")})

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Contains(t, response.Checks["database"], "no such table")
	})
}

func TestHealthController_RealDatabase(t *testing.T) {
	env := setupRouter(t)

	w := env.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Checks["database"])
	assert.Len(t, response.Counts, 8)
}
