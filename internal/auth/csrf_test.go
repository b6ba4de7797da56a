package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key-32-bytes-long!!!")

func init() {
	gin.SetMode(gin.TestMode)
}

func csrfRouter() *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(testSecret, false))
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	}
	router.GET("/autores/crear/", handler)
	router.POST("/autores/crear/", handler)
	router.POST("/api/authors", handler)
	return router
}

func TestCSRFMiddleware_AllowsGETAndSetsToken(t *testing.T) {
	router := csrfRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/autores/crear/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
	assert.NotEmpty(t, rr.Result().Cookies(), "csrf cookie should be set")
}

func TestCSRFMiddleware_BlocksFormPOSTWithoutToken(t *testing.T) {
	router := csrfRouter()

	req := httptest.NewRequest(http.MethodPost, "/autores/crear/", strings.NewReader("first_name=Ana"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Formulario caducado")
}

func TestCSRFMiddleware_AcceptsFormPOSTWithToken(t *testing.T) {
	router := csrfRouter()

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/autores/crear/", nil))
	require.Equal(t, http.StatusOK, get.Code)
	token := get.Body.String()

	form := url.Values{CSRFFieldName: {token}, "first_name": {"Ana"}}
	req := httptest.NewRequest(http.MethodPost, "/autores/crear/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range get.Result().Cookies() {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCSRFMiddleware_SkipsJSONAPI(t *testing.T) {
	router := csrfRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/authors", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCSRFMiddleware_FormPOSTToAPIStillChecked(t *testing.T) {
	router := csrfRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/authors", strings.NewReader("first_name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"error":"CSRF token invalid or missing","code":"csrf_error"}`, rr.Body.String())
}

func TestGetCSRFToken_NoToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetCSRFToken(c))
}
