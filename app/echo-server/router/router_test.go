package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"shopSense/internal/rest"
)

func blockingMiddleware(hits *int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			*hits++
			return c.NoContent(http.StatusUnauthorized)
		}
	}
}

func TestRoutes_UseInjectedAuthMiddleware(t *testing.T) {
	e := echo.New()
	api := e.Group("/api/v1")

	var hits int
	mw := blockingMiddleware(&hits)

	SetAuthRoutes(api, rest.NewAuthHandler(nil), mw)
	SetRecommendRoutes(api, rest.NewRecommendHandler(nil), mw)
	SetupProductRoutes(api, rest.NewProductHandler(nil), mw)

	protected := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodPost, "/api/v1/recommendations"},
		{http.MethodPost, "/api/v1/recommendations/feedback"},
		{http.MethodGet, "/api/v1/recommendations/profile"},
		{http.MethodPost, "/api/v1/products"},
		{http.MethodDelete, "/api/v1/products/p1"},
	}
	for _, route := range protected {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}
	assert.Equal(t, len(protected), hits, "every protected route runs the injected middleware")
}
