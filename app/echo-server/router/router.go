package router

import (
	"github.com/labstack/echo/v4"

	"shopSense/internal/rest"
)

// SetAuthRoutes takes the plain JWT middleware: login is what registers
// the session the revocation-aware middleware later checks for.
func SetAuthRoutes(api *echo.Group, handler *rest.AuthHandler, jwtAuth echo.MiddlewareFunc) {
	authGroup := api.Group("/auth", jwtAuth)

	authGroup.POST("/login", handler.Login)
	authGroup.POST("/logout", handler.Logout)
}

func SetRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.POST("", handler.Recommend)
	reco.POST("/feedback", handler.Feedback)
	reco.GET("/analytics", handler.Analytics)
	reco.GET("/profile", handler.Profile)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAll)
	products.GET("/:id", handler.GetByID)
	products.POST("", handler.Create, authRequired)
	products.PUT("/:id", handler.Update, authRequired)
	products.DELETE("/:id", handler.Delete, authRequired)
}
