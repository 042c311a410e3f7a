package dashboardserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/contractor-dashboard/internal/shared/errors"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Protected routes require a resolved viewer identity.
	Protected bool
}

// ApiHandleFunctions groups the handlers served by the router.
type ApiHandleFunctions struct {
	DashboardAPI DashboardAPI
	HealthAPI    HealthAPI
	// Authenticate resolves the viewer on protected routes.
	Authenticate gin.HandlerFunc
}

// NewRouterWithGinEngine adds the routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		handlers := []gin.HandlerFunc{}
		if route.Protected && handleFunctions.Authenticate != nil {
			handlers = append(handlers, handleFunctions.Authenticate)
		}
		handlers = append(handlers, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	router.NoRoute(func(c *gin.Context) {
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail("no route for "+c.Request.Method+" "+c.Request.URL.Path))
	})
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "GetDashboard",
			Method:      http.MethodGet,
			Pattern:     "/v1/contractor/dashboard",
			HandlerFunc: handleFunctions.DashboardAPI.GetDashboard,
			Protected:   true,
		},
		{
			Name:        "HealthCheck",
			Method:      http.MethodGet,
			Pattern:     "/healthz",
			HandlerFunc: handleFunctions.HealthAPI.HealthCheck,
		},
	}
}
