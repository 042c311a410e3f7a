package dashboardserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports process liveness and the database state.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Store     string    `json:"store"`
}

// HealthAPI answers liveness probes. A nil ping means the in-memory store is in use.
type HealthAPI struct {
	serviceName string
	ping        func(context.Context) error
}

func NewHealthAPI(serviceName string, ping func(context.Context) error) HealthAPI {
	return HealthAPI{serviceName: serviceName, ping: ping}
}

// Get /healthz
func (api *HealthAPI) HealthCheck(c *gin.Context) {
	store := "memory"
	if api.ping != nil {
		if err := api.ping(c.Request.Context()); err != nil {
			store = "down"
		} else {
			store = "up"
		}
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   api.serviceName,
		Store:     store,
	})
}
