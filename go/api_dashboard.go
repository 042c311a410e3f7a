package dashboardserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	dashboardmapper "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/adapters/http/mapper"
	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
	"github.com/Apurer/contractor-dashboard/internal/platform/auth"
)

// SessionHeader scopes last-request-wins; clients send one value per open page.
const SessionHeader = "X-Dashboard-Session"

// OverviewRunner is satisfied by application.Coordinator.
type OverviewRunner interface {
	Run(ctx context.Context, key string, viewer domain.ViewerID) (*domain.Overview, error)
}

// DashboardAPI wires HTTP transport with the dashboard aggregator.
type DashboardAPI struct {
	runner    OverviewRunner
	formatter *dashboardmapper.Formatter
}

// NewDashboardAPI creates a DashboardAPI rendering display strings with formatter.
func NewDashboardAPI(runner OverviewRunner, formatter *dashboardmapper.Formatter) DashboardAPI {
	if formatter == nil {
		formatter = dashboardmapper.NewFormatter(dashboardmapper.DefaultLocale)
	}
	return DashboardAPI{runner: runner, formatter: formatter}
}

// Get /v1/contractor/dashboard
// Returns the signed-in contractor's stats and newest open projects
func (api *DashboardAPI) GetDashboard(c *gin.Context) {
	viewer := domain.ViewerID(auth.ViewerID(c))
	overview, err := api.runner.Run(c.Request.Context(), c.GetHeader(SessionHeader), viewer)
	if err != nil {
		respondDashboardError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboardmapper.FromOverview(overview, api.formatter))
}
