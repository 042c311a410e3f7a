package dashboardserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	dashboardapp "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/application"
	"github.com/Apurer/contractor-dashboard/internal/platform/auth"
	apierrors "github.com/Apurer/contractor-dashboard/internal/shared/errors"
)

var dashboardResponder = apierrors.NewChainedResponder("", mapDashboardError)

func mapDashboardError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, dashboardapp.ErrUnauthorized):
		return apierrors.NewUnauthorizedProblem(err.Error(), auth.LoginPath), true
	case errors.Is(err, dashboardapp.ErrSuperseded):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, dashboardapp.ErrDataStoreUnavailable), errors.Is(err, context.Canceled):
		return apierrors.NewUnavailableProblem(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondDashboardError renders application errors as problem details.
func respondDashboardError(c *gin.Context, err error) {
	dashboardResponder.RespondError(c, err)
}
