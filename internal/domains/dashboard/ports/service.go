package ports

import (
	"context"

	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
)

// Service exposes the dashboard use cases to adapters.
type Service interface {
	Aggregate(ctx context.Context, viewer domain.ViewerID) (*domain.Overview, error)
}
