package ports

import (
	"context"
	"errors"

	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
)

// ErrNotFound signals the contractor has no profile row; callers fall back to the default rating.
var ErrNotFound = errors.New("contractor profile not found")

// ProfileReader loads the contractor profile of a viewer.
type ProfileReader interface {
	// GetProfile returns ErrNotFound when the contractor has no profile yet.
	GetProfile(ctx context.Context, viewer domain.ViewerID) (*domain.ContractorProfile, error)
}

// BidReader projects the statuses of every bid a contractor submitted.
type BidReader interface {
	ListBidStatuses(ctx context.Context, contractor domain.ViewerID) ([]domain.BidStatus, error)
}

// ProjectReader lists open projects newest first, each with its bid summaries joined.
type ProjectReader interface {
	ListOpenProjects(ctx context.Context, limit int) ([]*domain.Project, error)
}

// Store bundles the read capabilities the dashboard depends on.
type Store interface {
	ProfileReader
	BidReader
	ProjectReader
}
