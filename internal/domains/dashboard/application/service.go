package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/ports"
)

// Service aggregates the contractor dashboard from independent store reads.
type Service struct {
	store   ports.Store
	logger  *slog.Logger
	timeout time.Duration
}

type Option func(*Service)

// WithLogger receives warnings about profile reads that failed for reasons other than absence.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTimeout bounds the three store reads of one aggregation.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// NewService wires the dashboard service with its store.
func NewService(store ports.Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Aggregate reads the viewer's profile, bid statuses and the newest open
// projects concurrently, then derives stats and the annotated feed. A failed
// bids or projects read fails the whole call; a failed profile read yields
// the default rating.
func (s *Service) Aggregate(ctx context.Context, viewer domain.ViewerID) (*domain.Overview, error) {
	if err := domain.ValidateViewer(viewer); err != nil {
		return nil, mapError(err)
	}
	if s.store == nil {
		return nil, mapError(errors.New("dashboard store not configured"))
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		profile  *domain.ContractorProfile
		statuses []domain.BidStatus
		projects []*domain.Project
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.store.GetProfile(gctx, viewer)
		if err != nil {
			if !errors.Is(err, ports.ErrNotFound) && gctx.Err() == nil {
				s.warn(ctx, "contractor profile unavailable, using default rating", err, slog.String("viewer.id", string(viewer)))
			}
			return nil
		}
		profile = found
		return nil
	})
	g.Go(func() error {
		found, err := s.store.ListBidStatuses(gctx, viewer)
		if err != nil {
			return fmt.Errorf("list bid statuses: %w", err)
		}
		statuses = found
		return nil
	})
	g.Go(func() error {
		found, err := s.store.ListOpenProjects(gctx, domain.FeedLimit)
		if err != nil {
			return fmt.Errorf("list open projects: %w", err)
		}
		projects = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, mapError(err)
	}

	return &domain.Overview{
		Stats: domain.ComputeStats(profile, statuses),
		Feed:  domain.BuildFeed(viewer, projects),
	}, nil
}

func (s *Service) warn(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

var _ ports.Service = (*Service)(nil)
