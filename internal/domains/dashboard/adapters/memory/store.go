package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/ports"
)

var _ ports.Store = (*Store)(nil)

// Bid is a full bid row as the marketplace stores it.
type Bid struct {
	ID           string
	ProjectID    string
	ContractorID domain.ViewerID
	Status       domain.BidStatus
}

// Store is an in-memory dashboard read adapter. Seed methods exist for tests
// and local runs; the dashboard itself only reads.
type Store struct {
	mu       sync.RWMutex
	profiles map[domain.ViewerID]domain.ContractorProfile
	projects []domain.Project
	bids     []Bid
	failure  error
}

func NewStore() *Store {
	return &Store{profiles: map[domain.ViewerID]domain.ContractorProfile{}}
}

// PutProfile stores or replaces a contractor profile.
func (s *Store) PutProfile(profile domain.ContractorProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.Rating != nil {
		rating := *profile.Rating
		profile.Rating = &rating
	}
	s.profiles[profile.UserID] = profile
}

// AddProject appends a project; its Bids field is ignored in favour of AddBid rows.
func (s *Store) AddProject(project domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.Bids = nil
	s.projects = append(s.projects, project)
}

// AddBid appends a bid row.
func (s *Store) AddBid(bid Bid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bids = append(s.bids, bid)
}

// Reset drops every seeded row and clears any injected failure.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = map[domain.ViewerID]domain.ContractorProfile{}
	s.projects = nil
	s.bids = nil
	s.failure = nil
}

// Fail makes every subsequent read return err. Passing nil restores normal reads.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *Store) GetProfile(ctx context.Context, viewer domain.ViewerID) (*domain.ContractorProfile, error) {
	if err := s.readable(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[viewer]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := profile
	if profile.Rating != nil {
		rating := *profile.Rating
		clone.Rating = &rating
	}
	return &clone, nil
}

func (s *Store) ListBidStatuses(ctx context.Context, contractor domain.ViewerID) ([]domain.BidStatus, error) {
	if err := s.readable(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	statuses := make([]domain.BidStatus, 0)
	for _, bid := range s.bids {
		if bid.ContractorID == contractor {
			statuses = append(statuses, bid.Status)
		}
	}
	return statuses, nil
}

func (s *Store) ListOpenProjects(ctx context.Context, limit int) ([]*domain.Project, error) {
	if err := s.readable(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	open := make([]domain.Project, 0, len(s.projects))
	for _, project := range s.projects {
		if project.Status == domain.ProjectOpen {
			open = append(open, project)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].CreatedAt.After(open[j].CreatedAt)
	})
	if limit > 0 && len(open) > limit {
		open = open[:limit]
	}
	result := make([]*domain.Project, 0, len(open))
	for i := range open {
		clone := open[i]
		clone.Bids = s.summariesFor(clone.ID)
		result = append(result, &clone)
	}
	return result, nil
}

func (s *Store) summariesFor(projectID string) []domain.BidSummary {
	var summaries []domain.BidSummary
	for _, bid := range s.bids {
		if bid.ProjectID == projectID {
			summaries = append(summaries, domain.BidSummary{ID: bid.ID, ContractorID: bid.ContractorID})
		}
	}
	return summaries
}

func (s *Store) readable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failure
}
