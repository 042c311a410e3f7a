package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/ports"
)

func TestStore_GetProfile(t *testing.T) {
	store := NewStore()
	rating := 4.2
	store.PutProfile(domain.ContractorProfile{UserID: "c-1", Rating: &rating})

	profile, err := store.GetProfile(context.Background(), "c-1")
	require.NoError(t, err)
	require.Equal(t, 4.2, *profile.Rating)

	*profile.Rating = 1
	again, err := store.GetProfile(context.Background(), "c-1")
	require.NoError(t, err)
	require.Equal(t, 4.2, *again.Rating)

	_, err = store.GetProfile(context.Background(), "c-2")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_ListBidStatuses(t *testing.T) {
	store := NewStore()
	store.AddBid(Bid{ID: "b-1", ProjectID: "p-1", ContractorID: "c-1", Status: domain.BidAccepted})
	store.AddBid(Bid{ID: "b-2", ProjectID: "p-2", ContractorID: "c-1", Status: domain.BidPending})
	store.AddBid(Bid{ID: "b-3", ProjectID: "p-2", ContractorID: "c-2", Status: domain.BidAccepted})

	statuses, err := store.ListBidStatuses(context.Background(), "c-1")
	require.NoError(t, err)
	require.Equal(t, []domain.BidStatus{domain.BidAccepted, domain.BidPending}, statuses)

	none, err := store.ListBidStatuses(context.Background(), "c-9")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestStore_ListOpenProjects(t *testing.T) {
	store := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.AddProject(domain.Project{ID: "old", Status: domain.ProjectOpen, CreatedAt: base})
	store.AddProject(domain.Project{ID: "closed", Status: domain.ProjectCompleted, CreatedAt: base.Add(3 * time.Hour)})
	store.AddProject(domain.Project{ID: "new", Status: domain.ProjectOpen, CreatedAt: base.Add(2 * time.Hour)})
	store.AddProject(domain.Project{ID: "mid", Status: domain.ProjectOpen, CreatedAt: base.Add(time.Hour)})
	store.AddBid(Bid{ID: "b-1", ProjectID: "mid", ContractorID: "c-1", Status: domain.BidPending})

	projects, err := store.ListOpenProjects(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "new", projects[0].ID)
	require.Equal(t, "mid", projects[1].ID)
	require.Empty(t, projects[0].Bids)
	require.Equal(t, []domain.BidSummary{{ID: "b-1", ContractorID: "c-1"}}, projects[1].Bids)
}

func TestStore_Fail(t *testing.T) {
	store := NewStore()
	boom := errors.New("connection refused")
	store.Fail(boom)

	_, err := store.ListOpenProjects(context.Background(), 5)
	require.ErrorIs(t, err, boom)
	_, err = store.ListBidStatuses(context.Background(), "c-1")
	require.ErrorIs(t, err, boom)

	store.Fail(nil)
	_, err = store.ListOpenProjects(context.Background(), 5)
	require.NoError(t, err)
}

func TestStore_ResetAndSeedDemo(t *testing.T) {
	store := NewStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	SeedDemo(store, now)

	projects, err := store.ListOpenProjects(context.Background(), domain.FeedLimit)
	require.NoError(t, err)
	require.Len(t, projects, domain.FeedLimit)
	require.Equal(t, "demo-project-1", projects[0].ID)

	statuses, err := store.ListBidStatuses(context.Background(), DemoContractor)
	require.NoError(t, err)
	require.Len(t, statuses, 4)

	store.Fail(errors.New("down"))
	store.Reset()
	_, err = store.GetProfile(context.Background(), DemoContractor)
	require.ErrorIs(t, err, ports.ErrNotFound)
	projects, err = store.ListOpenProjects(context.Background(), domain.FeedLimit)
	require.NoError(t, err)
	require.Empty(t, projects)
}
