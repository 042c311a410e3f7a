package memory

import (
	"fmt"
	"time"

	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
)

// DemoContractor is the viewer seeded by SeedDemo.
const DemoContractor domain.ViewerID = "demo-contractor"

// SeedDemo fills the store with a small marketplace so a local run without a
// database has something to render.
func SeedDemo(store *Store, now time.Time) {
	rating := 4.5
	store.PutProfile(domain.ContractorProfile{UserID: DemoContractor, Rating: &rating})

	cities := []string{"Pune", "Mumbai", "Bengaluru", "Chennai", "Delhi", "Hyderabad", "Kochi"}
	for i, city := range cities {
		low, high := float64(5000*(i+1)), float64(20000*(i+1))
		status := domain.ProjectOpen
		if i == len(cities)-1 {
			status = domain.ProjectInProgress
		}
		store.AddProject(domain.Project{
			ID:          fmt.Sprintf("demo-project-%d", i+1),
			Title:       fmt.Sprintf("Renovation job #%d", i+1),
			Description: "Demo listing seeded for local development.",
			City:        city,
			BudgetMin:   &low,
			BudgetMax:   &high,
			CreatedAt:   now.Add(-time.Duration(i*5) * time.Hour),
			Status:      status,
		})
	}

	statuses := []domain.BidStatus{domain.BidAccepted, domain.BidPending, domain.BidRejected, domain.BidAccepted}
	for i, status := range statuses {
		store.AddBid(Bid{
			ID:           fmt.Sprintf("demo-bid-%d", i+1),
			ProjectID:    fmt.Sprintf("demo-project-%d", i+1),
			ContractorID: DemoContractor,
			Status:       status,
		})
	}
}
