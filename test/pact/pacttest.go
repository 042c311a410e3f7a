//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

const (
	ProviderName = "contractor-dashboard-api"
	ConsumerName = "contractor-web"

	StateContractorActive = "contractor c-pact has bids and open projects exist"
	StateStoreUnavailable = "the dashboard store is unavailable"
)

const (
	ContractorID = "c-pact"
	// OfflineContractorID keeps the store-down interaction distinguishable.
	OfflineContractorID = "c-pact-offline"
	FeaturedProjectID   = "p-pact-1"
	DashboardPath       = "/v1/contractor/dashboard"
	ViewerHeader        = "X-Viewer-Id"
)

// ProjectCreatedAt is the fixed posting time of the featured project.
var ProjectCreatedAt = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleDashboardPayload provides stable test data for dashboard interactions.
func ExampleDashboardPayload() map[string]any {
	return map[string]any{
		"stats": map[string]any{
			"totalBids":  3,
			"accepted":   1,
			"rating":     4.5,
			"ratingText": "4.5",
		},
		"projects": []map[string]any{{
			"id":          FeaturedProjectID,
			"title":       "Kitchen remodel",
			"description": "Replace cabinets and countertops",
			"city":        "Pune",
			"budgetMin":   5000,
			"budgetMax":   20000,
			"budgetText":  "₹5,000 - ₹20,000",
			"createdAt":   ProjectCreatedAt.Format(time.RFC3339),
			"postedText":  "about 3 hours ago",
			"alreadyBid":  true,
			"href":        "/contractor/projects/" + FeaturedProjectID,
		}},
		"emptyFeed": false,
		"quickActions": []map[string]any{
			{"label": "Browse Projects", "href": "/contractor/projects"},
			{"label": "View My Bids", "href": "/contractor/bids"},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
