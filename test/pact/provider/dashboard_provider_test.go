//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/Apurer/contractor-dashboard/test/pact"

	dashboardserver "github.com/Apurer/contractor-dashboard/go"
	dashboardmapper "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/adapters/http/mapper"
	dashboardmemory "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/adapters/memory"
	dashboardobs "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/adapters/observability"
	dashboardapp "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/application"
	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
	"github.com/Apurer/contractor-dashboard/internal/platform/auth"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestDashboardProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateContractorActive: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.store.Reset()
			if setup {
				app.seedContractor()
			}
			return nil, nil
		},
		pacttest.StateStoreUnavailable: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.store.Reset()
			if setup {
				app.store.Fail(errors.New("connection refused"))
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.store.Reset()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	store  *dashboardmemory.Store
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	store := dashboardmemory.NewStore()
	service := dashboardobs.New(dashboardapp.NewService(store))
	formatter := dashboardmapper.NewFormatter(dashboardmapper.DefaultLocale,
		dashboardmapper.WithClock(func() time.Time { return pacttest.ProjectCreatedAt.Add(3 * time.Hour) }))

	handlers := dashboardserver.ApiHandleFunctions{
		DashboardAPI: dashboardserver.NewDashboardAPI(dashboardapp.NewCoordinator(service), formatter),
		HealthAPI:    dashboardserver.NewHealthAPI(pacttest.ProviderName, nil),
		Authenticate: auth.HeaderMiddleware(),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = dashboardserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{store: store, server: server}
}

func (a *contractProviderApp) seedContractor() {
	rating := 4.5
	low, high := 5000.0, 20000.0
	a.store.PutProfile(domain.ContractorProfile{UserID: pacttest.ContractorID, Rating: &rating})
	a.store.AddProject(domain.Project{
		ID:          pacttest.FeaturedProjectID,
		Title:       "Kitchen remodel",
		Description: "Replace cabinets and countertops",
		City:        "Pune",
		BudgetMin:   &low,
		BudgetMax:   &high,
		CreatedAt:   pacttest.ProjectCreatedAt,
		Status:      domain.ProjectOpen,
	})
	statuses := []domain.BidStatus{domain.BidAccepted, domain.BidPending, domain.BidRejected}
	for i, status := range statuses {
		projectID := "p-pact-closed"
		if i == 0 {
			projectID = pacttest.FeaturedProjectID
		}
		a.store.AddBid(dashboardmemory.Bid{
			ID:           "b-pact-" + string(rune('1'+i)),
			ProjectID:    projectID,
			ContractorID: pacttest.ContractorID,
			Status:       status,
		})
	}
}
