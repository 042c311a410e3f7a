package mapper

import (
	"time"

	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
)

const (
	ProjectsPath = "/contractor/projects"
	BidsPath     = "/contractor/bids"
)

// Stats is the HTTP representation of the contractor's bidding summary.
type Stats struct {
	TotalBids  int     `json:"totalBids"`
	Accepted   int     `json:"accepted"`
	Rating     float64 `json:"rating"`
	RatingText string  `json:"ratingText"`
}

// Project is a feed card.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	BudgetMin   *float64  `json:"budgetMin,omitempty"`
	BudgetMax   *float64  `json:"budgetMax,omitempty"`
	BudgetText  string    `json:"budgetText"`
	CreatedAt   time.Time `json:"createdAt"`
	PostedText  string    `json:"postedText"`
	AlreadyBid  bool      `json:"alreadyBid"`
	Href        string    `json:"href"`
}

// Link is a navigation target offered by the dashboard.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Dashboard is the payload of GET /v1/contractor/dashboard.
type Dashboard struct {
	Stats        Stats     `json:"stats"`
	Projects     []Project `json:"projects"`
	EmptyFeed    bool      `json:"emptyFeed"`
	QuickActions []Link    `json:"quickActions"`
}

// QuickActions lists the shortcuts shown above the feed.
func QuickActions() []Link {
	return []Link{
		{Label: "Browse Projects", Href: ProjectsPath},
		{Label: "View My Bids", Href: BidsPath},
	}
}

// ProjectHref links to the project detail page.
func ProjectHref(id string) string {
	return ProjectsPath + "/" + id
}

// FromOverview maps the aggregate into its HTTP representation.
func FromOverview(overview *domain.Overview, f *Formatter) Dashboard {
	if f == nil {
		f = NewFormatter(DefaultLocale)
	}
	out := Dashboard{
		Projects:     make([]Project, 0),
		EmptyFeed:    overview.EmptyFeed(),
		QuickActions: QuickActions(),
	}
	if overview == nil {
		out.Stats = Stats{RatingText: f.Rating(0)}
		return out
	}
	out.Stats = Stats{
		TotalBids:  overview.Stats.TotalBids,
		Accepted:   overview.Stats.Accepted,
		Rating:     overview.Stats.Rating,
		RatingText: f.Rating(overview.Stats.Rating),
	}
	for _, item := range overview.Feed {
		out.Projects = append(out.Projects, fromFeedItem(item, f))
	}
	return out
}

func fromFeedItem(item domain.FeedItem, f *Formatter) Project {
	p := item.Project
	return Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		City:        p.City,
		BudgetMin:   p.BudgetMin,
		BudgetMax:   p.BudgetMax,
		BudgetText:  f.Budget(p.BudgetMin, p.BudgetMax),
		CreatedAt:   p.CreatedAt,
		PostedText:  f.Since(p.CreatedAt),
		AlreadyBid:  item.AlreadyBid,
		Href:        ProjectHref(p.ID),
	}
}
