package domain

import (
	"sort"
	"time"
)

// FeedLimit caps how many open projects the dashboard surfaces.
const FeedLimit = 5

// ProjectStatus enumerates the listing lifecycle.
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// BidSummary is the slice of a bid needed to test membership on a project.
type BidSummary struct {
	ID           string
	ContractorID ViewerID
}

// Project models a work listing posted by a homeowner.
type Project struct {
	ID          string
	Title       string
	Description string
	City        string
	BudgetMin   *float64
	BudgetMax   *float64
	CreatedAt   time.Time
	Status      ProjectStatus
	Bids        []BidSummary
}

// IsOpen reports whether contractors may still bid.
func (p *Project) IsOpen() bool {
	return p != nil && p.Status == ProjectOpen
}

// HasBidFrom reports whether the contractor already placed a bid on the project.
func (p *Project) HasBidFrom(viewer ViewerID) bool {
	if p == nil {
		return false
	}
	for _, bid := range p.Bids {
		if bid.ContractorID == viewer {
			return true
		}
	}
	return false
}

// FeedItem is a project annotated for the viewer.
type FeedItem struct {
	Project    Project
	AlreadyBid bool
}

// BuildFeed keeps open projects only, newest first, and marks the ones the
// viewer has bid on. Projects with equal timestamps keep the order given.
func BuildFeed(viewer ViewerID, projects []*Project) []FeedItem {
	open := make([]*Project, 0, len(projects))
	for _, project := range projects {
		if project.IsOpen() {
			open = append(open, project)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].CreatedAt.After(open[j].CreatedAt)
	})
	if len(open) > FeedLimit {
		open = open[:FeedLimit]
	}
	feed := make([]FeedItem, 0, len(open))
	for _, project := range open {
		feed = append(feed, FeedItem{Project: *project, AlreadyBid: project.HasBidFrom(viewer)})
	}
	return feed
}

// Overview is the render-ready dashboard aggregate.
type Overview struct {
	Stats Stats
	Feed  []FeedItem
}

// EmptyFeed reports whether there is nothing to show in the project list.
func (o *Overview) EmptyFeed() bool {
	return o == nil || len(o.Feed) == 0
}
