package domain

import (
	"errors"
	"strings"
)

// ViewerID identifies the signed-in contractor looking at the dashboard.
type ViewerID string

// ErrEmptyViewer signals a request that reached the dashboard without a resolved identity.
var ErrEmptyViewer = errors.New("viewer id must not be empty")

// ValidateViewer rejects identities that were never resolved.
func ValidateViewer(id ViewerID) error {
	if strings.TrimSpace(string(id)) == "" {
		return ErrEmptyViewer
	}
	return nil
}

// ContractorProfile is the reference record kept per contractor account.
type ContractorProfile struct {
	UserID ViewerID
	Rating *float64
}

// RatingOrZero returns the stored rating, or 0 for a missing profile or rating.
func (p *ContractorProfile) RatingOrZero() float64 {
	if p == nil || p.Rating == nil || *p.Rating < 0 {
		return 0
	}
	return *p.Rating
}

// BidStatus enumerates the lifecycle of a submitted bid.
type BidStatus string

const (
	BidPending   BidStatus = "pending"
	BidAccepted  BidStatus = "accepted"
	BidRejected  BidStatus = "rejected"
	BidWithdrawn BidStatus = "withdrawn"
)

// Stats summarises a contractor's bidding history.
type Stats struct {
	TotalBids int
	Accepted  int
	Rating    float64
}

// ComputeStats counts bids by status and attaches the profile rating.
func ComputeStats(profile *ContractorProfile, statuses []BidStatus) Stats {
	stats := Stats{TotalBids: len(statuses), Rating: profile.RatingOrZero()}
	for _, status := range statuses {
		if status == BidAccepted {
			stats.Accepted++
		}
	}
	return stats
}
