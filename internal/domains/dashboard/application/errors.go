package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
)

var (
	// ErrUnauthorized signals the viewer identity was never resolved.
	ErrUnauthorized = errors.New("viewer is not authenticated")
	// ErrDataStoreUnavailable signals a failed read; callers may retry the whole aggregation.
	ErrDataStoreUnavailable = errors.New("dashboard data store unavailable")
	// ErrSuperseded signals a newer aggregation for the same session replaced this one.
	ErrSuperseded = errors.New("dashboard aggregation superseded by a newer request")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyViewer) {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrDataStoreUnavailable) || errors.Is(err, ErrSuperseded) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDataStoreUnavailable, err)
}
