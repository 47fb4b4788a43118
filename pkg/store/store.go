// Package store persists chart definitions.
//
// Two backends exist: an in-memory store for tests and single-process
// usage, and a MongoDB store for the render server.
package store

import (
	"context"

	"github.com/chartkit/chartkit/pkg/chart"
)

// Store is the persistence interface for chart definitions.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get loads a definition by chart ID. Returns an error with code
	// CHART_NOT_FOUND when the chart does not exist.
	Get(ctx context.Context, id string) (*chart.Definition, error)

	// Put stores a definition, replacing any existing one with the same ID.
	Put(ctx context.Context, def *chart.Definition) error

	// Delete removes a definition. Deleting a missing chart is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored charts.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
