// Package cache provides pluggable caching for rendered chart artifacts.
//
// The Cache interface abstracts the storage backend (files for CLI usage,
// Redis for the render server, a null cache for tests) and the Keyer
// interface derives deterministic cache keys from chart definitions and
// render parameters.
package cache

import (
	"context"
	"time"
)

// Cache is the storage backend interface.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero or negative TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RenderKeyOpts captures the render parameters that affect the output.
// Two renders with the same definition hash and the same opts produce
// byte-identical artifacts, so they share a cache entry.
type RenderKeyOpts struct {
	AxisID string // empty when rendering the whole chart
	Format string // "svg" or "png"
	Width  int    // raster width, 0 for vector output
	Height int    // raster height, 0 for vector output
}

// Keyer derives cache keys for the two cacheable stages.
type Keyer interface {
	// DefinitionKey returns the key for a stored chart definition.
	DefinitionKey(chartID string) string

	// RenderKey returns the key for a rendered artifact of the
	// definition identified by defHash.
	RenderKey(defHash string, opts RenderKeyOpts) string
}

// DefaultKeyer generates hashed, versioned cache keys.
// The version prefix invalidates all entries when the key schema changes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DefinitionKey generates a key for a stored chart definition.
func (k *DefaultKeyer) DefinitionKey(chartID string) string {
	return hashKey("def:v1", chartID)
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(defHash string, opts RenderKeyOpts) string {
	return hashKey("render:v1", defHash, opts.AxisID, opts.Format, opts.Width, opts.Height)
}
