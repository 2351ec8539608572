// Package cache provides content-addressed caching for chart, synastry
// and layout computations.
//
// The engine itself has no persistent state; caching is an optional
// performance layer keyed by a hash of the computation inputs, so a hit
// can never be stale. Three backends are provided:
//
//   - [NullCache]: caching disabled (testing, one-shot runs)
//   - [FileCache]: filesystem cache for the CLI (XDG cache dir)
//   - [RedisCache]: shared cache for the HTTP API
//
// Keys are produced by a [Keyer] so that every consumer derives them the
// same way; [ScopedKeyer] adds a namespace prefix for multi-tenant
// deployments.
package cache

import (
	"context"
	"time"
)

// TTLs for the different cached computation stages. Chart results depend
// only on their inputs, so the TTLs bound storage, not correctness.
const (
	// TTLChart is the lifetime of cached chart computations.
	TTLChart = 30 * 24 * time.Hour

	// TTLSynastry is the lifetime of cached aspect detections.
	TTLSynastry = 30 * 24 * time.Hour

	// TTLLayout is the lifetime of cached radial layouts.
	TTLLayout = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ChartKeyOpts are the inputs that determine a chart computation.
type ChartKeyOpts struct {
	Instant   time.Time
	Latitude  float64
	Longitude float64
}

// LayoutKeyOpts are the inputs that determine a layout computation
// beyond the longitude set itself.
type LayoutKeyOpts struct {
	MinSeparation float64
}

// Keyer derives cache keys for the computation stages.
type Keyer interface {
	// ChartKey identifies a chart computation for a given provider and
	// subject. The provider name must change when the underlying
	// ephemeris changes, or stale positions would be served.
	ChartKey(provider string, opts ChartKeyOpts) string

	// SynastryKey identifies an aspect detection between two subjects.
	SynastryKey(chartHashA, chartHashB string) string

	// LayoutKey identifies a radial layout for a longitude set hash.
	LayoutKey(longitudeHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes inputs into stable namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ChartKey generates a key for chart computation caching.
func (k *DefaultKeyer) ChartKey(provider string, opts ChartKeyOpts) string {
	return hashKey("chart", provider, opts.Instant.UTC().Format(time.RFC3339Nano), opts.Latitude, opts.Longitude)
}

// SynastryKey generates a key for aspect detection caching.
func (k *DefaultKeyer) SynastryKey(chartHashA, chartHashB string) string {
	return hashKey("synastry", chartHashA, chartHashB)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(longitudeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", longitudeHash, opts.MinSeparation)
}
