package chart

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/siderealab/orrery/pkg/astro"
	"github.com/siderealab/orrery/pkg/ephemeris"
	"github.com/siderealab/orrery/pkg/errors"
)

// retrogradeSampleStep is the finite-difference step for retrograde
// classification.
const retrogradeSampleStep = time.Hour

// PositionCalculator computes normalized body positions with retrograde
// flags from an injected ephemeris provider.
type PositionCalculator struct {
	provider ephemeris.Provider
}

// NewPositionCalculator creates a calculator backed by the given provider.
func NewPositionCalculator(p ephemeris.Provider) *PositionCalculator {
	return &PositionCalculator{provider: p}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Position returns the body's angular position at the given UTC instant.
//
// Retrograde is decided by sampling the longitude at t and at t+1h: the
// body is retrograde iff the later longitude is numerically smaller and
// the difference is under 180°, which excludes false positives from the
// 0°/360° wrap. The two samples are issued concurrently.
func (c *PositionCalculator) Position(ctx context.Context, body astro.Body, t time.Time) (astro.Position, error) {
	if !body.Valid() {
		return astro.Position{}, errors.New(errors.ErrCodeInvalidBody, "invalid body value: %d", int(body))
	}
	if err := errors.ValidateInstant(t); err != nil {
		return astro.Position{}, err
	}

	var now, later float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lon, err := c.provider.Longitude(gctx, body, t)
		if err != nil {
			return errors.Wrap(errors.ErrCodeProvider, err, "ephemeris longitude for %s", body)
		}
		now = lon
		return nil
	})
	g.Go(func() error {
		lon, err := c.provider.Longitude(gctx, body, t.Add(retrogradeSampleStep))
		if err != nil {
			return errors.Wrap(errors.ErrCodeProvider, err, "ephemeris longitude for %s (+1h)", body)
		}
		later = lon
		return nil
	})
	if err := g.Wait(); err != nil {
		return astro.Position{}, err
	}

	if !finite(now) || !finite(later) {
		return astro.Position{}, errors.New(errors.ErrCodeProvider, "non-finite longitude for %s", body)
	}

	return astro.Position{
		Body:       body,
		Longitude:  astro.Normalize(now),
		Retrograde: later < now && now-later < 180,
	}, nil
}

// Positions returns positions for all ten bodies in traditional order.
// The first provider failure aborts the computation.
func (c *PositionCalculator) Positions(ctx context.Context, t time.Time) ([]astro.Position, error) {
	out := make([]astro.Position, 0, astro.BodyCount)
	for _, body := range astro.Bodies() {
		pos, err := c.Position(ctx, body, t)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}
