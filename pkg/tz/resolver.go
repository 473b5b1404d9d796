// Package tz maps coordinates to IANA timezone names using a preloaded
// polygon index.
package tz

import (
	"fmt"
	"math"

	"github.com/ringsaturn/tzf"
)

// Resolver is total: every coordinate yields a non-empty zone name.
type Resolver interface {
	Resolve(lat, lng float64) string
}

type nameFinder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// Finder is safe for concurrent use; its index is never modified after New.
type Finder struct {
	finder nameFinder
}

// New loads the default tzf index. It is expensive and meant to run once at startup.
func New() (*Finder, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("load timezone index: %w", err)
	}
	return &Finder{finder: f}, nil
}

// Resolve returns the zone containing the point, or the nautical zone for
// the longitude when no polygon matches (open sea, invalid input).
func (f *Finder) Resolve(lat, lng float64) string {
	if isFinite(lat) && isFinite(lng) {
		if name := f.finder.GetTimezoneName(lng, lat); name != "" {
			return name
		}
	}
	return nauticalZone(lng)
}

func nauticalZone(lng float64) string {
	if !isFinite(lng) {
		return "Etc/UTC"
	}

	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	lng -= 180

	offset := int(math.Round(lng / 15))
	switch {
	case offset == 0:
		return "Etc/GMT"
	case offset > 0:
		// Etc/GMT signs are inverted: east of Greenwich is GMT-N.
		return fmt.Sprintf("Etc/GMT-%d", offset)
	default:
		return fmt.Sprintf("Etc/GMT+%d", -offset)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
