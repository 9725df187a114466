// Package festival resolves festival impact multipliers from read-only
// reference data, with a short-lived per-date cache over the active-festival
// computation.
package festival

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wayfaren/crowdpulse/internal/domain"
	"github.com/wayfaren/crowdpulse/internal/observability"
)

// CacheTTL bounds the age of one date's cached active-festival list.
const CacheTTL = 60 * time.Second

// cacheEntry pairs a computed value with its expiry instant. Expiry is
// checked on read; stale entries are recomputed and overwritten in place,
// so no background sweeping is needed.
type cacheEntry struct {
	festivals []domain.Festival
	expiresAt time.Time
}

// Resolver answers festival-impact queries against a loaded reference set.
// It never fails: before Load (or after a failed load) every query returns
// neutral results.
type Resolver struct {
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	mu        sync.Mutex
	festivals []domain.Festival
	cache     map[string]cacheEntry
}

// NewResolver creates a Resolver with no reference data yet loaded.
func NewResolver(clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		cache:   make(map[string]cacheEntry),
	}
}

// SetFestivals installs the reference set and drops any cached lookups.
// Called once per session after the reference data loads.
func (r *Resolver) SetFestivals(festivals []domain.Festival) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.festivals = festivals
	r.cache = make(map[string]cacheEntry)
	r.metrics.FestivalLoaded.Set(float64(len(festivals)))
	r.logger.Info("festival reference data installed", "count", len(festivals))
}

// ActiveFestivals returns the festivals active on the given date. Results
// are cached per UTC day key for CacheTTL; an expired entry is recomputed
// from the in-memory reference set and replaced.
func (r *Resolver) ActiveFestivals(date time.Time) []domain.Festival {
	key := domain.DayKey(date)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if entry, ok := r.cache[key]; ok && now.Before(entry.expiresAt) {
		r.metrics.FestivalCache.WithLabelValues("hit").Inc()
		return entry.festivals
	}
	r.metrics.FestivalCache.WithLabelValues("miss").Inc()

	var active []domain.Festival
	for _, f := range r.festivals {
		if f.ActiveOn(date) {
			active = append(active, f)
		}
	}
	r.cache[key] = cacheEntry{festivals: active, expiresAt: now.Add(CacheTTL)}
	return active
}

// DestinationImpact returns the strongest active festival impact for one
// destination on a date, capped at domain.MaxFestivalImpact. Returns the
// neutral 1.0 when no festival data is loaded or none is active.
func (r *Resolver) DestinationImpact(destinationID int, date time.Time) float64 {
	impact := 1.0
	for _, f := range r.ActiveFestivals(date) {
		if !f.Affects(destinationID) {
			continue
		}
		if f.Impact > impact {
			impact = f.Impact
		}
	}
	if impact > domain.MaxFestivalImpact {
		return domain.MaxFestivalImpact
	}
	return impact
}
