package festival

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/wayfaren/crowdpulse/internal/domain"
)

// dataset is the versioned on-disk/remote festival collection.
type dataset struct {
	Version   int              `json:"version"`
	Festivals []festivalRecord `json:"festivals"`
}

type festivalRecord struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Impact       float64 `json:"impact"`
	Destinations []int   `json:"destinations"`
}

// Source fetches the festival reference dataset from a file path or an
// HTTP(S) URL.
type Source struct {
	location   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSource creates a Source for the given location. Locations starting
// with http:// or https:// are fetched remotely; anything else is read as
// a local file path.
func NewSource(location string, timeout time.Duration, logger *slog.Logger) *Source {
	return &Source{
		location:   location,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// LoadInto fetches the dataset once and installs it on the resolver.
// Degrades gracefully: on any fetch, decode, or cancellation failure the
// resolver is left serving neutral results and the error is logged, never
// returned to a lookup path. An abandoned fetch behaves like a failed one.
func (s *Source) LoadInto(ctx context.Context, r *Resolver) {
	data, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("festival data unavailable, degrading to empty set",
			"location", s.location, "error", err)
		return
	}

	var ds dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		s.logger.Warn("festival data unparsable, degrading to empty set",
			"location", s.location, "error", err)
		return
	}

	festivals := make([]domain.Festival, 0, len(ds.Festivals))
	for _, rec := range ds.Festivals {
		festivals = append(festivals, domain.Festival{
			ID:           rec.ID,
			Name:         rec.Name,
			StartDate:    rec.StartDate,
			EndDate:      rec.EndDate,
			Impact:       rec.Impact,
			Destinations: rec.Destinations,
		})
	}
	r.SetFestivals(festivals)
	s.logger.Info("festival data loaded", "version", ds.Version, "count", len(festivals))
}

func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.location, "http://") || strings.HasPrefix(s.location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch festival data: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch festival data: status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(s.location)
}
