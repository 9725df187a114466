// Command predict evaluates the crowd-signal fusion engine against a
// destination catalog, offline. It loads the festival reference dataset,
// runs a prediction for each destination under the given weather condition,
// and prints the results as JSON lines.
//
// Usage:
//
//	go run ./cmd/predict \
//	  -destinations data/destinations.json \
//	  -festivals data/festivals.json \
//	  -condition "heavy rain" \
//	  -holiday ""
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wayfaren/crowdpulse/internal/domain"
	"github.com/wayfaren/crowdpulse/internal/engine"
	"github.com/wayfaren/crowdpulse/internal/festival"
	"github.com/wayfaren/crowdpulse/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	destPath := flag.String("destinations", "", "path to destination catalog JSON")
	festPath := flag.String("festivals", "", "path or URL of festival dataset (optional)")
	condition := flag.String("condition", "clear", "free-text weather condition")
	temperature := flag.Float64("temperature", 25, "temperature for display")
	holiday := flag.String("holiday", "", "active holiday label, empty for none")
	at := flag.String("at", "", "evaluation time (RFC 3339), default now")
	flag.Parse()

	if *destPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -destinations")
	}

	now := time.Now()
	if *at != "" {
		parsed, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("invalid -at: %w", err)
		}
		now = parsed
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	metrics := observability.NewMetrics()
	resolver := festival.NewResolver(clockwork.NewRealClock(), logger, metrics)

	if *festPath != "" {
		source := festival.NewSource(*festPath, 5*time.Second, logger)
		source.LoadInto(context.Background(), resolver)
	}

	data, err := os.ReadFile(*destPath)
	if err != nil {
		return fmt.Errorf("reading destinations: %w", err)
	}
	var destinations []domain.DestinationSnapshot
	if err := json.Unmarshal(data, &destinations); err != nil {
		return fmt.Errorf("parsing destinations: %w", err)
	}

	eng := engine.New(resolver)
	weather := domain.WeatherObservation{Condition: *condition, Temperature: *temperature}
	cal := engine.CalendarContext{
		Holiday: *holiday,
		Curve:   engine.StandardCurve{},
		Now:     now,
	}

	enc := json.NewEncoder(os.Stdout)
	for _, snap := range destinations {
		result := eng.Predict(snap, weather, cal)
		out := struct {
			DestinationID int                     `json:"destination_id"`
			Name          string                  `json:"name,omitempty"`
			Prediction    domain.PredictionResult `json:"prediction"`
		}{snap.ID, snap.Name, result}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}
