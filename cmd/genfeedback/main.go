// Command genfeedback generates synthetic feedback events for local
// testing. Events can be written to a JSON fixture file or published
// straight to the feedback topic.
//
// Usage:
//
//	go run ./cmd/genfeedback -count 200 -users 10 -out data/mock/feedback.json
//	go run ./cmd/genfeedback -count 200 -users 10 -publish
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	kafkaadapter "github.com/wayfaren/crowdpulse/internal/adapter/kafka"
	"github.com/wayfaren/crowdpulse/internal/config"
	"github.com/wayfaren/crowdpulse/internal/domain"
)

var levels = []domain.CrowdLevel{
	domain.LevelLow, domain.LevelModerate, domain.LevelHeavy, domain.LevelOvercrowded,
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	count := flag.Int("count", 100, "number of events to generate")
	users := flag.Int("users", 5, "number of distinct users")
	destinations := flag.Int("destinations", 20, "number of distinct destinations")
	days := flag.Int("days", 7, "spread events over this many past days")
	seed := flag.Int64("seed", 42, "RNG seed for reproducible fixtures")
	out := flag.String("out", "", "output path for JSON fixture")
	publish := flag.Bool("publish", false, "publish to the feedback topic instead")
	flag.Parse()

	if *out == "" && !*publish {
		flag.Usage()
		return fmt.Errorf("need -out or -publish")
	}

	rng := rand.New(rand.NewSource(*seed))
	now := time.Now().UTC()

	events := make([]domain.FeedbackEvent, 0, *count)
	for i := 0; i < *count; i++ {
		predicted := levels[rng.Intn(len(levels))]
		reported := levels[rng.Intn(len(levels))]
		kind := domain.FeedbackQuick
		if rng.Intn(3) == 0 {
			kind = domain.FeedbackDetailed
		}
		events = append(events, domain.FeedbackEvent{
			ID:            uuid.NewString(),
			UserID:        fmt.Sprintf("user-%03d", rng.Intn(*users)),
			DestinationID: 1 + rng.Intn(*destinations),
			Kind:          kind,
			Predicted:     predicted,
			Reported:      reported,
			Accurate:      predicted == reported,
			SubmittedAt: now.AddDate(0, 0, -rng.Intn(*days)).
				Add(-time.Duration(rng.Intn(12)) * time.Hour),
		})
	}
	log.Printf("generated %d events", len(events))

	if *out != "" {
		if err := writeJSON(*out, events); err != nil {
			return fmt.Errorf("writing fixture: %w", err)
		}
		log.Printf("wrote fixture: %s", *out)
	}

	if *publish {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer writer.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := writer.WriteBatch(ctx, events); err != nil {
			return fmt.Errorf("publishing events: %w", err)
		}
		log.Printf("published %d events to %s", len(events), cfg.KafkaFeedbackTopic)
	}

	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
