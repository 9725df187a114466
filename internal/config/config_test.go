package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "destination-feedback", cfg.KafkaFeedbackTopic)
	assert.Equal(t, "crowdpulse", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Empty(t, cfg.RedisPassword)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "data/festivals.json", cfg.FestivalDataURL)
	assert.Equal(t, 5*time.Second, cfg.FestivalFetchTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")
	t.Setenv("KAFKA_FEEDBACK_TOPIC", "feedback-events")
	t.Setenv("KAFKA_GROUP_ID", "crowdpulse-staging")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "200")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("FESTIVAL_DATA_URL", "https://example.com/festivals.json")
	t.Setenv("FESTIVAL_FETCH_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "feedback-events", cfg.KafkaFeedbackTopic)
	assert.Equal(t, "crowdpulse-staging", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 200, cfg.BatchSize)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "hunter2", cfg.RedisPassword)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "https://example.com/festivals.json", cfg.FestivalDataURL)
	assert.Equal(t, 2*time.Second, cfg.FestivalFetchTimeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "bad shutdown timeout", key: "SHUTDOWN_TIMEOUT", value: "soon", wantErr: "SHUTDOWN_TIMEOUT"},
		{name: "negative shutdown timeout", key: "SHUTDOWN_TIMEOUT", value: "-5s", wantErr: "SHUTDOWN_TIMEOUT"},
		{name: "bad festival timeout", key: "FESTIVAL_FETCH_TIMEOUT", value: "0s", wantErr: "FESTIVAL_FETCH_TIMEOUT"},
		{name: "non-numeric batch size", key: "BATCH_SIZE", value: "many", wantErr: "BATCH_SIZE"},
		{name: "zero batch size", key: "BATCH_SIZE", value: "0", wantErr: "BATCH_SIZE"},
		{name: "oversized batch", key: "BATCH_SIZE", value: "1001", wantErr: "BATCH_SIZE"},
		{name: "negative redis db", key: "REDIS_DB", value: "-1", wantErr: "REDIS_DB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_EmptyBrokers(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_BROKERS", " , ,")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KAFKA_BROKERS", "KAFKA_FEEDBACK_TOPIC", "KAFKA_GROUP_ID",
		"HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
		"BATCH_SIZE", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"FESTIVAL_DATA_URL", "FESTIVAL_FETCH_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}
