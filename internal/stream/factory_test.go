package stream

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewStreamConsumer_UnsupportedProvider(t *testing.T) {
	logger := zerolog.Nop()

	_, err := NewStreamConsumer(context.Background(), &StreamConfig{Provider: "kafka"}, nil, &logger)
	if err == nil {
		t.Fatal("Expected error for unsupported provider")
	}
}
