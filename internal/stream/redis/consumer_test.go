package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type fakeStreamClient struct {
	groupErr error
	readErr  error
	messages []redis.XMessage
	reads    int
	cancel   context.CancelFunc
	acked    []string
}

func (f *fakeStreamClient) XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.groupErr != nil {
		cmd.SetErr(f.groupErr)
	}
	return cmd
}

func (f *fakeStreamClient) XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd {
	cmd := redis.NewXStreamSliceCmd(ctx)
	f.reads++
	if f.readErr != nil {
		cmd.SetErr(f.readErr)
		return cmd
	}
	if f.reads == 1 && len(f.messages) > 0 {
		cmd.SetVal([]redis.XStream{{Stream: a.Streams[0], Messages: f.messages}})
		return cmd
	}
	if f.cancel != nil {
		f.cancel()
	}
	cmd.SetErr(redis.Nil)
	return cmd
}

func (f *fakeStreamClient) XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd {
	f.acked = append(f.acked, ids...)
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(ids)))
	return cmd
}

type fakeEvaluator struct {
	calls []models.EvaluationContext
}

func (f *fakeEvaluator) Execute(_ context.Context, evalCtx models.EvaluationContext) models.EvaluationResult {
	f.calls = append(f.calls, evalCtx)
	return models.EvaluationResult{ID: evalCtx.RequestID, Confidence: 0.9, Verdict: models.VerdictPass}
}

type fakePublisher struct {
	published []any
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, v any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.published = append(f.published, v)
	return "1-0", nil
}

func newTestConsumer(client StreamClient, exec Evaluator, pub ResultPublisher) *Consumer {
	logger := zerolog.Nop()
	return NewConsumer(client, ConsumerConfig{Stream: "eval-events", Group: "eval-group"}, exec, pub, &logger)
}

func TestConsumer_Setup(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"created", nil, false},
		{"group exists", errors.New("BUSYGROUP Consumer Group name already exists"), false},
		{"other error", errors.New("connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConsumer(&fakeStreamClient{groupErr: tt.err}, &fakeEvaluator{}, nil)
			err := c.Setup(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Setup() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConsumer_StartProcessesAndPublishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &fakeStreamClient{
		cancel: cancel,
		messages: []redis.XMessage{
			{ID: "1-0", Values: map[string]any{"payload": `{"event_id":"evt-1","interaction":{"user_query":"q","answer":"the cat chased the mouse"}}`}},
			{ID: "2-0", Values: map[string]any{"payload": `not json`}},
			{ID: "3-0", Values: map[string]any{"other": "x"}},
			{ID: "4-0", Values: map[string]any{"payload": `{"interaction":{"answer":"hello"}}`}},
		},
	}
	exec := &fakeEvaluator{}
	pub := &fakePublisher{}

	err := newTestConsumer(client, exec, pub).Start(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	if len(exec.calls) != 2 {
		t.Fatalf("Expected 2 evaluations, got %d", len(exec.calls))
	}
	if exec.calls[0].RequestID != "evt-1" || exec.calls[0].Answer != "the cat chased the mouse" {
		t.Errorf("Unexpected evaluation context: %+v", exec.calls[0])
	}
	if exec.calls[1].RequestID != "4-0" {
		t.Errorf("Expected message ID as fallback request ID, got %q", exec.calls[1].RequestID)
	}

	if len(pub.published) != 2 {
		t.Errorf("Expected 2 published results, got %d", len(pub.published))
	}

	if len(client.acked) != 4 {
		t.Errorf("Expected all 4 messages ACKed, got %v", client.acked)
	}
}

func TestConsumer_PublishFailureStillAcks(t *testing.T) {
	client := &fakeStreamClient{}
	c := newTestConsumer(client, &fakeEvaluator{}, &fakePublisher{err: errors.New("down")})

	c.process(context.Background(), redis.XMessage{
		ID:     "5-0",
		Values: map[string]any{"payload": `{"event_id":"evt-5","interaction":{"answer":"a b c"}}`},
	})

	if len(client.acked) != 1 || client.acked[0] != "5-0" {
		t.Errorf("Expected message 5-0 ACKed, got %v", client.acked)
	}
}

func TestConsumer_ReadErrorWaitsBeforeRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &fakeStreamClient{readErr: errors.New("connection refused")}
	c := newTestConsumer(client, &fakeEvaluator{}, nil)
	c.RetryDelay = time.Hour

	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Consumer did not stop after cancellation")
	}

	if client.reads != 1 {
		t.Errorf("Expected a single read while waiting to retry, got %d", client.reads)
	}
}
