package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

type fakeAdder struct {
	args *redis.XAddArgs
	err  error
}

func (f *fakeAdder) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = a
	cmd := redis.NewStringCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal("1700000000000-0")
	}
	return cmd
}

func TestPublisher_Publish(t *testing.T) {
	adder := &fakeAdder{}
	publisher := NewPublisher(adder, "eval-results", "result")

	id, err := publisher.Publish(context.Background(), map[string]string{"id": "evt-1"})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if id != "1700000000000-0" {
		t.Errorf("id: %s", id)
	}
	if adder.args.Stream != "eval-results" {
		t.Errorf("stream: %s", adder.args.Stream)
	}

	values, ok := adder.args.Values.(map[string]any)
	if !ok {
		t.Fatalf("unexpected values type %T", adder.args.Values)
	}
	if values["result"] != `{"id":"evt-1"}` {
		t.Errorf("payload: %v", values["result"])
	}
}

func TestPublisher_PublishError(t *testing.T) {
	publisher := NewPublisher(&fakeAdder{err: errors.New("READONLY")}, "eval-results", "result")

	if _, err := publisher.Publish(context.Background(), "x"); err == nil {
		t.Fatal("Expected error")
	}
}

func TestPublisher_EncodeError(t *testing.T) {
	publisher := NewPublisher(&fakeAdder{}, "eval-results", "result")

	if _, err := publisher.Publish(context.Background(), make(chan int)); err == nil {
		t.Fatal("Expected encode error")
	}
}
