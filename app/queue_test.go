package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"

	"github.com/FelixBlom97/EloStealo/app/game"
	"github.com/FelixBlom97/EloStealo/app/models"
)

type fakeSender struct {
	inputs []*sqs.SendMessageInput
}

func (f *fakeSender) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, params)
	return &sqs.SendMessageOutput{}, nil
}

type recordingPublisher struct {
	msgs []models.GameFinished
}

func (r *recordingPublisher) Publish(ctx context.Context, msg models.GameFinished) error {
	r.msgs = append(r.msgs, msg)
	return nil
}

func withPublisher(p Publisher) func() {
	original := publisher
	publisher = p
	return func() { publisher = original }
}

func TestSQSPublisherSendsGameFinished(t *testing.T) {
	sender := &fakeSender{}
	p := &SQSPublisher{client: sender, queueURL: "https://sqs.test/finished"}

	g := game.New(alice, bob)
	if err := g.Resign(chess.Black); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	at := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	msg := gameFinished("g1", g, at)
	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(sender.inputs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.inputs))
	}
	in := sender.inputs[0]
	if *in.QueueUrl != "https://sqs.test/finished" {
		t.Fatalf("unexpected queue url %q", *in.QueueUrl)
	}
	var got models.GameFinished
	if err := json.Unmarshal([]byte(*in.MessageBody), &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	want := models.GameFinished{
		GameID:     "g1",
		White:      "alice",
		Black:      "bob",
		WhiteElo:   1400,
		BlackElo:   1200,
		WhiteRule:  18,
		BlackRule:  0,
		Result:     "white",
		Method:     "resignation",
		Plies:      1,
		FinishedAt: at.Unix(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestPublishFinishedWithoutPublisher(t *testing.T) {
	defer withPublisher(nil)()
	// Must not panic.
	publishFinished(context.Background(), "g1", game.New(alice, bob))
}
