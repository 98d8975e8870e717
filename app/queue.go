package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/FelixBlom97/EloStealo/app/config"
	"github.com/FelixBlom97/EloStealo/app/game"
	"github.com/FelixBlom97/EloStealo/app/models"
)

// Publisher announces finished games. Rating updates happen downstream.
type Publisher interface {
	Publish(ctx context.Context, msg models.GameFinished) error
}

// nil disables publishing.
var publisher Publisher

type sqsSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type SQSPublisher struct {
	client   sqsSender
	queueURL string
}

func NewSQSPublisher(ctx context.Context, queueURL string) (*SQSPublisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &SQSPublisher{client: sqs.NewFromConfig(awsCfg), queueURL: queueURL}, nil
}

func (p *SQSPublisher) Publish(ctx context.Context, msg models.GameFinished) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal GameFinished: %w", err)
	}
	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	return err
}

// InitPublisher enables SQS publishing when QUEUE_URL is set.
func InitPublisher(cfg *config.Config) {
	if cfg.QueueURL == "" {
		log.Println("QUEUE_URL not set; finished games will not be published")
		return
	}
	p, err := NewSQSPublisher(context.Background(), cfg.QueueURL)
	if err != nil {
		log.Printf("failed to set up SQS publisher: %v", err)
		return
	}
	publisher = p
}

func gameFinished(id string, g *game.ChessGame, now time.Time) models.GameFinished {
	return models.GameFinished{
		GameID:     id,
		White:      g.White.Name,
		Black:      g.Black.Name,
		WhiteElo:   g.White.Elo,
		BlackElo:   g.Black.Elo,
		WhiteRule:  g.White.Rule,
		BlackRule:  g.Black.Rule,
		Result:     string(g.Result()),
		Method:     string(g.Method()),
		Plies:      g.Plies(),
		FinishedAt: now.Unix(),
	}
}

// publishFinished is best effort: a failed send is logged, never returned to
// the player.
func publishFinished(ctx context.Context, id string, g *game.ChessGame) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, gameFinished(id, g, time.Now())); err != nil {
		log.Printf("failed to publish finished game=%s: %v", id, err)
	}
}
