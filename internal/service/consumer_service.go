package service

import (
	"context"
	"encoding/json"

	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/pkg/logger"
	"quiz-generation-be/internal/repository/specification"
	"quiz-generation-be/internal/repository/unitofwork"
	"quiz-generation-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	consumerModule = "CONSUMER"

	// maxBackfillAttempts bounds redelivery of one message while the provider is down.
	maxBackfillAttempts = 3
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	gateway    *embedding.Gateway
	logger     logger.ILogger
	attempts   map[string]int
}

// NewConsumerService builds the embedding backfill worker for passages stored
// without a vector at ingest time.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	gateway *embedding.Gateway,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		gateway:    gateway,
		logger:     log,
		attempts:   make(map[string]int),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedPassagesMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Invalid backfill message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	passages, err := uow.PassageRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: payload.DocumentId},
		specification.MissingEmbedding{},
		specification.OrderBy{Field: "chunk_index"},
	)
	if err != nil {
		cs.retry(msg, "Failed to load passages", err)
		return
	}
	if len(passages) == 0 {
		cs.logger.Debug(consumerModule, "Nothing to backfill", map[string]interface{}{
			"document_id": payload.DocumentId,
		})
		cs.done(msg)
		return
	}

	embedded := 0
	var lastErr error
	for _, p := range passages {
		blob, err := cs.gateway.Embed(ctx, p.Content)
		if err != nil {
			if ctx.Err() != nil {
				msg.Nack()
				return
			}
			lastErr = err
			continue
		}
		if blob == nil {
			continue
		}
		if err := uow.PassageRepository().UpdateEmbedding(ctx, p.Id, blob); err != nil {
			lastErr = err
			continue
		}
		embedded++
	}

	cs.logger.Info(consumerModule, "Embedding backfill pass finished", map[string]interface{}{
		"document_id": payload.DocumentId,
		"missing":     len(passages),
		"embedded":    embedded,
	})

	if lastErr != nil {
		cs.retry(msg, "Embedding backfill incomplete", lastErr)
		return
	}
	cs.done(msg)
}

// retry nacks for redelivery until the attempt budget runs out, then acks so
// the passages stay unembedded instead of looping.
func (cs *consumerService) retry(msg *message.Message, reason string, err error) {
	cs.attempts[msg.UUID]++
	attempt := cs.attempts[msg.UUID]

	details := map[string]interface{}{
		"message_id": msg.UUID,
		"attempt":    attempt,
		"error":      err.Error(),
	}
	if attempt >= maxBackfillAttempts {
		cs.logger.Error(consumerModule, reason+", giving up", details)
		cs.done(msg)
		return
	}
	cs.logger.Warn(consumerModule, reason+", retrying", details)
	msg.Nack()
}

func (cs *consumerService) done(msg *message.Message) {
	delete(cs.attempts, msg.UUID)
	msg.Ack()
}
