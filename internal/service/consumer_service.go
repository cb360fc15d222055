package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"interview-insights-be/internal/pkg/logger"
	"interview-insights-be/pkg/events"
)

// Broadcaster pushes raw event payloads to connected websocket clients.
type Broadcaster interface {
	BroadcastRaw(data []byte)
}

// IConsumerService drains the in-process event bus and fans processing
// events out to websocket subscribers.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	broadcaster Broadcaster
	logger      logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, broadcaster Broadcaster, sysLogger logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		broadcaster: broadcaster,
		logger:      sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, events.TopicProcessing)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	// Payloads are already the wire shape the UI expects; forward as-is.
	cs.broadcaster.BroadcastRaw(msg.Payload)
	msg.Ack()
}
