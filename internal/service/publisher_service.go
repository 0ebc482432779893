package service

import (
	"context"
	"encoding/json"

	"loan-agent-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type publisherService struct {
	pubSub *gochannel.GoChannel
}

func NewPublisherService(pubSub *gochannel.GoChannel) events.Publisher {
	return &publisherService{pubSub: pubSub}
}

func (ps *publisherService) PublishApplicationSubmitted(ctx context.Context, event events.ApplicationSubmitted) error {
	return ps.publish(events.TopicApplicationSubmitted, event)
}

func (ps *publisherService) PublishApplicationDecided(ctx context.Context, event events.ApplicationDecided) error {
	return ps.publish(events.TopicApplicationDecided, event)
}

func (ps *publisherService) publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return ps.pubSub.Publish(topic, message.NewMessage(watermill.NewUUID(), data))
}
