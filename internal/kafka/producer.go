package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"fomo-app/internal/config"
	"fomo-app/internal/models"
)

type Producer struct {
	Writer *kafka.Writer
	Topics config.TopicConfig
	// Mock logs payloads without writing to a broker.
	Mock bool
}

func NewProducer(brokers []string, topics config.TopicConfig) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer, Topics: topics}
}

func (p *Producer) publish(topic, key string, payload interface{}) error {
	msgBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	fmt.Printf("Publishing to Kafka [%s]: %s\n", topic, string(msgBytes))

	if p.Mock {
		return nil
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: msgBytes,
		},
	)
}

// PublishResponseRecorded streams a freshly appended history entry to Kafka.
func (p *Producer) PublishResponseRecorded(entry models.ResponseEntry) error {
	return p.publish(p.Topics.ResponseRecorded, entry.UserID+":"+entry.EventID, entry)
}

// PublishFriendshipUpdated streams a friendship create/update/delete to Kafka.
func (p *Producer) PublishFriendshipUpdated(friendship models.Friendship) error {
	return p.publish(p.Topics.FriendshipUpdated, friendship.ID, friendship)
}

// PublishEventCreated streams a new event to Kafka.
func (p *Producer) PublishEventCreated(event models.Event) error {
	return p.publish(p.Topics.EventCreated, event.ID, event)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
