package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

type Conf struct {
	client *kgo.Client
}

func NewConf(brokers []string) (*Conf, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers provided")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchMaxBytes(1 << 20),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &Conf{client: client}, nil
}

// ProduceMessage synchronously produces a single record.
func (c *Conf) ProduceMessage(topic string, key, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record := &kgo.Record{
		Topic: topic,
		Key:   key,
		Value: value,
	}
	if err := c.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce record: %w", err)
	}
	return nil
}

func (c *Conf) Close() {
	c.client.Close()
}
