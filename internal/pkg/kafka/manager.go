package kafka

import (
	"Postcraft/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 CDC 消费者
type ConsumerManager struct {
	cdcConsumer sarama.ConsumerGroup
	cdcHandler  sarama.ConsumerGroupHandler
	topic       string
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, invalidators Invalidators) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	cdcConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCDCConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		cdcConsumer: cdcConsumer,
		cdcHandler:  NewCDCHandler(invalidators),
		topic:       cfg.KafkaCDCConsumer.Topic,
	}, nil
}

// Start 阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.cdcConsumer.Errors() {
			log.Error("Error from cdc consumer group", "err", err)
		}
	}()

	go func() {
		log.Info("CDC consumer started", "topic", m.topic)
		for {
			if err := m.cdcConsumer.Consume(ctx, []string{m.topic}, m.cdcHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.cdcConsumer.Close(); err != nil {
		log.Error("Failed to close cdc consumer", "err", err)
	}
	return nil
}
