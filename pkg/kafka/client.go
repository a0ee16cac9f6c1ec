// Package kafka 提供了将审计事件发布到 Kafka 的功能，供 SIEM 等下游系统消费。
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"asset-track-go/internal/config"
	"asset-track-go/pkg/log"

	"github.com/segmentio/kafka-go"
)

// AuditEvent 是发布到审计主题的事件结构。
type AuditEvent struct {
	Username    string    `json:"username"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurredAt"`
}

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者。
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka 生产者初始化成功")
}

// Enabled 返回生产者是否已初始化。
func Enabled() bool {
	return producer != nil
}

// ProduceAuditEvent 发送一条审计事件到 Kafka。
// 审计流是旁路能力，调用方不应因发送失败而让业务请求失败。
func ProduceAuditEvent(event AuditEvent) error {
	if producer == nil {
		return nil
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return producer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(event.Action),
			Value: eventBytes,
		},
	)
}
