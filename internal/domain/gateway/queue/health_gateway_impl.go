package queue

import (
	"context"
	"time"

	"lindas-hydro/internal/domain/model"
)

type QueueHealthGateway struct {
	sender    Sender
	queueName string
	timeout   time.Duration
}

var _ HealthGateway = (*QueueHealthGateway)(nil)

func NewQueueHealthGateway(sender Sender, queueName string) *QueueHealthGateway {
	return &QueueHealthGateway{sender: sender, queueName: queueName, timeout: 3 * time.Second}
}

// Health reads the queue depth, any error marks the queue DOWN.
func (gateway *QueueHealthGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), gateway.timeout)
	defer cancel()

	messages, err := gateway.sender.ApproximateMessages(ctx, gateway.queueName)
	if err != nil {
		return model.Down(err)
	}

	return model.Up(map[string]string{
		"queue":                gateway.queueName,
		"approximate_messages": messages,
	})
}
