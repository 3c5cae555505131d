package aws

import (
	"context"

	"lindas-hydro/internal/domain/gateway/queue"
	"lindas-hydro/pkg/sqs"
)

// SQSSenderAdapter adapts the pkg/sqs.Sender to implement domain queue.Sender interface
type SQSSenderAdapter struct {
	sqsSender *sqs.Sender
}

// NewSQSSenderAdapter creates a new SQS sender adapter that implements domain interface
func NewSQSSenderAdapter(sqsClient sqs.SQSClient) queue.Sender {
	return &SQSSenderAdapter{
		sqsSender: sqs.NewSender(sqsClient),
	}
}

// SendMessageBatch implements the domain interface by converting types
func (adapter *SQSSenderAdapter) SendMessageBatch(ctx context.Context, queueName string, messages []queue.BatchMessage) (*queue.BatchResult, error) {
	sqsMessages := make([]sqs.BatchMessage, len(messages))
	for i, msg := range messages {
		sqsMessages[i] = sqs.BatchMessage{
			MessageID: msg.MessageID,
			Body:      msg.Body,
		}
	}

	result, err := adapter.sqsSender.SendMessageBatch(ctx, queueName, sqsMessages)
	if err != nil {
		return nil, err
	}

	return &queue.BatchResult{
		Successful: result.Successful,
		Failed:     result.Failed,
	}, nil
}

func (adapter *SQSSenderAdapter) ApproximateMessages(ctx context.Context, queueName string) (string, error) {
	return adapter.sqsSender.ApproximateMessages(ctx, queueName)
}
