package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// BatchMessage represents a message to be sent in batch
type BatchMessage struct {
	MessageID string `json:"messageId"`
	Body      any    `json:"body"`
}

// BatchResult represents the result of a batch send operation
type BatchResult struct {
	Successful []string `json:"successful"`
	Failed     []string `json:"failed"`
}

// SQSClient defines the interface for SQS operations
type SQSClient interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	GetQueueAttributes(ctx context.Context, params *sqs.GetQueueAttributesInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueAttributesOutput, error)
	SendMessageBatch(ctx context.Context, params *sqs.SendMessageBatchInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error)
}

// Sender handles sending messages to SQS queues
type Sender struct {
	sqsClient SQSClient
}

// NewSender creates and returns a new Sender
func NewSender(sqsClient SQSClient) *Sender {
	return &Sender{
		sqsClient: sqsClient,
	}
}

// SendMessageBatch sends multiple messages in batches of 10 to the specified queue using parallel processing
// Returns BatchResult with successful and failed message IDs
func (s *Sender) SendMessageBatch(ctx context.Context, queueName string, messages []BatchMessage) (*BatchResult, error) {
	if len(messages) == 0 {
		return &BatchResult{
			Successful: []string{},
			Failed:     []string{},
		}, nil
	}

	// Get queue URL
	queueURL, err := s.getQueueURL(ctx, queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue URL for %s: %w", queueName, err)
	}

	// Split messages into batches of 10 (SQS limit)
	const batchSize = 10
	var batches [][]BatchMessage
	for i := 0; i < len(messages); i += batchSize {
		end := i + batchSize
		if end > len(messages) {
			end = len(messages)
		}
		batches = append(batches, messages[i:end])
	}

	// Channel to collect results from parallel batch sends
	resultChan := make(chan *BatchResult, len(batches))
	var wg sync.WaitGroup

	// Send all batches in parallel
	for _, batch := range batches {
		wg.Add(1)
		go func(batchMessages []BatchMessage) {
			defer wg.Done()

			batchResult, err := s.sendBatch(ctx, queueURL, batchMessages)
			if err != nil {
				// If the entire batch fails, mark all messages as failed
				failedResult := &BatchResult{
					Successful: []string{},
					Failed:     make([]string, len(batchMessages)),
				}
				for i, msg := range batchMessages {
					failedResult.Failed[i] = msg.MessageID
				}
				resultChan <- failedResult
				return
			}

			resultChan <- batchResult
		}(batch)
	}

	// Wait for all goroutines to complete
	wg.Wait()
	close(resultChan)

	// Collect all results
	finalResult := &BatchResult{
		Successful: []string{},
		Failed:     []string{},
	}

	for batchResult := range resultChan {
		finalResult.Successful = append(finalResult.Successful, batchResult.Successful...)
		finalResult.Failed = append(finalResult.Failed, batchResult.Failed...)
	}

	return finalResult, nil
}

// sendBatch sends a single batch of up to 10 messages
func (s *Sender) sendBatch(ctx context.Context, queueURL string, messages []BatchMessage) (*BatchResult, error) {
	if len(messages) > 10 {
		return nil, fmt.Errorf("batch size cannot exceed 10 messages, got %d", len(messages))
	}

	entries := make([]types.SendMessageBatchRequestEntry, 0, len(messages))
	serializationFailed := make([]string, 0)

	// Prepare batch entries
	for _, msg := range messages {
		// Serialize body to JSON
		jsonBody, err := json.Marshal(msg.Body)
		if err != nil {
			// Add to serialization failed list
			serializationFailed = append(serializationFailed, msg.MessageID)
			continue
		}

		messageBody := string(jsonBody)
		entries = append(entries, types.SendMessageBatchRequestEntry{
			Id:          &msg.MessageID,
			MessageBody: &messageBody,
		})
	}

	result := &BatchResult{
		Successful: []string{},
		Failed:     serializationFailed, // Start with serialization failures
	}

	// If no messages could be serialized, return early
	if len(entries) == 0 {
		return result, nil
	}

	// Send batch
	output, err := s.sqsClient.SendMessageBatch(ctx, &sqs.SendMessageBatchInput{
		QueueUrl: &queueURL,
		Entries:  entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message batch: %w", err)
	}

	// Process successful messages
	for _, success := range output.Successful {
		if success.Id != nil {
			result.Successful = append(result.Successful, *success.Id)
		}
	}

	// Process failed messages from SQS
	for _, failed := range output.Failed {
		if failed.Id != nil {
			result.Failed = append(result.Failed, *failed.Id)
		}
	}

	return result, nil
}

// ApproximateMessages returns the approximate number of visible messages, which also proves the queue is reachable
func (s *Sender) ApproximateMessages(ctx context.Context, queueName string) (string, error) {
	queueURL, err := s.getQueueURL(ctx, queueName)
	if err != nil {
		return "", err
	}

	output, err := s.sqsClient.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       &queueURL,
		AttributeNames: []types.QueueAttributeName{types.QueueAttributeNameApproximateNumberOfMessages},
	})
	if err != nil {
		return "", err
	}
	return output.Attributes[string(types.QueueAttributeNameApproximateNumberOfMessages)], nil
}

// getQueueURL resolves a queue name to its URL, URLs are returned unchanged
func (s *Sender) getQueueURL(ctx context.Context, queueName string) (string, error) {
	if strings.HasPrefix(queueName, "https://") || strings.HasPrefix(queueName, "http://") {
		return queueName, nil
	}

	result, err := s.sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: &queueName,
	})
	if err != nil {
		return "", err
	}
	if result.QueueUrl == nil {
		return "", fmt.Errorf("queue URL is nil for queue %s", queueName)
	}
	return *result.QueueUrl, nil
}
