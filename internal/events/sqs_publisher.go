package events

import (
	"context"
	"encoding/json"
	"fmt"
	"smart_parking_booking/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSSendAPI is the subset of *sqs.Client the publisher needs.
type SQSSendAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type SQSPublisher struct {
	sqsClient SQSSendAPI
	queueURL  string
}

func NewSQSPublisher(client SQSSendAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{
		sqsClient: client,
		queueURL:  queueURL,
	}
}

func (p *SQSPublisher) Publish(ctx context.Context, event domain.SlotEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("SQSPublisher: marshal event: %w", err)
	}

	_, err = p.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {DataType: aws.String("String"), StringValue: aws.String(string(event.Type))},
			"slotId":    {DataType: aws.String("String"), StringValue: aws.String(event.SlotID)},
		},
	})
	if err != nil {
		return fmt.Errorf("SQSPublisher: send message: %w", err)
	}
	return nil
}
