package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"smart_parking_booking/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-1")}, nil
}

type recordingPublisher struct {
	events []domain.SlotEvent
	err    error
}

func (r *recordingPublisher) Publish(ctx context.Context, event domain.SlotEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func sampleEvent() domain.SlotEvent {
	return domain.SlotEvent{
		Type:          domain.SlotEventBooked,
		SlotID:        "S001",
		LotID:         "lot-1",
		LotName:       "Lot A",
		Status:        domain.SlotOccupied,
		BookingID:     "BK-1",
		VehicleNumber: "KA01AB1234",
		Timestamp:     time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSQSPublisher_SendsJSONBody(t *testing.T) {
	client := &fakeSQS{}
	p := NewSQSPublisher(client, "https://sqs.example/queue")

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, client.inputs, 1)

	in := client.inputs[0]
	assert.Equal(t, "https://sqs.example/queue", aws.ToString(in.QueueUrl))
	assert.Equal(t, "slot_booked", aws.ToString(in.MessageAttributes["eventType"].StringValue))
	assert.Equal(t, "S001", aws.ToString(in.MessageAttributes["slotId"].StringValue))

	var decoded domain.SlotEvent
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(in.MessageBody)), &decoded))
	assert.Equal(t, sampleEvent(), decoded)
}

func TestSQSPublisher_WrapsSendError(t *testing.T) {
	boom := errors.New("throttled")
	p := NewSQSPublisher(&fakeSQS{err: boom}, "q")
	assert.ErrorIs(t, p.Publish(context.Background(), sampleEvent()), boom)
}

func TestFanout_DeliversToAllSinks(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("down")}
	f := NewFanout().Add("ok", ok).Add("failing", failing)

	err := f.Publish(context.Background(), sampleEvent())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failing: down")
	assert.Len(t, ok.events, 1)
	assert.Len(t, failing.events, 1)

	assert.NoError(t, NewFanout().Publish(context.Background(), sampleEvent()))
}
