package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
)

type fakeChannel struct {
	key      string
	msg      amqp.Publishing
	deadline bool
	err      error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.key = key
	f.msg = msg
	_, f.deadline = ctx.Deadline()
	return f.err
}

func TestNewEvent(t *testing.T) {
	body := []byte(`{"shifts":[],"employees":[]}`)
	a := NewEvent(domain.AuditValidateSchedule, "req-1", body, domain.ValidationAuditData{IsValid: true})
	b := NewEvent(domain.AuditValidateSchedule, "req-1", body, nil)

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Digest, b.Digest)
	assert.Len(t, a.Digest, 16)
	assert.Equal(t, "req-1", a.RequestID)
}

func TestAMQP_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQP{ch: ch, queue: DefaultQueue, timeout: time.Second}

	event := NewEvent(domain.AuditSuggestSchedule, "req-2", []byte("{}"), domain.SuggestionAuditData{Assigned: 3})
	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, DefaultQueue, ch.key)
	assert.True(t, ch.deadline)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, event.ID, ch.msg.MessageId)
	assert.Equal(t, "suggest_schedule", ch.msg.Type)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, "req-2", decoded["requestId"])
	assert.Equal(t, 3.0, decoded["data"].(map[string]any)["assigned"])
}

func TestAMQP_PublishError(t *testing.T) {
	boom := errors.New("channel closed")
	p := &AMQP{ch: &fakeChannel{err: boom}, queue: DefaultQueue, timeout: time.Second}

	err := p.Publish(context.Background(), NewEvent(domain.AuditCalculateScheduleCost, "", nil, nil))
	assert.ErrorIs(t, err, boom)
}
