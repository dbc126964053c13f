package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
)

const DefaultQueue = "schedule_audit_queue"

type Publisher interface {
	Publish(ctx context.Context, event domain.AuditEvent) error
}

// NewEvent 创建审计事件，digest 为请求体的 xxhash
func NewEvent(eventType domain.AuditEventType, requestID string, body []byte, data any) domain.AuditEvent {
	return domain.AuditEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		RequestID: requestID,
		Digest:    fmt.Sprintf("%016x", xxhash.Sum64(body)),
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}

type Noop struct{}

func (Noop) Publish(ctx context.Context, event domain.AuditEvent) error {
	return nil
}

// channel 是 *amqp.Channel 中用到的方法
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type AMQP struct {
	ch      channel
	queue   string
	timeout time.Duration
}

func NewAMQP(ch *amqp.Channel, queue string, timeout time.Duration) *AMQP {
	return &AMQP{ch: ch, queue: queue, timeout: timeout}
}

// DeclareQueue 声明持久化的审计队列，生产者和消费者都需要调用
func DeclareQueue(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		queue, // 队列名称
		true,  // 是否持久化
		false, // 是否自动删除
		false, // 是否独占
		false, // 是否不等待
		nil,   // 额外参数
	)
}

func (p *AMQP) Publish(ctx context.Context, event domain.AuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.CreatedAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
}
