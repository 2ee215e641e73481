package mailqueue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel 是 *amqp.Channel 中发布与声明队列所需的部分
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher struct {
	ch      Channel
	queue   string
	timeout time.Duration
}

// NewPublisher 声明一个持久化的队列，发送方和 cmd/mail 中的消费方使用同样的参数
func NewPublisher(ch Channel, queue string, timeout time.Duration) (*Publisher, error) {
	if _, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, err
	}

	return &Publisher{
		ch:      ch,
		queue:   queue,
		timeout: timeout,
	}, nil
}

func (p *Publisher) Publish(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
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
			Body:         body,
		},
	)
}
