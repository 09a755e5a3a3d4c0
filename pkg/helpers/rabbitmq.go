package helpers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// rabbitConn is the connection and channel pair shared by both queue ends.
type rabbitConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// dialQueue connects and declares a durable queue.
func dialQueue(url, queue string) (*rabbitConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &rabbitConn{conn: conn, ch: ch}, nil
}

func (r *rabbitConn) close() {
	if r == nil {
		return
	}
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
}

// RabbitPublisher publishes email jobs to a durable queue.
type RabbitPublisher struct {
	*rabbitConn
	Queue string
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	rc, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	return &RabbitPublisher{rabbitConn: rc, Queue: queue}, nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	p.close()
}

// PublishJSON publishes a persistent JSON message on the default exchange.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
}

// RabbitConsumer reads from a queue with manual acks.
type RabbitConsumer struct {
	*rabbitConn
	Queue string
}

// NewRabbitConsumer limits unacked deliveries to prefetch so work is spread
// across workers.
func NewRabbitConsumer(url, queue string, prefetch int) (*RabbitConsumer, error) {
	rc, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	if err := rc.ch.Qos(prefetch, 0, false); err != nil {
		rc.close()
		return nil, err
	}
	return &RabbitConsumer{rabbitConn: rc, Queue: queue}, nil
}

func (c *RabbitConsumer) Deliveries(tag string) (<-chan amqp.Delivery, error) {
	return c.ch.Consume(c.Queue, tag, false, false, false, false, nil)
}

func (c *RabbitConsumer) Close() {
	if c == nil {
		return
	}
	c.close()
}
