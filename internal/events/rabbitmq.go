package events

import (
	"log"

	"github.com/streadway/amqp"
)

// RabbitMQPublisher implements the Publisher interface using a RabbitMQ
// topic exchange.
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewRabbitMQPublisherConfig contains options for creating a new RabbitMQPublisher.
type NewRabbitMQPublisherConfig struct {
	URL      string
	Exchange string
}

// NewRabbitMQPublisher creates a new RabbitMQPublisher and declares the
// topic exchange.
func NewRabbitMQPublisher(cfg NewRabbitMQPublisherConfig) (Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		log.Printf("Failed to connect to RabbitMQ: %v", err)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("Failed to open a channel: %v", err)
		conn.Close() // Close connection if channel opening fails
		return nil, err
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		log.Printf("Failed to declare exchange %s: %v", cfg.Exchange, err)
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Println("Successfully connected to RabbitMQ and declared exchange")
	return &RabbitMQPublisher{conn: conn, channel: ch, exchange: cfg.Exchange}, nil
}

// Publish sends an event to the topic exchange using topic as the routing key.
func (p *RabbitMQPublisher) Publish(topic string, body []byte) error {
	err := p.channel.Publish(
		p.exchange, // exchange
		topic,      // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Make message persistent
		})
	if err != nil {
		log.Printf("Failed to publish event %s: %v", topic, err)
		return err
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (p *RabbitMQPublisher) Close() error {
	var lastErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Printf("Error closing RabbitMQ channel: %v", err)
			lastErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			log.Printf("Error closing RabbitMQ connection: %v", err)
			lastErr = err
		}
	}
	return lastErr
}
