package messaging

import (
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait

		nil, // arguments
	)
	if err != nil {
		return nil, err
	}
	err = ch.QueueBind(q.Name, name, name, false, nil)
	if err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, filter func(amqp.Delivery) error) error {
	fc, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			if err := filter(d); err != nil {
				// a broken message must not stop the listener
				log.Printf("Error processing message: %v", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}(fc)
	return nil
}

func DecodeChange(d amqp.Delivery) (CatalogChange, error) {
	var change CatalogChange
	if err := sonic.Unmarshal(d.Body, &change); err != nil {
		return change, fmt.Errorf("decode catalog change: %w", err)
	}
	return change, nil
}

// ListenToCatalogChanges calls handler for every change published by other
// instances, changes sent with the same origin are skipped.
func ListenToCatalogChanges(conn *amqp.Connection, prefix, origin string, handler func(CatalogChange) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	if err = DefineTopic(ch, prefix, CatalogChanged); err != nil {
		ch.Close()
		return err
	}
	return ListenToTopic(ch, prefix, CatalogChanged, func(d amqp.Delivery) error {
		change, err := DecodeChange(d)
		if err != nil {
			return err
		}
		if change.Origin != "" && change.Origin == origin {
			return nil
		}
		if change.IsEmpty() {
			return nil
		}
		return handler(change)
	})
}
