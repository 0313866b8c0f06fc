package rabbitmq

import (
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	amqp "github.com/rabbitmq/amqp091-go"
)

// New dials the broker, retrying with exponential backoff so a service
// started alongside RabbitMQ does not lose the race.
func New(url string) (*amqp.Connection, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second
	const maxRetries = 5

	var conn *amqp.Connection
	err := backoff.Retry(func() error {
		var dialErr error
		conn, dialErr = amqp.Dial(url)
		if dialErr != nil {
			log.Printf("rabbitmq dial failed, retrying: %v", dialErr)
			return dialErr
		}
		return nil
	}, backoff.WithMaxRetries(bo, uint64(maxRetries-1)))
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq failed after retries: %w", err)
	}
	return conn, nil
}
