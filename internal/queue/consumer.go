package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"smartparking/internal/domain/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditConsumer appends one line per booking event to a log file.
type AuditConsumer struct {
	URL     string
	LogPath string

	mu sync.Mutex
}

// Run consumes until ctx is cancelled, reconnecting with backoff when the
// broker goes away.
func (a *AuditConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(a.URL)
		if err != nil {
			log.Printf("[QUEUE] action=consumer_dial err=%v retry_in=%s", err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = a.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("[QUEUE] action=consumer_loop err=%v", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (a *AuditConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("[QUEUE] action=qos err=%v", err)
	}
	if err := declare(ch); err != nil {
		return err
	}

	deliveries := make(chan amqp.Delivery)
	stop := make(chan struct{})
	defer close(stop)
	for _, q := range Queues {
		msgs, err := ch.Consume(q, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", q, err)
		}
		go func(msgs <-chan amqp.Delivery) {
			for d := range msgs {
				select {
				case deliveries <- d:
				case <-stop:
					return
				}
			}
		}(msgs)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-closed:
			if err == nil {
				return errors.New("connection closed")
			}
			return err
		case d := <-deliveries:
			if err := a.handleMessage(d.Body); err != nil {
				log.Printf("[QUEUE] action=handle err=%v", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (a *AuditConsumer) handleMessage(body []byte) error {
	var ev models.BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" || ev.CustomerID == "" {
		return errors.New("event without type or customer_id")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if dir := filepath.Dir(a.LogPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(a.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	return writeAuditLine(f, ev)
}

func writeAuditLine(w io.Writer, ev models.BookingEvent) error {
	_, err := fmt.Fprintf(w, "[%s] %s | customer_id=%s | location=%s | zone=%s | date=%s | slot=%q | %s seat=%s | amount=%d\n",
		ev.OccurredAt.Format(time.RFC3339), ev.Type, ev.CustomerID, ev.LocationID, ev.ZoneID,
		ev.BookingDate, ev.TimeWindow, ev.VehicleType, ev.SeatNumber, ev.Amount)
	if err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
