package services

import (
	"context"
	"log"
	"time"

	"buildestate-server/models"
	"buildestate-server/storage"
)

const (
	outboxMaxAttempts = 5
	outboxBaseDelay   = time.Minute
)

// QueueEmail records a notification intent. The caller's request succeeds even
// if the row can never be delivered; the dispatcher owns retries.
func QueueEmail(to, subject, body string) {
	if to == "" {
		return
	}
	entry := models.EmailOutbox{
		To:            to,
		Subject:       subject,
		Body:          body,
		Status:        models.OutboxPending,
		NextAttemptAt: time.Now(),
	}
	if err := storage.DB.Create(&entry).Error; err != nil {
		log.Printf("outbox: failed to enqueue email to %s: %v", to, err)
	}
}

// OutboxDispatcher drains pending emails on an interval with exponential
// backoff per row.
type OutboxDispatcher struct {
	mailer   *Mailer
	interval time.Duration
}

func NewOutboxDispatcher(mailer *Mailer) *OutboxDispatcher {
	return &OutboxDispatcher{mailer: mailer, interval: 15 * time.Second}
}

func (d *OutboxDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.drain()
		}
	}
}

func (d *OutboxDispatcher) drain() {
	var due []models.EmailOutbox
	err := storage.DB.
		Where("status = ? AND next_attempt_at <= ?", models.OutboxPending, time.Now()).
		Order("next_attempt_at").
		Limit(20).
		Find(&due).Error
	if err != nil {
		log.Printf("outbox: query failed: %v", err)
		return
	}

	for i := range due {
		d.deliver(&due[i])
	}
}

func (d *OutboxDispatcher) deliver(entry *models.EmailOutbox) {
	entry.Attempts++

	if sendErr := d.mailer.Send(entry.To, entry.Subject, entry.Body); sendErr != nil {
		entry.LastError = sendErr.Error()
		if entry.Attempts >= outboxMaxAttempts {
			entry.Status = models.OutboxFailed
			log.Printf("outbox: giving up on email %d to %s after %d attempts: %v", entry.ID, entry.To, entry.Attempts, sendErr)
		} else {
			entry.NextAttemptAt = NextAttempt(time.Now(), entry.Attempts)
		}
	} else {
		now := time.Now()
		entry.Status = models.OutboxSent
		entry.SentAt = &now
		entry.LastError = ""
	}

	if err := storage.DB.Save(entry).Error; err != nil {
		log.Printf("outbox: failed to update email %d: %v", entry.ID, err)
	}
}

// NextAttempt doubles the delay per attempt: 1m, 2m, 4m, 8m.
func NextAttempt(now time.Time, attempts int) time.Time {
	delay := outboxBaseDelay
	for i := 1; i < attempts; i++ {
		delay *= 2
	}
	return now.Add(delay)
}
