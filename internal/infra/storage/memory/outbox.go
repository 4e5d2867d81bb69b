package memory

import (
	"context"
	"sync"
	"time"

	appoutbox "homestay/internal/app/outbox"
	infraoutbox "homestay/internal/infra/outbox"
)

type outboxEntry struct {
	record      appoutbox.EventRecord
	attempts    int
	nextAttempt time.Time
	claimed     bool
}

// Outbox keeps event records in memory until a worker drains them.
// Flush is a no-op boundary marker; publication happens asynchronously.
type Outbox struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*outboxEntry
}

func NewOutbox() *Outbox {
	return &Outbox{entries: make(map[string]*outboxEntry)}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.entries[record.ID]; ok {
		return nil
	}
	o.entries[record.ID] = &outboxEntry{record: record, nextAttempt: time.Now().UTC()}
	o.order = append(o.order, record.ID)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	return nil
}

// Claim hands out the oldest due record, nil when nothing is ready.
func (o *Outbox) Claim(ctx context.Context, workerID string) (*infraoutbox.PendingEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now().UTC()
	for _, id := range o.order {
		entry, ok := o.entries[id]
		if !ok || entry.claimed || entry.nextAttempt.After(now) {
			continue
		}
		entry.claimed = true
		return &infraoutbox.PendingEvent{Record: entry.record, Attempts: entry.attempts}, nil
	}
	return nil, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.entries, id)
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, next time.Time, reason string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	entry, ok := o.entries[id]
	if !ok {
		return nil
	}
	entry.claimed = false
	entry.attempts++
	entry.nextAttempt = next
	return nil
}

// Pending reports the number of records not yet sent.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}

var (
	_ appoutbox.Outbox  = (*Outbox)(nil)
	_ infraoutbox.Store = (*Outbox)(nil)
)
