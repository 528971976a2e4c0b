package notifymock

import (
	"sync"

	"po-workflow-backend/internal/notify"
)

var _ notify.Notifier = (*Notifier)(nil)

// Notifier records published events synchronously so tests can assert on
// them without sleeping.
type Notifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func New() *Notifier { return &Notifier{} }

func (m *Notifier) Publish(ev notify.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

// Events returns a copy of everything published so far.
func (m *Notifier) Events() []notify.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Event(nil), m.events...)
}

func (m *Notifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
