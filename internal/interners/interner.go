package interners

import (
	"sync"

	"logpulse/internal/models"
)

//go:generate mockgen -source=interner.go -destination=./mocks/interner_mock.go -package=mocks

// Interner deduplicates message text into stable integer handles so the rest
// of the pipeline moves fixed-size records instead of strings. Identical text
// always yields the same handle; a handle resolves back to its text for the
// process lifetime.
//
// Implementations must be safe for concurrent use: the producer interns while
// the consumer resolves. The interface permits substituting a capacity-bounded
// table later without touching callers.
type Interner interface {
	// Intern returns the handle for text, issuing a new one on first sight.
	Intern(text string) models.Handle
	// Resolve returns the text behind a handle. ok is false only for handles
	// this interner never issued.
	Resolve(h models.Handle) (string, bool)
	// Len returns the number of distinct texts interned so far.
	Len() int
}

// messageInterner is the append-only implementation: one mutex over a
// text→handle map and a handle→text slice. Handles are slice indices. The
// lock is held only for the lookup-or-insert, never across I/O.
type messageInterner struct {
	mu     sync.Mutex
	byText map[string]models.Handle
	texts  []string
}

// NewMessageInterner creates an empty interner.
func NewMessageInterner() Interner {
	return &messageInterner{
		byText: make(map[string]models.Handle),
	}
}

func (m *messageInterner) Intern(text string) models.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.byText[text]; ok {
		return h
	}

	h := models.Handle(len(m.texts))
	m.byText[text] = h
	m.texts = append(m.texts, text)
	tableSize.Set(float64(len(m.texts)))
	return h
}

func (m *messageInterner) Resolve(h models.Handle) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if int(h) >= len(m.texts) {
		return "", false
	}
	return m.texts[h], true
}

func (m *messageInterner) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.texts)
}
