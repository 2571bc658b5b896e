package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single entry in the conversation log
type Turn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is an in-memory, process-lifetime conversation log. It is constructed
// once in main and injected wherever turns are read or written; the mutex keeps
// interleaved request handlers from corrupting the slice.
type Log struct {
	mu    sync.Mutex
	turns []Turn
}

// NewLog creates an empty conversation log
func NewLog() *Log {
	return &Log{}
}

// Append records a turn and returns it
func (l *Log) Append(role, content string) Turn {
	turn := Turn{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	l.mu.Lock()
	l.turns = append(l.turns, turn)
	l.mu.Unlock()

	return turn
}

// History returns a copy of all turns in order
func (l *Log) History() []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Recent returns a copy of the last n turns in order
func (l *Log) Recent(n int) []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || len(l.turns) == 0 {
		return []Turn{}
	}
	start := len(l.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(l.turns)-start)
	copy(out, l.turns[start:])
	return out
}

// Clear removes all turns
func (l *Log) Clear() {
	l.mu.Lock()
	l.turns = nil
	l.mu.Unlock()
}

// Len returns the number of turns
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}
