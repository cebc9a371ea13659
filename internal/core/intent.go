package core

// Intent is a semantic request from the player, abstracted from key codes.
// The engine consumes intents without knowing which device produced them.
type Intent int

const (
	IntentNone      Intent = iota
	IntentMoveLeft         // Left arrow, A
	IntentMoveRight        // Right arrow, D
	IntentReset            // Space - start a new round after game over
	IntentPause            // P - platform-level pause, never reaches the engine
	IntentQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "None"
	case IntentMoveLeft:
		return "MoveLeft"
	case IntentMoveRight:
		return "MoveRight"
	case IntentReset:
		return "Reset"
	case IntentPause:
		return "Pause"
	case IntentQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// DefaultQueueSize bounds how many intents are buffered between ticks.
const DefaultQueueSize = 32

// IntentQueue is a bounded FIFO of intents collected between two ticks.
// Key events push into it; the tick handler drains it in arrival order.
type IntentQueue struct {
	items []Intent
	limit int
}

// NewIntentQueue creates a queue holding at most limit intents.
// A non-positive limit falls back to DefaultQueueSize.
func NewIntentQueue(limit int) *IntentQueue {
	if limit <= 0 {
		limit = DefaultQueueSize
	}
	return &IntentQueue{
		items: make([]Intent, 0, limit),
		limit: limit,
	}
}

// Push appends an intent. IntentNone is ignored, and once the queue is full
// further intents are dropped (held keys auto-repeat, nothing is lost).
// Returns true if the intent was queued.
func (q *IntentQueue) Push(i Intent) bool {
	if i == IntentNone || len(q.items) >= q.limit {
		return false
	}
	q.items = append(q.items, i)
	return true
}

// Drain returns all queued intents in order and empties the queue.
func (q *IntentQueue) Drain() []Intent {
	if len(q.items) == 0 {
		return nil
	}
	out := make([]Intent, len(q.items))
	copy(out, q.items)
	q.items = q.items[:0]
	return out
}

// Len returns the number of queued intents.
func (q *IntentQueue) Len() int {
	return len(q.items)
}

// Clear drops all queued intents.
func (q *IntentQueue) Clear() {
	q.items = q.items[:0]
}
