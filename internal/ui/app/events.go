package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	timerview "stillpoint/internal/ui/views/timer"
)

// eventQueue carries timer hook messages to the program. push never blocks:
// consecutive timer states collapse into the newest one, while unlock and
// completion notices are always kept in order.
type eventQueue struct {
	mu    sync.Mutex
	items []tea.Msg
	ready chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{ready: make(chan struct{}, 1)}
}

func (q *eventQueue) push(msg tea.Msg) {
	q.mu.Lock()
	if _, isState := msg.(timerview.StateMsg); isState && len(q.items) > 0 {
		if _, lastIsState := q.items[len(q.items)-1].(timerview.StateMsg); lastIsState {
			q.items[len(q.items)-1] = msg
			q.mu.Unlock()
			return
		}
	}
	q.items = append(q.items, msg)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// next blocks until a message is queued.
func (q *eventQueue) next() tea.Msg {
	for {
		if msg, ok := q.tryNext(); ok {
			return msg
		}
		<-q.ready
	}
}

func (q *eventQueue) tryNext() (tea.Msg, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	msg := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return msg, true
}

func (q *eventQueue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
