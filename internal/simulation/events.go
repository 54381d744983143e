package simulation

import (
	"container/heap"

	"github.com/napolitain/buildorder/internal/order"
)

// EventType represents the type of simulation event
type EventType int

const (
	EventComplete EventType = iota
	EventStart
)

// String returns a string representation of the event type
func (et EventType) String() string {
	switch et {
	case EventComplete:
		return "Complete"
	case EventStart:
		return "Start"
	default:
		return "Unknown"
	}
}

// Priority returns the processing priority for this event type
// Lower priority = processed first when events have same time
func (et EventType) Priority() int {
	switch et {
	case EventComplete:
		return 0 // First: free queue slots, raise caps, spawn entities
	case EventStart:
		return 1 // Second: spend resources with the updated state
	default:
		return 99
	}
}

// Event represents a simulation event
type Event struct {
	Time     order.Second
	Type     EventType
	Action   order.ActionID
	Sequence int64 // Insertion order within the queue, for stable sorting
}

// eventHeap implements heap.Interface for min-heap of Events
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	if h[i].Type.Priority() != h[j].Type.Priority() {
		return h[i].Type.Priority() < h[j].Type.Priority()
	}
	return h[i].Sequence < h[j].Sequence
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// EventQueue is a priority queue for events using a min-heap
// Events are sorted by (Time, Priority, Sequence) for deterministic ordering
type EventQueue struct {
	h   eventHeap
	seq int64
}

// NewEventQueue creates a new empty event queue
func NewEventQueue() *EventQueue {
	q := &EventQueue{
		h: make(eventHeap, 0),
	}
	heap.Init(&q.h)
	return q
}

// Push adds an event to the queue with automatic sequence assignment
func (q *EventQueue) Push(e Event) {
	q.seq++
	e.Sequence = q.seq
	heap.Push(&q.h, e)
}

// Pop removes and returns the minimum event
func (q *EventQueue) Pop() Event {
	if len(q.h) == 0 {
		return Event{Time: -1}
	}
	return heap.Pop(&q.h).(Event)
}

// Peek returns the minimum event without removing it
func (q *EventQueue) Peek() Event {
	if len(q.h) == 0 {
		return Event{Time: -1}
	}
	return q.h[0]
}

// Empty returns true if the queue has no events
func (q *EventQueue) Empty() bool {
	return len(q.h) == 0
}

// Len returns the number of events in the queue
func (q *EventQueue) Len() int {
	return len(q.h)
}

// PopDue removes and returns every event scheduled at or before t, in
// processing order
func (q *EventQueue) PopDue(t order.Second) []Event {
	var batch []Event
	for !q.Empty() && q.Peek().Time <= t {
		batch = append(batch, q.Pop())
	}
	return batch
}
