package ecs

import (
	"iter"
	"reflect"
)

type eventBuffer interface {
	update()
	pending() int
}

// Events buffers values of one event type. An event stays readable for
// the frame it was sent in and the following one, so a reader that runs
// before the writer in a frame still sees it exactly once.
type Events[T any] struct {
	buf []T
	// seq of buf[0]
	start uint64
	// index in buf where the current frame's events begin
	frame int
}

// EventsFor returns the buffer for T, creating it on first use.
func EventsFor[T any](s *Storage) *Events[T] {
	t := reflect.TypeFor[T]()
	if b, ok := s.events[t]; ok {
		return b.(*Events[T])
	}
	e := &Events[T]{}
	s.events[t] = e
	return e
}

func (e *Events[T]) Send(ev T) {
	e.buf = append(e.buf, ev)
}

// update retires the previous frame's events.
func (e *Events[T]) update() {
	n := copy(e.buf, e.buf[e.frame:])
	clear(e.buf[n:])
	e.buf = e.buf[:n]
	e.start += uint64(e.frame)
	e.frame = n
}

func (e *Events[T]) pending() int { return len(e.buf) }

func (e *Events[T]) end() uint64 { return e.start + uint64(len(e.buf)) }

// EventWriter is a system field that sends events of type T.
type EventWriter[T any] struct {
	events *Events[T]
}

func (w *EventWriter[T]) Init(s *Storage) { w.events = EventsFor[T](s) }

func (w *EventWriter[T]) Send(ev T) { w.events.Send(ev) }

// EventReader is a system field that reads events of type T. Each reader
// keeps its own cursor and never sees an event twice.
type EventReader[T any] struct {
	events *Events[T]
	cursor uint64
}

// NewEventReader returns a reader positioned at the oldest retained event.
func NewEventReader[T any](s *Storage) *EventReader[T] {
	r := &EventReader[T]{}
	r.Init(s)
	return r
}

func (r *EventReader[T]) Init(s *Storage) {
	r.events = EventsFor[T](s)
	r.cursor = r.events.start
}

// Read yields the events this reader has not seen yet and marks them read.
func (r *EventReader[T]) Read() iter.Seq[T] {
	return func(yield func(T) bool) {
		e := r.events
		r.cursor = max(r.cursor, e.start)
		for r.cursor < e.end() {
			ev := e.buf[r.cursor-e.start]
			r.cursor++
			if !yield(ev) {
				return
			}
		}
	}
}

// Len is the number of unread events.
func (r *EventReader[T]) Len() int {
	return int(r.events.end() - max(r.cursor, r.events.start))
}

// Clear marks everything read.
func (r *EventReader[T]) Clear() { r.cursor = r.events.end() }

func (s *Storage) updateEvents() {
	for _, b := range s.events {
		b.update()
	}
}
