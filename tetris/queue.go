package tetris

import "math/rand/v2"

// Queue is the FIFO piece supply. It refills with a "bag" policy: each
// refill appends one shuffled copy of all seven types.
type Queue struct {
	items []Type
	min   int
	rng   *rand.Rand
}

// NewQueue returns an empty queue holding at least reserve pieces after
// EnsureMinimum. A nil rng shuffles with the global source.
func NewQueue(reserve int, rng *rand.Rand) *Queue {
	return &Queue{
		items: make([]Type, 0, reserve+len(Types())),
		min:   reserve,
		rng:   rng,
	}
}

// EnsureMinimum appends shuffled bags until Len() >= the minimum reserve.
func (q *Queue) EnsureMinimum() {
	for len(q.items) < q.min {
		q.items = append(q.items, q.bag()...)
	}
}

func (q *Queue) bag() []Type {
	bag := Types()
	shuffle := rand.Shuffle
	if q.rng != nil {
		shuffle = q.rng.Shuffle
	}
	shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	return bag
}

// Dequeue removes and returns the oldest entry. Callers keep the queue
// topped up with EnsureMinimum; dequeuing from an empty queue panics.
func (q *Queue) Dequeue() Type {
	if len(q.items) == 0 {
		panic("tetris: Dequeue on an empty queue")
	}

	t := q.items[0]
	q.items = q.items[1:]
	return t
}

func (q *Queue) Len() int { return len(q.items) }

// Peek returns up to n upcoming types without consuming them.
func (q *Queue) Peek(n int) []Type {
	n = max(0, min(n, len(q.items)))
	return append([]Type(nil), q.items[:n]...)
}

// Reset drops every queued piece.
func (q *Queue) Reset() {
	q.items = q.items[:0]
}
