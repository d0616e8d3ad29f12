package shop

import "log"

// waitingQueue is the ordered, capacity-bounded collection of customers that
// are not yet being served. The head leaves first; evictions happen at the
// tail. The queue owns the QueuePosition field of its customers and keeps it
// equal to each customer's index at all times.
type waitingQueue struct {
	capacity  int
	customers []*Customer
}

func newWaitingQueue(capacity int) *waitingQueue {
	if capacity <= 0 {
		log.Panic("waiting queue capacity must be positive")
	}

	return &waitingQueue{capacity: capacity}
}

func (q *waitingQueue) Size() int {
	return len(q.customers)
}

func (q *waitingQueue) Capacity() int {
	return q.capacity
}

func (q *waitingQueue) CanEnqueue() bool {
	return len(q.customers) < q.capacity
}

// Enqueue appends a customer at the tail. Callers must check CanEnqueue
// first; overflowing the queue is a programming error.
func (q *waitingQueue) Enqueue(c *Customer) {
	if !q.CanEnqueue() {
		log.Panic("waiting queue overflow")
	}

	c.QueuePosition = len(q.customers)
	q.customers = append(q.customers, c)
}

// DequeueHead removes and returns the customer that has waited the longest,
// or nil if the queue is empty. Remaining customers are reindexed.
func (q *waitingQueue) DequeueHead() *Customer {
	if len(q.customers) == 0 {
		return nil
	}

	head := q.customers[0]
	q.customers = q.customers[1:]
	head.QueuePosition = PositionNone
	q.reindex()

	return head
}

// SetCapacity changes the number of chairs. When the queue no longer fits,
// the excess is cut from the tail, most recently arrived first; the evicted
// customers are returned in the order they were removed.
func (q *waitingQueue) SetCapacity(capacity int) []*Customer {
	if capacity <= 0 {
		log.Panic("waiting queue capacity must be positive")
	}

	q.capacity = capacity

	var evicted []*Customer
	for len(q.customers) > q.capacity {
		last := q.customers[len(q.customers)-1]
		q.customers = q.customers[:len(q.customers)-1]
		last.QueuePosition = PositionNone
		evicted = append(evicted, last)
	}

	q.reindex()

	return evicted
}

// Customers exposes the backing slice in queue order. The engine copies it
// before anything leaves the lock.
func (q *waitingQueue) Customers() []*Customer {
	return q.customers
}

func (q *waitingQueue) reindex() {
	for i, c := range q.customers {
		c.QueuePosition = i
	}
}
