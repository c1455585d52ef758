package reactive

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/delaneyj/signalflow/internal/syncutils"
)

// mailbox decouples a producer callback from a channel reader. put never blocks;
// a goroutine forwards buffered values to out until the lifetime closes.
type mailbox[T any] struct {
	mu    syncutils.Mutex
	queue *linkedlistqueue.Queue
	held  bool
	early []T
	wake  chan struct{}
	out   chan T
}

func newMailbox[T any](lt *Lifetime) *mailbox[T] {
	mb := &mailbox[T]{
		queue: linkedlistqueue.New(),
		wake:  make(chan struct{}, 1),
		out:   make(chan T),
	}
	go mb.run(lt.Done())
	return mb
}

func (mb *mailbox[T]) put(v T) {
	mb.mu.Lock()
	if mb.held {
		mb.early = append(mb.early, v)
		mb.mu.Unlock()
		return
	}
	mb.queue.Enqueue(v)
	mb.mu.Unlock()
	mb.signal()
}

// hold parks puts until release provides the head value.
func (mb *mailbox[T]) hold() {
	mb.mu.Lock()
	mb.held = true
	mb.mu.Unlock()
}

func (mb *mailbox[T]) release(head T) {
	mb.mu.Lock()
	mb.queue.Enqueue(head)
	for _, v := range mb.early {
		mb.queue.Enqueue(v)
	}
	mb.early = nil
	mb.held = false
	mb.mu.Unlock()
	mb.signal()
}

func (mb *mailbox[T]) signal() {
	select {
	case mb.wake <- struct{}{}:
	default:
	}
}

func (mb *mailbox[T]) next() (T, bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	item, ok := mb.queue.Dequeue()
	if !ok {
		var zero T
		return zero, false
	}
	v, _ := item.(T)
	return v, true
}

func (mb *mailbox[T]) run(done <-chan struct{}) {
	defer close(mb.out)
	for {
		v, ok := mb.next()
		if !ok {
			select {
			case <-mb.wake:
				continue
			case <-done:
				return
			}
		}
		select {
		case mb.out <- v:
		case <-done:
			return
		}
	}
}
