package banner

import "sync"

// Binding is a shared boolean cell carrying presentation intent. The
// embedding caller owns it and sets it true to (re)present; the
// controller reads it and sets it false on dismiss.
//
// Every Set notifies subscribers, including writes that do not change
// the stored value. Re-presenting an already-visible banner is a fresh
// activation and must restart its countdown, so deduplicating writes
// here would be wrong.
//
// Delivery is ordered: subscribers are notified in subscription order,
// and a Set issued from inside a notification is queued and delivered
// after the current pass completes. Every subscriber therefore observes
// the same write sequence, ending on the stored value.
type Binding struct {
	mu        sync.Mutex
	value     bool
	subs      []subscriber
	next      int
	pending   []bool
	notifying bool
}

type subscriber struct {
	id int
	fn func(bool)
}

// NewBinding creates a binding with the given initial value. Creation
// does not notify.
func NewBinding(initial bool) *Binding {
	return &Binding{value: initial}
}

// Get returns the current value.
func (b *Binding) Get() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Set stores the value and notifies all subscribers synchronously, in
// the goroutine of the write that started the delivery pass. Reentrant
// writes are drained FIFO once the in-flight value has reached every
// subscriber.
func (b *Binding) Set(v bool) {
	b.mu.Lock()
	b.value = v
	b.pending = append(b.pending, v)
	if b.notifying {
		// The running pass drains this write in order.
		b.mu.Unlock()
		return
	}
	b.notifying = true
	for len(b.pending) > 0 {
		val := b.pending[0]
		b.pending = b.pending[1:]
		subs := make([]func(bool), len(b.subs))
		for i, s := range b.subs {
			subs[i] = s.fn
		}
		b.mu.Unlock()

		for _, fn := range subs {
			fn(val)
		}

		b.mu.Lock()
	}
	b.notifying = false
	b.mu.Unlock()
}

// Subscribe registers a callback invoked on every Set. It returns an
// unsubscribe function; calling it more than once is harmless.
func (b *Binding) Subscribe(fn func(bool)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				break
			}
		}
		b.mu.Unlock()
	}
}
