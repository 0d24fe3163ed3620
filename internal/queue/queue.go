// Package queue sequences multiple banner presentations through a single
// activation binding, one at a time in arrival order.
package queue

import (
	"container/list"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/toastui/internal/banner"
)

// Item is one queued presentation: a banner configuration paired with
// the content to render inside it.
type Item struct {
	ID         string
	Config     banner.Config
	Content    string
	EnqueuedAt time.Time
}

// ShowCallback is invoked when an item becomes the presented banner.
type ShowCallback func(Item)

// Queue owns an activation binding and presents queued items through it
// in sequence. When the presented banner deactivates, for any reason
// (auto-dismiss, gesture, or programmatic dismissal), the next pending
// item is presented automatically.
type Queue struct {
	active *banner.Binding
	logger *slog.Logger
	onShow ShowCallback

	ctrlOpts []banner.Option

	mu      sync.Mutex
	pending *list.List               // of Item
	index   map[string]*list.Element // fast removal by ID
	current *Item
	ctrl    *banner.Controller

	unsubscribe func()
}

// Option configures a Queue.
type Option func(*Queue)

// WithLogger sets the queue's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) { q.logger = logger }
}

// WithShowCallback sets the callback invoked when an item is presented.
func WithShowCallback(cb ShowCallback) Option {
	return func(q *Queue) { q.onShow = cb }
}

// WithControllerOptions passes options through to every controller the
// queue creates, e.g. a test scheduler or a cell-scaled gesture resolver.
func WithControllerOptions(opts ...banner.Option) Option {
	return func(q *Queue) { q.ctrlOpts = opts }
}

// New creates an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		active:  banner.NewBinding(false),
		logger:  slog.Default(),
		pending: list.New(),
		index:   make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.unsubscribe = q.active.Subscribe(q.handleActivation)
	return q
}

// Close detaches the queue from its binding and drops pending items.
func (q *Queue) Close() {
	if q.unsubscribe != nil {
		q.unsubscribe()
	}
	q.mu.Lock()
	q.pending.Init()
	q.index = make(map[string]*list.Element)
	if q.ctrl != nil {
		q.ctrl.Close()
		q.ctrl = nil
	}
	q.current = nil
	q.mu.Unlock()
}

// Binding returns the activation binding the rendering layer observes.
func (q *Queue) Binding() *banner.Binding {
	return q.active
}

// Controller returns the controller for the currently presented item,
// or nil while the queue is idle.
func (q *Queue) Controller() *banner.Controller {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ctrl
}

// Current returns the presented item, if any.
func (q *Queue) Current() (Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return Item{}, false
	}
	return *q.current, true
}

// Len returns the number of pending items, excluding the presented one.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Len()
}

// Enqueue adds a presentation and returns its ID. If the queue is idle
// the item is presented immediately.
func (q *Queue) Enqueue(cfg banner.Config, content string) string {
	item := Item{
		ID:         ulid.Make().String(),
		Config:     cfg,
		Content:    content,
		EnqueuedAt: time.Now(),
	}

	q.mu.Lock()
	idle := q.current == nil
	if !idle {
		elem := q.pending.PushBack(item)
		q.index[item.ID] = elem
	}
	q.mu.Unlock()

	if idle {
		q.present(item)
	} else {
		q.logger.Debug("queued banner", "id", item.ID, "pending", q.Len())
	}
	return item.ID
}

// Remove drops a pending item by ID. If the item is currently presented
// it is dismissed instead, which advances the queue. Returns false when
// the ID is unknown.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	if elem, ok := q.index[id]; ok {
		q.pending.Remove(elem)
		delete(q.index, id)
		q.mu.Unlock()
		q.logger.Debug("removed queued banner", "id", id)
		return true
	}
	isCurrent := q.current != nil && q.current.ID == id
	ctrl := q.ctrl
	q.mu.Unlock()

	if isCurrent && ctrl != nil {
		ctrl.Dismiss()
		return true
	}
	return false
}

// Dismiss hides the presented banner, advancing to the next pending
// item. No-op while idle.
func (q *Queue) Dismiss() {
	q.mu.Lock()
	ctrl := q.ctrl
	q.mu.Unlock()
	if ctrl != nil {
		ctrl.Dismiss()
	}
}

// Clear drops all pending items and dismisses the presented banner.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.pending.Init()
	q.index = make(map[string]*list.Element)
	ctrl := q.ctrl
	q.mu.Unlock()

	if ctrl != nil {
		ctrl.Dismiss()
	}
}

// present makes item the presented banner and activates the binding.
func (q *Queue) present(item Item) {
	q.mu.Lock()
	if q.ctrl != nil {
		q.ctrl.Close()
	}
	q.current = &item
	q.ctrl = banner.NewController(item.Config, q.active, q.ctrlOpts...)
	q.mu.Unlock()

	q.logger.Debug("presenting banner", "id", item.ID, "edge", item.Config.Edge)
	if q.onShow != nil {
		q.onShow(item)
	}
	q.active.Set(true)
}

// handleActivation advances the queue when the presented banner hides.
func (q *Queue) handleActivation(active bool) {
	if active {
		return
	}

	q.mu.Lock()
	if q.current == nil {
		q.mu.Unlock()
		return
	}
	q.current = nil
	elem := q.pending.Front()
	if elem == nil {
		if q.ctrl != nil {
			q.ctrl.Close()
			q.ctrl = nil
		}
		q.mu.Unlock()
		return
	}
	next := q.pending.Remove(elem).(Item)
	delete(q.index, next.ID)
	q.mu.Unlock()

	q.present(next)
}
