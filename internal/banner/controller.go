package banner

import (
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/toastui/internal/theme"
)

// Controller owns the show/hide decision and auto-dismiss timing for one
// banner. It observes an activation Binding: every external write
// refreshes the debounce token, and activations arm a deferred dismissal
// that fires only if no newer activation superseded it. Rapid
// re-triggering therefore resets the countdown instead of letting an
// older timer close the refreshed banner.
type Controller struct {
	cfg      Config
	active   *Binding
	resolver Resolver
	sched    Scheduler
	logger   *slog.Logger

	mu      sync.Mutex
	token   ulid.ULID // identifies the most recent activation
	content Size

	unsubscribe func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the wall-clock scheduler. Tests use this to
// drive deferred checks deterministically.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithLogger sets the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithResolver replaces the gesture resolver, e.g. to adjust the minimum
// drag distance for cell-based coordinates.
func WithResolver(r Resolver) Option {
	return func(c *Controller) { c.resolver = r }
}

// NewController creates a controller bound to the given activation cell.
// If the binding is already true the countdown is not armed until the
// next write; presentation is driven by observed changes only.
func NewController(cfg Config, active *Binding, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		active: active,
		sched:  wallScheduler{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.unsubscribe = active.Subscribe(c.handleActivation)
	return c
}

// Close detaches the controller from its binding. Already-scheduled
// deferred checks become permanent no-ops once the banner is inactive.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Active reports the current presentation intent.
func (c *Controller) Active() bool {
	return c.active.Get()
}

// handleActivation runs on every write to the binding, by any cause:
// caller code presenting or the controller's own dismiss.
func (c *Controller) handleActivation(active bool) {
	c.mu.Lock()
	c.token = ulid.Make()
	if !active {
		// Nothing to schedule while hidden.
		c.mu.Unlock()
		return
	}
	if c.cfg.Duration <= 0 {
		// Non-positive duration means never auto-dismiss.
		c.mu.Unlock()
		c.logger.Debug("banner presented without auto-dismiss", "edge", c.cfg.Edge)
		return
	}
	captured := c.token
	c.mu.Unlock()

	c.logger.Debug("banner presented", "edge", c.cfg.Edge, "duration", c.cfg.Duration)
	c.sched.AfterFunc(c.cfg.Duration, func() {
		c.expire(captured)
	})
}

// expire is the deferred check. It dismisses only when its captured
// token still identifies the most recent activation.
func (c *Controller) expire(captured ulid.ULID) {
	c.mu.Lock()
	stale := captured != c.token
	c.mu.Unlock()

	if stale {
		c.logger.Debug("stale auto-dismiss ignored")
		return
	}
	c.Dismiss()
}

// Dismiss hides the banner. Calling it while already hidden has no
// observable effect.
func (c *Controller) Dismiss() {
	if !c.active.Get() {
		return
	}
	c.logger.Debug("banner dismissed")
	c.active.Set(false)
}

// HandleDrag feeds one completed drag gesture to the resolver and
// dismisses when it swipes toward the anchored edge.
func (c *Controller) HandleDrag(g DragGesture) {
	if c.resolver.ShouldDismiss(g, c.cfg.Edge) {
		c.Dismiss()
	}
}

// SetContentSize records the last measured size of the rendered content.
// The rendering layer calls this whenever the measured size changes.
func (c *Controller) SetContentSize(s Size) {
	c.mu.Lock()
	c.content = s
	c.mu.Unlock()
}

// ContentSize returns the last measured content size.
func (c *Controller) ContentSize() Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

// Offset returns the banner's current vertical rest offset.
func (c *Controller) Offset() float64 {
	return VerticalOffset(c.active.Get(), c.cfg.Edge)
}

// Radius returns the effective corner radius for the measured content.
func (c *Controller) Radius() float64 {
	return CornerRadius(c.cfg.CornerRadius, c.ContentSize().Height)
}

// BackgroundColor returns the effective background for the given scheme.
func (c *Controller) BackgroundColor(scheme theme.Scheme, palette theme.Palette) string {
	return Background(c.cfg.Background, scheme, palette)
}
