// Package tui provides the BubbleTea-based banner overlay demo.
package tui

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/toastui/internal/audio"
	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/queue"
	"github.com/jmylchreest/toastui/internal/theme"
)

// animInterval is the frame interval for the slide transition.
const animInterval = 40 * time.Millisecond

// Messages flowing through the demo model.
type (
	activationMsg bool
	showMsg       queue.Item
	animTickMsg   time.Time

	// ConfigReloadedMsg carries a hot-reloaded configuration into the
	// running program (sent by the config watcher via Program.Send).
	ConfigReloadedMsg struct {
		Config *config.Config
	}
)

// Model is the demo TUI model. It owns the presentation queue, feeds
// drag gestures to the presented banner's controller, reports measured
// content sizes, and animates the slide in/out of the overlay.
type Model struct {
	cfg       *config.Config
	q         *queue.Queue
	chime     *audio.Chime
	templates *layout.Loader
	logger    *slog.Logger

	scheme  theme.Scheme
	palette theme.Palette

	width  int
	height int
	ready  bool

	// Presented banner. Kept while sliding out so the exit transition
	// stays visible.
	item    *queue.Item
	visible bool

	// Slide animation state: offset is the current deviation from the
	// rest position in rows, target where it is heading.
	offset    float64
	target    float64
	animating bool

	dragging   bool
	dragStartX int
	dragStartY int

	lastSize banner.Size

	presetNames []string
	presetIdx   int
	presetByID  map[string]string // item ID -> preset name
	counter     int

	keys     KeyMap
	help     help.Model
	showHelp bool
	status   string

	activationCh chan bool
	showCh       chan queue.Item
	unsubscribe  func()
}

// New creates the demo model from the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Model{
		cfg:          cfg,
		chime:        audio.NewChime(logger),
		templates:    layout.NewLoader(config.TemplatesDir()),
		logger:       logger,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		presetByID:   make(map[string]string),
		activationCh: make(chan bool, 16),
		showCh:       make(chan queue.Item, 16),
	}
	m.applyConfig(cfg)

	m.q = queue.New(
		queue.WithLogger(logger),
		queue.WithControllerOptions(
			banner.WithResolver(banner.Resolver{MinDistance: cfg.Demo.MinDragCells}),
			banner.WithLogger(logger),
		),
		queue.WithShowCallback(func(item queue.Item) {
			m.showCh <- item
		}),
	)
	m.unsubscribe = m.q.Binding().Subscribe(func(v bool) {
		m.activationCh <- v
	})

	return m
}

// Close detaches the model from the activation binding and shuts the
// queue down. After Close no further writes reach the model's channels.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.q.Close()
}

// applyConfig refreshes config-derived state: resolved scheme, chime
// volume, and the sorted preset cycle.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.scheme = theme.Resolve(theme.Scheme(cfg.Theme.ColorScheme), nil)
	m.palette = theme.DefaultPalette()
	m.chime.SetVolume(float64(cfg.Audio.Volume) / 100)

	names := make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	m.presetNames = names
	m.presetIdx = 0
	for i, name := range names {
		if name == cfg.Demo.Preset {
			m.presetIdx = i
			break
		}
	}
}

// Queue exposes the presentation queue, e.g. for pre-seeding the demo.
func (m *Model) Queue() *queue.Queue {
	return m.q
}

// Init starts the binding and show watchers.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.watchActivation, m.watchShow)
}

func (m *Model) watchActivation() tea.Msg {
	return activationMsg(<-m.activationCh)
}

func (m *Model) watchShow() tea.Msg {
	return showMsg(<-m.showCh)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		return m, nil

	case activationMsg:
		m.visible = bool(msg)
		cmd := m.retarget()
		return m, tea.Batch(m.watchActivation, cmd)

	case showMsg:
		item := queue.Item(msg)
		m.item = &item
		m.reportContentSize()
		// Start parked off-screen past the anchored edge, then slide in.
		m.offset = clampOffset(banner.VerticalOffset(false, item.Config.Edge), m.bannerHeight()+2)
		cmds := []tea.Cmd{m.watchShow, m.retarget()}
		if path := m.chimeFor(item.ID); path != "" {
			cmds = append(cmds, m.playChime(path))
		}
		return m, tea.Batch(cmds...)

	case animTickMsg:
		return m, m.stepAnimation()

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		m.templates.Invalidate()
		m.status = "configuration reloaded"
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Trigger):
		m.trigger()
		return m, nil

	case key.Matches(msg, m.keys.Retrigger):
		if m.visible {
			// A fresh external activation restarts the countdown.
			m.q.Binding().Set(true)
			m.status = "countdown reset"
		} else {
			m.trigger()
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.q.Dismiss()
		return m, nil

	case key.Matches(msg, m.keys.Preset):
		if len(m.presetNames) > 0 {
			m.presetIdx = (m.presetIdx + 1) % len(m.presetNames)
			m.status = "preset: " + m.currentPreset()
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.q.Clear()
		m.status = "queue cleared"
		return m, nil
	}

	return m, nil
}

// handleMouse tracks left-button drags and resolves the completed
// gesture against the presented banner.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.dragStartX = msg.X
			m.dragStartY = msg.Y
		}

	case tea.MouseActionRelease:
		if !m.dragging {
			break
		}
		m.dragging = false
		g := banner.DragGesture{
			DX: float64(msg.X - m.dragStartX),
			DY: float64(msg.Y - m.dragStartY),
		}
		if ctrl := m.q.Controller(); ctrl != nil {
			ctrl.HandleDrag(g)
		}
	}
	return m, nil
}

// trigger enqueues a banner for the currently selected preset.
func (m *Model) trigger() {
	name := m.currentPreset()
	cfg, err := m.cfg.Preset(name)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.counter++
	content, err := m.templates.Render(m.cfg.TemplateFor(name), layout.Data{
		Preset:   name,
		Sequence: m.counter,
		FiredAt:  time.Now(),
	})
	if err != nil {
		m.logger.Warn("content template failed", "preset", name, "error", err)
		content = fmt.Sprintf("%s notification #%d", name, m.counter)
	}
	id := m.q.Enqueue(cfg, content)
	m.presetByID[id] = name
}

func (m *Model) currentPreset() string {
	if len(m.presetNames) == 0 {
		return m.cfg.Demo.Preset
	}
	return m.presetNames[m.presetIdx]
}

func (m *Model) chimeFor(itemID string) string {
	name, ok := m.presetByID[itemID]
	if !ok {
		name = m.cfg.Demo.Preset
	}
	return m.cfg.ChimeFor(name)
}

func (m *Model) playChime(path string) tea.Cmd {
	return func() tea.Msg {
		if err := m.chime.Play(path); err != nil {
			m.logger.Warn("chime playback failed", "path", path, "error", err)
		}
		return nil
	}
}

// reportContentSize feeds the measured content size to the controller
// whenever it changes.
func (m *Model) reportContentSize() {
	if m.item == nil {
		return
	}
	rendered := contentStyle.Render(m.item.Content)
	size := banner.Size{
		Width:  float64(lipgloss.Width(rendered)),
		Height: float64(lipgloss.Height(rendered)),
	}
	if size == m.lastSize {
		return
	}
	m.lastSize = size
	if ctrl := m.q.Controller(); ctrl != nil {
		ctrl.SetContentSize(size)
	}
}

// retarget points the slide animation at the current rest offset and
// starts ticking if not already there.
func (m *Model) retarget() tea.Cmd {
	if m.item == nil {
		return nil
	}
	edge := m.item.Config.Edge
	geom := banner.VerticalOffset(m.visible, edge)
	m.target = clampOffset(geom, m.bannerHeight()+2)

	if m.animating || m.offset == m.target {
		return nil
	}
	m.animating = true
	return m.animTick()
}

// stepAnimation eases the offset toward its target, one frame at a time.
func (m *Model) stepAnimation() tea.Cmd {
	if !m.animating {
		return nil
	}
	m.offset += (m.target - m.offset) * 0.45
	if diff := m.target - m.offset; diff < 0.5 && diff > -0.5 {
		m.offset = m.target
		m.animating = false
		if !m.visible {
			m.item = nil
			m.lastSize = banner.Size{}
		}
		return nil
	}
	return m.animTick()
}

func (m *Model) animTick() tea.Cmd {
	return tea.Tick(animInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// clampOffset bounds the geometry's off-screen offset to just past the
// banner extent so the slide transition stays short.
func clampOffset(offset, extent float64) float64 {
	if offset > extent {
		return extent
	}
	if offset < -extent {
		return -extent
	}
	return offset
}
