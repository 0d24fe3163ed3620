package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/config"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{r}})
}

// step applies a message and keeps the concrete model type.
func step(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(*Model)
	require.True(t, ok)
	return next
}

// drainShow processes the pending show notification synchronously.
func drainShow(t *testing.T, m *Model) *Model {
	t.Helper()
	select {
	case item := <-m.showCh:
		return step(t, m, showMsg(item))
	default:
		t.Fatal("no show notification pending")
		return m
	}
}

// drainActivation processes one pending activation change.
func drainActivation(t *testing.T, m *Model) *Model {
	t.Helper()
	select {
	case v := <-m.activationCh:
		return step(t, m, activationMsg(v))
	default:
		t.Fatal("no activation change pending")
		return m
	}
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(config.DefaultConfig(), nil)
	t.Cleanup(m.Close)
	return step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func TestModel_TriggerPresentsBanner(t *testing.T) {
	m := newTestModel(t)

	m = step(t, m, keyPress('n'))
	assert.True(t, m.q.Binding().Get())

	m = drainShow(t, m)
	m = drainActivation(t, m)

	require.NotNil(t, m.item)
	assert.Contains(t, m.item.Content, "standard notification #1")
	assert.Contains(t, m.View(), "standard notification #1")
}

func TestModel_ReportsContentSize(t *testing.T) {
	m := newTestModel(t)

	m = step(t, m, keyPress('n'))
	m = drainShow(t, m)

	ctrl := m.q.Controller()
	require.NotNil(t, ctrl)
	size := ctrl.ContentSize()
	assert.Positive(t, size.Width)
	assert.Positive(t, size.Height)
}

func TestModel_DragTowardEdgeDismisses(t *testing.T) {
	m := newTestModel(t)

	m = step(t, m, keyPress('n'))
	m = drainShow(t, m)
	m = drainActivation(t, m)
	require.True(t, m.q.Binding().Get())

	// Swipe up toward the top edge.
	m = step(t, m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(t, m, tea.MouseMsg{X: 11, Y: 2, Action: tea.MouseActionRelease})

	assert.False(t, m.q.Binding().Get())
}

func TestModel_DragAwayFromEdgeIgnored(t *testing.T) {
	m := newTestModel(t)

	m = step(t, m, keyPress('n'))
	m = drainShow(t, m)
	m = drainActivation(t, m)

	// Swipe down, away from the top-anchored banner.
	m = step(t, m, tea.MouseMsg{X: 10, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(t, m, tea.MouseMsg{X: 11, Y: 10, Action: tea.MouseActionRelease})

	assert.True(t, m.q.Binding().Get())
}

func TestModel_RetriggerWhileHiddenPresents(t *testing.T) {
	m := newTestModel(t)

	m = step(t, m, keyPress('r'))
	assert.True(t, m.q.Binding().Get())
}

func TestModel_PresetCycling(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Presets["alert"] = config.PresetConfig{Edge: "bottom"}
	m := New(cfg, nil)
	t.Cleanup(m.Close)
	m = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	require.Equal(t, "standard", m.currentPreset())
	m = step(t, m, keyPress('p'))
	assert.Equal(t, "alert", m.currentPreset())
	m = step(t, m, keyPress('p'))
	assert.Equal(t, "standard", m.currentPreset())
}

func TestModel_ConfigReload(t *testing.T) {
	m := newTestModel(t)

	cfg := config.DefaultConfig()
	cfg.Theme.ColorScheme = "dark"
	m = step(t, m, ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, "dark", string(m.scheme))
	assert.Contains(t, m.View(), "configuration reloaded")
}

func TestModel_ViewBeforeReady(t *testing.T) {
	m := New(config.DefaultConfig(), nil)
	t.Cleanup(m.Close)
	assert.Contains(t, m.View(), "initializing")
}

func TestModel_CloseDetachesFromBinding(t *testing.T) {
	m := New(config.DefaultConfig(), nil)
	m = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m.Close()

	// Writes after Close must not reach the activation channel; a leaked
	// subscription would eventually block the writer once the buffer
	// fills with nobody draining it.
	for i := 0; i < cap(m.activationCh)+1; i++ {
		m.q.Binding().Set(true)
	}
	select {
	case <-m.activationCh:
		t.Fatal("closed model still observes binding writes")
	default:
	}
}

func TestModel_SlideInAnimation(t *testing.T) {
	m := newTestModel(t)

	m = step(t, m, keyPress('n'))
	m = drainShow(t, m)
	// Parked off-screen before the activation is observed.
	assert.NotZero(t, m.offset)

	m = drainActivation(t, m)
	assert.True(t, m.animating)
	assert.Equal(t, 0.0, m.target)

	// Step frames until the banner comes to rest.
	for i := 0; i < 50 && m.animating; i++ {
		m = step(t, m, animTickMsg{})
	}
	assert.False(t, m.animating)
	assert.Equal(t, 0.0, m.offset)

	base := strings.Split(m.View(), "\n")
	assert.True(t, len(base) > 0)
}
