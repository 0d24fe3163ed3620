package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Launch the interactive banner demo",
	Long: `Launch the interactive demo harness for banner presentations.

Key bindings:
  n           present a banner from the current preset
  r           re-present (resets the auto-dismiss countdown)
  d           dismiss the visible banner
  p           cycle through configured presets
  c           clear the presentation queue
  ?           toggle help
  q           quit

Dragging a banner toward its anchored edge (mouse) dismisses it early.
Edits to the config file apply live while the demo is running.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	model := tui.New(cfg, logger)
	defer model.Close()

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Apply config edits live while the demo runs.
	configPath := globalOpts.configPath
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	watcher, err := config.NewWatcher(configPath, func(c *config.Config) {
		program.Send(tui.ConfigReloadedMsg{Config: c})
	}, logger)
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
	} else if err := watcher.Start(); err != nil {
		logger.Warn("config watcher failed to start", "path", configPath, "error", err)
	} else {
		defer func() { _ = watcher.Stop() }()
	}

	_, err = program.Run()
	return err
}
