package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toastui/internal/layout"
)

var presetsOpts struct {
	format string
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List configured banner presets",
	Long: `List the banner presets defined in the configuration file, including
the built-in "standard" preset.

Output formats:
  table  human-readable summary (default)
  toml   full preset definitions as TOML
  yaml   full preset definitions as YAML`,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(templatesCmd)

	presetsCmd.Flags().StringVar(&presetsOpts.format, "format", "table",
		"Output format (table, toml, yaml)")
}

func runPresets(cmd *cobra.Command, args []string) error {
	switch presetsOpts.format {
	case "toml":
		data, err := toml.Marshal(cfg.Presets)
		if err != nil {
			return fmt.Errorf("failed to marshal presets: %w", err)
		}
		fmt.Print(string(data))
		return nil

	case "yaml":
		data, err := yaml.Marshal(cfg.Presets)
		if err != nil {
			return fmt.Errorf("failed to marshal presets: %w", err)
		}
		fmt.Print(string(data))
		return nil

	case "table":
		names := make([]string, 0, len(cfg.Presets))
		for name := range cfg.Presets {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			preset := cfg.Presets[name]
			marker := " "
			if name == cfg.Demo.Preset {
				marker = "*"
			}
			fmt.Printf("%s %-16s edge=%-6s dismiss=%s\n",
				marker, name, preset.Edge, describeDuration(preset.Duration.Duration()))
		}
		return nil

	default:
		return fmt.Errorf("unknown format %q, must be table, toml or yaml", presetsOpts.format)
	}
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List built-in content templates",
	Long: `List the built-in banner content templates. A file named
<name>.tmpl in the user templates directory shadows the built-in of
the same name.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range layout.ListEmbeddedTemplates() {
			fmt.Println(name)
		}
	},
}

// describeDuration renders an auto-dismiss duration for humans.
func describeDuration(d time.Duration) string {
	if d <= 0 {
		return "never"
	}
	now := time.Now()
	return "after " + strings.TrimSpace(humanize.RelTime(now, now.Add(d), "", ""))
}
