package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/countdown/internal/config"
	"github.com/mrz1836/countdown/internal/constants"
	"github.com/mrz1836/countdown/internal/logging"
	"github.com/mrz1836/countdown/internal/tui"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceGlobal indicates the value came from global config.
	SourceGlobal ConfigSource = "global"
	// SourceProject indicates the value came from project config.
	SourceProject ConfigSource = "project"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
)

// ConfigValueWithSource represents a configuration value with its source.
type ConfigValueWithSource struct {
	Value  any          `json:"value" yaml:"value"`
	Source ConfigSource `json:"source" yaml:"source"`
}

// AnnotatedConfig represents configuration with source annotations.
type AnnotatedConfig struct {
	Event         map[string]ConfigValueWithSource `json:"event" yaml:"event"`
	Countdown     map[string]ConfigValueWithSource `json:"countdown" yaml:"countdown"`
	Notifications map[string]ConfigValueWithSource `json:"notifications" yaml:"notifications"`
	Server        map[string]ConfigValueWithSource `json:"server" yaml:"server"`
}

// configShowOptions holds flags specific to the config show command.
type configShowOptions struct {
	raw bool
}

// AddConfigShowCommand adds the show subcommand to the config command.
func AddConfigShowCommand(configCmd *cobra.Command, flags *GlobalFlags) {
	opts := &configShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective countdown configuration with source annotations.

Each value is marked with where it comes from:
  - default: Built-in default value
  - global:  From ~/.countdown/config.yaml
  - project: From .countdown/config.yaml
  - env:     From a COUNTDOWN_* environment variable

Examples:
  countdown config show           # Annotated view
  countdown config show --raw     # Plain YAML, ready to save as config.yaml
  countdown config show -o json   # Annotated JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runConfigShow(cmd.Context(), cmd.OutOrStdout(), flags.Output, opts)
			return finishCommand(cmd, flags, err)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print plain YAML without source annotations")
	configCmd.AddCommand(cmd)
}

// configShowStyles contains styling for the config show command output.
type configShowStyles struct {
	header    lipgloss.Style
	section   lipgloss.Style
	key       lipgloss.Style
	value     lipgloss.Style
	sourceEnv lipgloss.Style
	sourcePrj lipgloss.Style
	sourceGbl lipgloss.Style
	sourceDef lipgloss.Style
	dim       lipgloss.Style
}

func newConfigShowStyles() *configShowStyles {
	return &configShowStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(tui.ColorPrimary),
		section:   lipgloss.NewStyle().Bold(true),
		key:       lipgloss.NewStyle().Foreground(tui.ColorPrimary),
		value:     lipgloss.NewStyle(),
		sourceEnv: lipgloss.NewStyle().Foreground(tui.ColorError),
		sourcePrj: lipgloss.NewStyle().Foreground(tui.ColorWarning),
		sourceGbl: lipgloss.NewStyle().Foreground(tui.ColorSuccess),
		sourceDef: lipgloss.NewStyle().Foreground(tui.ColorMuted),
		dim:       lipgloss.NewStyle().Foreground(tui.ColorMuted),
	}
}

// runConfigShow executes the config show command.
func runConfigShow(ctx context.Context, w io.Writer, format string, opts *configShowOptions) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.raw {
		return outputRawYAML(w, cfg)
	}

	annotated := buildAnnotatedConfig(cfg)
	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(annotated)
	}

	tui.CheckNoColor()
	outputAnnotated(w, annotated)
	return nil
}

// buildAnnotatedConfig creates an annotated configuration with source information.
func buildAnnotatedConfig(cfg *config.Config) *AnnotatedConfig {
	globalCfg := loadGlobalConfigOnly()
	projectCfg := loadProjectConfigOnly()

	source := func(key string, value any) ConfigValueWithSource {
		return determineSource(key, value, globalCfg, projectCfg)
	}

	return &AnnotatedConfig{
		Event: map[string]ConfigValueWithSource{
			"api_base_url": source("event.api_base_url", cfg.Event.APIBaseURL),
			"timeout":      source("event.timeout", cfg.Event.Timeout.String()),
			"end_date":     source("event.end_date", cfg.Event.EndDate),
		},
		Countdown: map[string]ConfigValueWithSource{
			"timezone": source("countdown.timezone", cfg.Countdown.Timezone),
		},
		Notifications: map[string]ConfigValueWithSource{
			"bell": source("notifications.bell", cfg.Notifications.Bell),
		},
		Server: map[string]ConfigValueWithSource{
			"addr":            source("server.addr", cfg.Server.Addr),
			"allowed_origins": source("server.allowed_origins", cfg.Server.AllowedOrigins),
			"write_timeout":   source("server.write_timeout", cfg.Server.WriteTimeout.String()),
			"ping_interval":   source("server.ping_interval", cfg.Server.PingInterval.String()),
		},
	}
}

// configValues holds the dotted keys present in one config file.
type configValues map[string]struct{}

// loadGlobalConfigOnly loads only the global config for source comparison.
func loadGlobalConfigOnly() configValues {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return nil
	}
	return loadConfigFile(path)
}

// loadProjectConfigOnly loads only the project config for source comparison.
func loadProjectConfigOnly() configValues {
	return loadConfigFile(config.ProjectConfigPath())
}

// loadConfigFile parses a YAML config file and records the keys it sets.
// A missing or malformed file contributes no keys.
func loadConfigFile(path string) configValues {
	data, err := os.ReadFile(path) //nolint:gosec // Config file path
	if err != nil {
		return nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil
	}

	result := make(configValues)
	flattenKeys("", doc, result)
	return result
}

// flattenKeys records every leaf of m as a dotted key.
func flattenKeys(prefix string, m map[string]any, out configValues) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenKeys(key, nested, out)
			continue
		}
		out[key] = struct{}{}
	}
}

// determineSource determines where a configuration value came from.
func determineSource(key string, value any, globalCfg, projectCfg configValues) ConfigValueWithSource {
	envKey := constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if envVal := os.Getenv(envKey); envVal != "" {
		return ConfigValueWithSource{Value: value, Source: SourceEnv}
	}

	if _, ok := projectCfg[key]; ok {
		return ConfigValueWithSource{Value: value, Source: SourceProject}
	}

	if _, ok := globalCfg[key]; ok {
		return ConfigValueWithSource{Value: value, Source: SourceGlobal}
	}

	return ConfigValueWithSource{Value: value, Source: SourceDefault}
}

// outputRawYAML prints the effective configuration as plain YAML.
func outputRawYAML(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rawConfig(cfg)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// rawConfig converts cfg into a YAML-friendly tree with durations as strings.
func rawConfig(cfg *config.Config) map[string]any {
	event := map[string]any{
		"api_base_url": cfg.Event.APIBaseURL,
		"timeout":      cfg.Event.Timeout.String(),
	}
	if cfg.Event.EndDate != "" {
		event["end_date"] = cfg.Event.EndDate
	}

	return map[string]any{
		"event": event,
		"countdown": map[string]any{
			"timezone": cfg.Countdown.Timezone,
		},
		"notifications": map[string]any{
			"bell": cfg.Notifications.Bell,
		},
		"server": map[string]any{
			"addr":            cfg.Server.Addr,
			"allowed_origins": cfg.Server.AllowedOrigins,
			"write_timeout":   cfg.Server.WriteTimeout.String(),
			"ping_interval":   cfg.Server.PingInterval.String(),
		},
	}
}

// outputAnnotated prints the configuration in YAML layout with source annotations.
func outputAnnotated(w io.Writer, annotated *AnnotatedConfig) {
	styles := newConfigShowStyles()

	_, _ = fmt.Fprintln(w, styles.header.Render("Effective countdown configuration"))
	_, _ = fmt.Fprintln(w, styles.dim.Render(strings.Repeat("─", 50)))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.dim.Render("Sources: ")+
		styles.sourceEnv.Render("env")+" > "+
		styles.sourcePrj.Render("project")+" > "+
		styles.sourceGbl.Render("global")+" > "+
		styles.sourceDef.Render("default"))
	_, _ = fmt.Fprintln(w)

	sections := []struct {
		name   string
		keys   []string
		values map[string]ConfigValueWithSource
	}{
		{"event", []string{"api_base_url", "timeout", "end_date"}, annotated.Event},
		{"countdown", []string{"timezone"}, annotated.Countdown},
		{"notifications", []string{"bell"}, annotated.Notifications},
		{"server", []string{"addr", "allowed_origins", "write_timeout", "ping_interval"}, annotated.Server},
	}
	for _, section := range sections {
		_, _ = fmt.Fprintln(w, styles.section.Render(section.name+":"))
		for _, key := range section.keys {
			printConfigValue(w, styles, "  "+key, section.values[key])
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintln(w, styles.dim.Render("Configuration files:"))
	if globalPath, err := config.GlobalConfigPath(); err == nil {
		printConfigFile(w, styles, "Global", globalPath, styles.sourceGbl)
	}
	projectPath := config.ProjectConfigPath()
	if abs, err := filepath.Abs(projectPath); err == nil {
		projectPath = abs
	}
	printConfigFile(w, styles, "Project", projectPath, styles.sourcePrj)
}

// printConfigValue prints a configuration value with its source annotation.
func printConfigValue(w io.Writer, styles *configShowStyles, key string, vs ConfigValueWithSource) {
	valueStr := formatConfigValue(vs.Value)
	if logging.ContainsSensitiveData(valueStr) {
		valueStr = logging.FilterSensitiveValue(valueStr)
	}

	_, _ = fmt.Fprintf(w, "%s: %s  %s\n",
		styles.key.Render(key),
		styles.value.Render(valueStr),
		sourceStyle(vs.Source, styles).Render("# "+string(vs.Source)))
}

// printConfigFile prints a config file path and whether it exists.
func printConfigFile(w io.Writer, styles *configShowStyles, label, path string, found lipgloss.Style) {
	prefix := styles.dim.Render("  " + label + ": ")
	if _, err := os.Stat(path); err == nil {
		_, _ = fmt.Fprintln(w, prefix+found.Render(path))
		return
	}
	_, _ = fmt.Fprintln(w, prefix+styles.dim.Render(path+" (not found)"))
}

// formatConfigValue formats a value for display.
func formatConfigValue(v any) string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return `""`
		}
		return val
	case []string:
		if len(val) == 0 {
			return "[]"
		}
		return "[" + strings.Join(val, ", ") + "]"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// sourceStyle returns the style for a config source.
func sourceStyle(source ConfigSource, styles *configShowStyles) lipgloss.Style {
	switch source {
	case SourceEnv:
		return styles.sourceEnv
	case SourceProject:
		return styles.sourcePrj
	case SourceGlobal:
		return styles.sourceGbl
	case SourceDefault:
		return styles.sourceDef
	default:
		return styles.sourceDef
	}
}
