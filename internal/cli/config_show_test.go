package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigShow_Defaults(t *testing.T) {
	isolateCommand(t)

	out, err := executeCommand(context.Background(), "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "Effective countdown configuration")
	for _, section := range []string{"event:", "countdown:", "notifications:", "server:"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, ":8080")
	assert.Contains(t, out, "# default")
	assert.NotContains(t, out, "# project")
	assert.Contains(t, out, "(not found)")
}

func TestConfigShow_Sources(t *testing.T) {
	isolateCommand(t)
	writeProjectConfig(t, "server:\n  addr: \":9090\"\ncountdown:\n  timezone: Asia/Seoul\n")
	t.Setenv("COUNTDOWN_EVENT_TIMEOUT", "3s")

	out, err := executeCommand(context.Background(), "config", "show", "-o", "json")
	require.NoError(t, err)

	var got AnnotatedConfig
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, ":9090", got.Server["addr"].Value)
	assert.Equal(t, SourceProject, got.Server["addr"].Source)
	assert.Equal(t, "Asia/Seoul", got.Countdown["timezone"].Value)
	assert.Equal(t, SourceProject, got.Countdown["timezone"].Source)
	assert.Equal(t, "3s", got.Event["timeout"].Value)
	assert.Equal(t, SourceEnv, got.Event["timeout"].Source)
	assert.Equal(t, SourceDefault, got.Notifications["bell"].Source)
}

func TestConfigShow_Raw(t *testing.T) {
	isolateCommand(t)
	writeProjectConfig(t, "event:\n  api_base_url: https://events.example.com\n")

	out, err := executeCommand(context.Background(), "config", "show", "--raw")
	require.NoError(t, err)

	var got struct {
		Event struct {
			APIBaseURL string `yaml:"api_base_url"`
			Timeout    string `yaml:"timeout"`
		} `yaml:"event"`
		Notifications struct {
			Bell bool `yaml:"bell"`
		} `yaml:"notifications"`
		Server struct {
			AllowedOrigins []string `yaml:"allowed_origins"`
		} `yaml:"server"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "https://events.example.com", got.Event.APIBaseURL)
	assert.Equal(t, "10s", got.Event.Timeout)
	assert.True(t, got.Notifications.Bell)
	assert.Equal(t, []string{"*"}, got.Server.AllowedOrigins)
}

func TestLoadConfigFile(t *testing.T) {
	isolateCommand(t)

	t.Run("nested keys are flattened", func(t *testing.T) {
		writeProjectConfig(t, "event:\n  timeout: 5s\nserver:\n  allowed_origins:\n    - https://a.example\n")

		got := loadProjectConfigOnly()
		assert.Contains(t, got, "event.timeout")
		assert.Contains(t, got, "server.allowed_origins")
		assert.NotContains(t, got, "event")
	})

	t.Run("malformed file contributes nothing", func(t *testing.T) {
		writeProjectConfig(t, "event: [unclosed\n")
		assert.Nil(t, loadProjectConfigOnly())
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Nil(t, loadConfigFile("does-not-exist.yaml"))
	})
}

func TestFormatConfigValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `""`, formatConfigValue(""))
	assert.Equal(t, "[]", formatConfigValue([]string{}))
	assert.Equal(t, "[a, b]", formatConfigValue([]string{"a", "b"}))
	assert.Equal(t, "true", formatConfigValue(true))
	assert.Equal(t, "10s", formatConfigValue("10s"))
}
