package mqttbridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 1883, cfg.Port)
	assert.Equal(t, "zwsim", cfg.BaseTopic)
	assert.Equal(t, "homeassistant", cfg.DiscoveryPrefix)
	assert.Equal(t, "tcp://localhost:1883", cfg.BrokerURL())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "host: broker.lan\nport: 8883\nbase_topic: sim\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "broker.lan", cfg.Host)
	assert.Equal(t, 8883, cfg.Port)
	assert.Equal(t, "sim", cfg.BaseTopic)
	// Untouched fields keep their defaults.
	assert.Equal(t, "homeassistant", cfg.DiscoveryPrefix)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("host: broker.lan\n"), 0o644))

	t.Setenv("MQTT_HOST", "env-broker")
	t.Setenv("MQTT_PASSWORD", "hunter2")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-broker", cfg.Host)
	assert.Equal(t, "hunter2", cfg.Password)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
}
