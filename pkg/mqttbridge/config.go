package mqttbridge

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config configures the MQTT bridge. Values come from an optional YAML
// file, overridden by environment variables.
type Config struct {
	Host     string `yaml:"host" envconfig:"MQTT_HOST"`
	Port     int    `yaml:"port" envconfig:"MQTT_PORT"`
	Username string `yaml:"username" envconfig:"MQTT_USERNAME"`
	Password string `yaml:"password" envconfig:"MQTT_PASSWORD"`
	ClientID string `yaml:"client_id" envconfig:"MQTT_CLIENT_ID"`

	// BaseTopic is the topic prefix for node state topics.
	BaseTopic string `yaml:"base_topic" envconfig:"MQTT_BASE_TOPIC"`

	// DiscoveryPrefix is the Home Assistant discovery topic prefix.
	DiscoveryPrefix string `yaml:"discovery_prefix" envconfig:"MQTT_DISCOVERY_PREFIX"`

	// Retain controls whether state topics are published retained.
	Retain bool `yaml:"retain" envconfig:"MQTT_RETAIN"`
}

// DefaultConfig returns the default bridge configuration.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            1883,
		ClientID:        "zwsim",
		BaseTopic:       "zwsim",
		DiscoveryPrefix: "homeassistant",
		Retain:          true,
	}
}

// LoadConfig builds the bridge configuration. The YAML file is optional;
// environment variables override the file, so secrets can stay out of it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to open config file: %w", err)
			}
		} else {
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment config: %w", err)
	}

	return cfg, nil
}

// BrokerURL returns the tcp:// broker address.
func (c Config) BrokerURL() string {
	return fmt.Sprintf("tcp://%s:%d", c.Host, c.Port)
}
