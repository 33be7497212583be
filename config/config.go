package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the file or environment leaves a value unset.
const (
	DefaultGatewayBind = "127.0.0.1"
	DefaultGatewayPort = 18789
	DefaultAgentName   = "OpenCrabs Bee"

	DefaultDebateMaxRounds = 3
	DefaultDebateThreshold = 0.8
)

// GatewayConfig configures the A2A HTTP gateway.
type GatewayConfig struct {
	// Enabled controls whether the gateway is started at all.
	Enabled bool `yaml:"enabled"`

	// Bind is the listen address.
	Bind string `yaml:"bind"`

	// Port is the listen port.
	Port int `yaml:"port"`
}

// AgentConfig describes the local agent identity.
type AgentConfig struct {
	// Name is advertised in the agent card.
	Name string `yaml:"name"`
}

// DebateConfig carries the Queen-side debate defaults.
type DebateConfig struct {
	// MaxRounds bounds a debate when consensus is not reached.
	MaxRounds int `yaml:"maxRounds"`

	// ConsensusThreshold is the average confidence needed to conclude.
	ConsensusThreshold float64 `yaml:"consensusThreshold"`

	// BeeEndpoints lists the JSON-RPC URLs of the colony members.
	BeeEndpoints []string `yaml:"beeEndpoints"`
}

// ModelConfig selects the completion backend for the local Bee.
type ModelConfig struct {
	// Provider is "anthropic", "openai" or empty for the placeholder.
	Provider string `yaml:"provider"`

	// Name is the provider-specific model name.
	Name string `yaml:"name"`
}

// Config is the root configuration document.
type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	Agent   AgentConfig   `yaml:"agent"`
	Debate  DebateConfig  `yaml:"debate"`
	Model   ModelConfig   `yaml:"model"`
}

// Default returns the configuration used when no file is present: gateway
// enabled on localhost, three-round debates, placeholder model.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			Enabled: true,
			Bind:    DefaultGatewayBind,
			Port:    DefaultGatewayPort,
		},
		Agent: AgentConfig{Name: DefaultAgentName},
		Debate: DebateConfig{
			MaxRounds:          DefaultDebateMaxRounds,
			ConsensusThreshold: DefaultDebateThreshold,
		},
	}
}

// Load reads the YAML file at path, fills unset values with defaults and
// applies environment overrides. A missing file is not an error; the
// defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Gateway.Bind == "" {
		c.Gateway.Bind = DefaultGatewayBind
	}
	if c.Gateway.Port == 0 {
		c.Gateway.Port = DefaultGatewayPort
	}
	if c.Agent.Name == "" {
		c.Agent.Name = DefaultAgentName
	}
	if c.Debate.MaxRounds == 0 {
		c.Debate.MaxRounds = DefaultDebateMaxRounds
	}
	if c.Debate.ConsensusThreshold == 0 {
		c.Debate.ConsensusThreshold = DefaultDebateThreshold
	}
}

// applyEnv lets deployments override the file without editing it.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENCRABS_GATEWAY_BIND"); v != "" {
		c.Gateway.Bind = v
	}
	if v := os.Getenv("OPENCRABS_GATEWAY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Gateway.Port = port
		}
	}
	if v := os.Getenv("OPENCRABS_GATEWAY_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Gateway.Enabled = enabled
		}
	}
	if v := os.Getenv("OPENCRABS_AGENT_NAME"); v != "" {
		c.Agent.Name = v
	}
	if v := os.Getenv("OPENCRABS_MODEL_PROVIDER"); v != "" {
		c.Model.Provider = v
	}
	if v := os.Getenv("OPENCRABS_MODEL_NAME"); v != "" {
		c.Model.Name = v
	}
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Gateway.Port < 0 || c.Gateway.Port > 65535 {
		return fmt.Errorf("gateway port %d out of range", c.Gateway.Port)
	}
	if c.Debate.MaxRounds < 1 {
		return fmt.Errorf("debate maxRounds must be at least 1, got %d", c.Debate.MaxRounds)
	}
	if c.Debate.ConsensusThreshold < 0 || c.Debate.ConsensusThreshold > 1 {
		return fmt.Errorf("debate consensusThreshold must be in [0,1], got %v", c.Debate.ConsensusThreshold)
	}
	switch c.Model.Provider {
	case "", "anthropic", "openai":
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}
	return nil
}
