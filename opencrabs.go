// Package opencrabs provides a high-level façade over the A2A protocol
// core: the task registry, the JSON-RPC dispatcher, the HTTP gateway and
// the Bee Colony debate orchestrator. Most applications interact with this
// package by:
//  1. Creating an instance via New() (optionally supplying a config file,
//     a model backend or a custom transport)
//  2. Serving the A2A gateway with Serve() so peers can reach the local Bee
//  3. Running debates across the colony with Debate()
//
// All defaults are safe for local development: an in-memory registry, a
// localhost gateway and the placeholder model. Production deployments
// supply a real model provider and the colony's endpoint list.
package opencrabs

import (
	"context"
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/Hunter79-stack/opencrabs/bee"
	"github.com/Hunter79-stack/opencrabs/client"
	"github.com/Hunter79-stack/opencrabs/config"
	"github.com/Hunter79-stack/opencrabs/debate"
	"github.com/Hunter79-stack/opencrabs/handler"
	"github.com/Hunter79-stack/opencrabs/logging"
	"github.com/Hunter79-stack/opencrabs/model"
	"github.com/Hunter79-stack/opencrabs/model/anthropic"
	"github.com/Hunter79-stack/opencrabs/model/openai"
	"github.com/Hunter79-stack/opencrabs/server"
	"github.com/Hunter79-stack/opencrabs/task"
)

// Version is the OpenCrabs release version, advertised in the agent card
// and the gateway health endpoint.
const Version = "0.1.0"

// Options configures the OpenCrabs instance.
type Options struct {
	// Config carries process-level settings. Defaults to config.Default().
	Config *config.Config

	// Model backs the local Bee participant. Defaults to the provider
	// named in Config.Model, or the placeholder when none is configured.
	Model model.Model

	// Transport delivers debate round messages to Bee endpoints. Defaults
	// to the HTTP JSON-RPC client.
	Transport debate.Transport

	// Logger (defaults to a text slog logger).
	Logger logging.Logger
}

// OpenCrabs aggregates the protocol core components behind one handle.
type OpenCrabs struct {
	cfg       *config.Config
	registry  *task.Registry
	gateway   *server.Gateway
	transport debate.Transport
	logger    logging.Logger
}

// New creates an OpenCrabs instance. Any unset dependency is initialized
// with its default implementation.
func New(optFns ...func(o *Options)) *OpenCrabs {
	opts := Options{
		Config: config.Default(),
		Logger: logging.NewDefaultSlogLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	m := opts.Model
	if m == nil {
		m = modelFromConfig(opts.Config.Model)
	}

	participant := bee.NewParticipant(opts.Config.Agent.Name, m, func(o *bee.Options) {
		o.Endpoint = fmt.Sprintf("http://%s:%d/a2a/v1", opts.Config.Gateway.Bind, opts.Config.Gateway.Port)
		o.Logger = opts.Logger
	})

	registry := task.NewRegistry(func(o *task.Options) {
		o.Logger = opts.Logger
	})
	h := handler.New(registry, func(o *handler.Options) {
		o.Executor = participant
		o.Logger = opts.Logger
	})
	gateway := server.New(h, func(o *server.Options) {
		o.Bind = opts.Config.Gateway.Bind
		o.Port = opts.Config.Gateway.Port
		o.Version = Version
		o.Logger = opts.Logger
		card := server.NewAgentCard(opts.Config.Gateway.Bind, opts.Config.Gateway.Port, func(c *server.CardOptions) {
			c.Name = opts.Config.Agent.Name
			c.Version = Version
		})
		o.Card = &card
	})

	transport := opts.Transport
	if transport == nil {
		transport = client.New(func(o *client.Options) {
			o.Logger = opts.Logger
		})
	}

	return &OpenCrabs{
		cfg:       opts.Config,
		registry:  registry,
		gateway:   gateway,
		transport: transport,
		logger:    opts.Logger,
	}
}

// modelFromConfig resolves the configured provider to a model backend.
// Provider credentials come from the environment via each SDK's defaults.
func modelFromConfig(mc config.ModelConfig) model.Model {
	switch mc.Provider {
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if mc.Name != "" {
				o.Model = anthropicsdk.Model(mc.Name)
			}
		})
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if mc.Name != "" {
				o.Model = mc.Name
			}
		})
	default:
		return model.Placeholder{}
	}
}

// Registry exposes the task registry, mainly for embedding and tests.
func (oc *OpenCrabs) Registry() *task.Registry {
	return oc.registry
}

// Gateway exposes the A2A HTTP gateway.
func (oc *OpenCrabs) Gateway() *server.Gateway {
	return oc.gateway
}

// Serve starts the A2A gateway and blocks until ctx is canceled. When the
// gateway is disabled in the configuration it returns immediately.
func (oc *OpenCrabs) Serve(ctx context.Context) error {
	if !oc.cfg.Gateway.Enabled {
		oc.logger.Info("gateway disabled in config")
		return nil
	}
	return oc.gateway.Start(ctx)
}

// Debate runs a full colony debate and returns the concluded session.
// Unset config fields fall back to the process configuration: the colony's
// endpoint list, round cap and consensus threshold.
func (oc *OpenCrabs) Debate(ctx context.Context, cfg debate.Config) (*debate.Session, error) {
	if len(cfg.BeeEndpoints) == 0 {
		cfg.BeeEndpoints = oc.cfg.Debate.BeeEndpoints
	}
	if cfg.MaxRounds == 0 {
		cfg.MaxRounds = oc.cfg.Debate.MaxRounds
	}
	if cfg.ConsensusThreshold == 0 {
		cfg.ConsensusThreshold = oc.cfg.Debate.ConsensusThreshold
	}

	session := debate.NewSession(cfg)
	runner := debate.NewRunner(oc.transport, func(o *debate.RunnerOptions) {
		o.Logger = oc.logger
	})
	if err := runner.Run(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
