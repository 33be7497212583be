package server

import (
	"fmt"

	"github.com/Hunter79-stack/opencrabs/a2a"
)

const repositoryURL = "https://github.com/Hunter79-stack/opencrabs"

// CardOptions configures the generated agent card.
type CardOptions struct {
	// Name is the advertised agent name.
	Name string

	// Version is the advertised agent version.
	Version string

	// Skills overrides the default skill set.
	Skills []a2a.AgentSkill
}

// NewAgentCard builds the discovery document for an agent reachable at
// host:port. The defaults describe a Bee Colony member with its code
// analysis, research and debate skills.
func NewAgentCard(host string, port int, optFns ...func(o *CardOptions)) a2a.AgentCard {
	opts := CardOptions{
		Name:    "OpenCrabs Bee",
		Version: "0.1.0",
		Skills:  defaultSkills(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	baseURL := fmt.Sprintf("http://%s:%d", host, port)
	textAndJSON := []string{"text/plain", "application/json"}

	return a2a.AgentCard{
		Name:             fmt.Sprintf("%s (v%s)", opts.Name, opts.Version),
		Description:      "AI orchestration agent with A2A protocol support. Part of the Bee Colony multi-agent system.",
		Version:          opts.Version,
		DocumentationURL: repositoryURL,
		SupportedInterfaces: []a2a.SupportedInterface{
			{
				URL:             baseURL + "/a2a/v1",
				ProtocolBinding: "JSONRPC",
				ProtocolVersion: "1.0",
			},
		},
		Provider: &a2a.AgentProvider{
			Organization: "OpenCrabs Contributors",
			URL:          repositoryURL,
		},
		Capabilities: &a2a.AgentCapabilities{
			Streaming:              false,
			PushNotifications:      false,
			StateTransitionHistory: true,
		},
		Skills:             opts.Skills,
		DefaultInputModes:  textAndJSON,
		DefaultOutputModes: textAndJSON,
	}
}

func defaultSkills() []a2a.AgentSkill {
	textAndJSON := []string{"text/plain", "application/json"}
	return []a2a.AgentSkill{
		{
			ID:          "code-analysis",
			Name:        "Code Analysis & Refactoring",
			Description: "Analyze source code, identify issues, and suggest improvements.",
			Tags:        []string{"code", "analysis", "refactoring"},
			Examples:    []string{"Analyze this module for performance issues."},
			InputModes:  textAndJSON,
			OutputModes: textAndJSON,
		},
		{
			ID:          "research",
			Name:        "Deep Research",
			Description: "Perform multi-source research, cross-domain analysis, and synthesis.",
			Tags:        []string{"research", "analysis", "synthesis"},
			Examples:    []string{"Research the latest developments in AI agent security."},
			InputModes:  []string{"text/plain"},
			OutputModes: textAndJSON,
		},
		{
			ID:          "debate",
			Name:        "Multi-Agent Debate",
			Description: "Participate in structured multi-round debates with other A2A agents.",
			Tags:        []string{"debate", "council", "multi-agent"},
			Examples:    []string{"Debate the pros and cons of microservices vs monoliths."},
			InputModes:  textAndJSON,
			OutputModes: textAndJSON,
		},
	}
}
