package a2a

// SupportedInterface advertises one protocol binding of an agent.
type SupportedInterface struct {
	URL             string `json:"url"`
	ProtocolBinding string `json:"protocolBinding"`
	ProtocolVersion string `json:"protocolVersion,omitempty"`
}

// AgentProvider identifies the organization operating an agent.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url,omitempty"`
}

// AgentCapabilities lists the optional protocol features an agent supports.
type AgentCapabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

// AgentSkill describes one capability an agent offers to peers.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	InputModes  []string `json:"inputModes,omitempty"`
	OutputModes []string `json:"outputModes,omitempty"`
}

// AgentCard is the discovery document served at /.well-known/agent.json.
// Peers read it to learn an agent's endpoints, capabilities and skills.
type AgentCard struct {
	Name                string               `json:"name"`
	Description         string               `json:"description,omitempty"`
	Version             string               `json:"version,omitempty"`
	DocumentationURL    string               `json:"documentationUrl,omitempty"`
	IconURL             string               `json:"iconUrl,omitempty"`
	SupportedInterfaces []SupportedInterface `json:"supportedInterfaces"`
	Provider            *AgentProvider       `json:"provider,omitempty"`
	Capabilities        *AgentCapabilities   `json:"capabilities,omitempty"`
	Skills              []AgentSkill         `json:"skills"`
	DefaultInputModes   []string             `json:"defaultInputModes,omitempty"`
	DefaultOutputModes  []string             `json:"defaultOutputModes,omitempty"`
}
