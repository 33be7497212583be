// Package model defines the narrow LLM completion capability consumed by
// the Bee debate participant: a single Complete call taking instructions
// and a prompt and returning text. Provider sub-packages (anthropic,
// openai) adapt the official SDKs to this interface; Placeholder stands in
// when no provider is configured so the gateway can still start.
package model
