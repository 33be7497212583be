// Package client provides the HTTP transport for Queen-side debate
// fan-out: it delivers a round message to a remote Bee's A2A endpoint via
// JSON-RPC message/send, polls tasks/get until the created task reaches a
// terminal state and converts the final agent output into a BeeResponse.
// Per-call timeouts and the polling cadence are configurable; retry policy
// beyond polling is left to callers.
package client
