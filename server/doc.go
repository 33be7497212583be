// Package server provides the A2A gateway: an HTTP server exposing the
// agent card at /.well-known/agent.json, the JSON-RPC task endpoint at
// /a2a/v1 and a health probe at /a2a/health. The gateway owns only the
// HTTP surface; request semantics live in the handler package.
package server
