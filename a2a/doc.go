// Package a2a defines the Agent-to-Agent (A2A) protocol schema: tasks,
// messages, the JSON-RPC 2.0 envelope and the agent card served for
// discovery. It contains only wire types and small helpers, no transport,
// storage or orchestration concerns. Higher level packages (task, handler,
// debate, server, client) depend on these contracts rather than on each
// other's concrete types.
package a2a
