// Package handler implements the A2A JSON-RPC 2.0 dispatcher. It routes
// method names to task operations against an injected task.Registry and
// renders every outcome, success or failure, as a structured JSON-RPC
// response. An optional Executor settles accepted tasks in the background.
// The dispatcher is transport agnostic: the HTTP gateway in the
// server package is one caller, in-process tests are another.
package handler
