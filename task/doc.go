// Package task houses the in-memory task registry backing the A2A JSON-RPC
// surface. The registry is the exclusive owner of task records: tasks are
// created by message/send, settled by completion, failure or cancellation,
// and never deleted.
// Returned tasks are clones so callers cannot mutate registry state.
//
// Durable backends (SQLite, Redis, etc.) can be added as sibling
// implementations without changing calling code; only the wiring layer
// decides which store to instantiate.
package task
