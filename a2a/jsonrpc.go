package a2a

import (
	"encoding/json"
	"fmt"
)

// Version is the JSON-RPC protocol version used by A2A ("2.0").
const Version = "2.0"

// Standard JSON-RPC 2.0 error codes (reserved range).
const (
	ErrorCodeParseError     = -32700 // Invalid JSON received.
	ErrorCodeInvalidRequest = -32600 // JSON is not a valid request object.
	ErrorCodeMethodNotFound = -32601 // Method does not exist.
	ErrorCodeInvalidParams  = -32602 // Invalid method parameters.
	ErrorCodeInternalError  = -32603 // Internal JSON-RPC error.
)

// A2A domain error codes, outside the reserved JSON-RPC range.
const (
	ErrorCodeTaskNotFound         = -32001
	ErrorCodeTaskNotCancelable    = -32002
	ErrorCodePushNotifications    = -32003
	ErrorCodeUnsupportedOperation = -32004
)

// Request is a JSON-RPC 2.0 request object. Params stay raw so the
// dispatcher can decode them per method.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id"`
}

// Response is a JSON-RPC 2.0 response object. Exactly one of Result or
// Error is populated; ID echoes the originating request.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      any             `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// NewSuccessResponse builds a success response echoing the request id. The
// result is marshaled in place; a marshal failure degrades to an internal
// error response rather than a half-built envelope.
func NewSuccessResponse(id any, result any) Response {
	raw, err := json.Marshal(result)
	if err != nil {
		return NewErrorResponse(id, ErrorCodeInternalError, fmt.Sprintf("marshal result: %v", err))
	}
	return Response{JSONRPC: Version, Result: raw, ID: id}
}

// NewErrorResponse builds an error response echoing the request id.
func NewErrorResponse(id any, code int, message string) Response {
	return Response{
		JSONRPC: Version,
		Error:   &Error{Code: code, Message: message},
		ID:      id,
	}
}
