package transmission

import "fmt"

// RPCError is a logical failure reported by the daemon in either dialect.
// The message is the daemon's own text and is never retried.
type RPCError struct {
	Method  string
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("transmission rpc %s: %s", e.Method, e.Message)
}

// TransportError wraps network, HTTP and decode failures. The client never
// retries these; retry policy belongs to the caller.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transmission transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// dialectError is the internal "method name not recognized" signal. It is
// absorbed by the legacy fallback and must never reach a caller.
type dialectError struct {
	msg string
}

func (e *dialectError) Error() string { return e.msg }
