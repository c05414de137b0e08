// Package rpc defines the JSON-RPC capability used by the higher level
// packages. GL.iNet firmwares expose their API as namespaced calls
// ("call", [sid, namespace, method, params]); this package abstracts a
// logged-in session behind the Caller interface so that status readers
// can be tested without any transport.
package rpc

import "context"

// Caller executes one namespaced call against the router and, when
// result is a non-nil pointer, decodes the result object into it.
// Implementations return *RPCError for error objects carried in the
// response and *TransportError for failures before a response arrived.
type Caller interface {
	Call(ctx context.Context, namespace, method string, params interface{}, result interface{}) error
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, namespace, method string, params interface{}, result interface{}) error

func (f CallerFunc) Call(ctx context.Context, namespace, method string, params interface{}, result interface{}) error {
	return f(ctx, namespace, method, params, result)
}

// Fetch calls namespace.method and returns the decoded result.
func Fetch[T any](ctx context.Context, c Caller, namespace, method string, params interface{}) (T, error) {
	var out T
	if err := c.Call(ctx, namespace, method, params, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// FetchObject is Fetch specialised to the loosely-typed payloads the
// parsing layers consume. A null result decodes to an empty object.
func FetchObject(ctx context.Context, c Caller, namespace, method string, params interface{}) (map[string]interface{}, error) {
	payload, err := Fetch[map[string]interface{}](ctx, c, namespace, method, params)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return payload, nil
}
