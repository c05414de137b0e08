// Package rpctest provides an in-memory rpc.Caller for tests. Payloads
// are round-tripped through encoding/json so results carry the same
// loose types (float64 numbers, map[string]interface{} objects) a real
// transport would produce.
package rpctest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/glinet-go/glinet/rpc"
)

// Call records one invocation seen by the fake.
type Call struct {
	Namespace string
	Method    string
	Params    interface{}
}

// Caller is a scripted rpc.Caller. Responses are keyed by
// "namespace.method"; unscripted methods answer with the firmware's
// method-not-found error.
type Caller struct {
	mu        sync.Mutex
	responses map[string]json.RawMessage
	errs      map[string]error
	calls     []Call
}

func NewCaller() *Caller {
	return &Caller{
		responses: make(map[string]json.RawMessage),
		errs:      make(map[string]error),
	}
}

func key(namespace, method string) string {
	return namespace + "." + method
}

// Respond scripts a result payload for namespace.method.
func (c *Caller) Respond(namespace, method string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("rpctest: cannot marshal payload for %s.%s: %v", namespace, method, err))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[key(namespace, method)] = raw
	delete(c.errs, key(namespace, method))
}

// RespondJSON scripts a raw JSON result, letting tests state firmware
// payloads verbatim.
func (c *Caller) RespondJSON(namespace, method, payload string) {
	if !json.Valid([]byte(payload)) {
		panic(fmt.Sprintf("rpctest: invalid JSON payload for %s.%s", namespace, method))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[key(namespace, method)] = json.RawMessage(payload)
	delete(c.errs, key(namespace, method))
}

// Fail scripts an error for namespace.method.
func (c *Caller) Fail(namespace, method string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs[key(namespace, method)] = err
	delete(c.responses, key(namespace, method))
}

// Call implements rpc.Caller.
func (c *Caller) Call(ctx context.Context, namespace, method string, params, result interface{}) error {
	if err := ctx.Err(); err != nil {
		return rpc.NewTransportError(key(namespace, method), err)
	}

	c.mu.Lock()
	c.calls = append(c.calls, Call{Namespace: namespace, Method: method, Params: params})
	err, failed := c.errs[key(namespace, method)]
	raw, scripted := c.responses[key(namespace, method)]
	c.mu.Unlock()

	if failed {
		return err
	}
	if !scripted {
		return rpc.NewRPCError(rpc.CodeMethodNotFound, "")
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return rpc.NewTransportError(key(namespace, method), err)
	}
	return nil
}

// Calls returns every recorded invocation in order.
func (c *Caller) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallCount returns how many times namespace.method was invoked.
func (c *Caller) CallCount(namespace, method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.Namespace == namespace && call.Method == method {
			n++
		}
	}
	return n
}
