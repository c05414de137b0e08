package mwan

import (
	"fmt"
	"math"
	"strings"

	"github.com/glinet-go/glinet/pkg/coerce"
)

// Status is an interface's connectivity as reported by kmwan:
// 0 = online, 1 = offline, with 2 = error on some firmwares.
type Status int

const (
	StatusOnline  Status = 0
	StatusOffline Status = 1
	StatusError   Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Ptr returns a pointer to s, for building optional status values.
func (s Status) Ptr() *Status {
	return &s
}

// statusKeys are probed in order when a status arrives as an object.
var statusKeys = [...]string{"up", "online", "connected", "link", "state", "status"}

// ParseStatus converts whatever a firmware put in a status field into
// a Status, or nil when the value is missing or unrecognizable. It
// never fails: kmwan payloads have carried plain integers, booleans,
// keyword strings, numeric strings and nested objects.
//
// Objects are probed key by key; a present key whose value cannot be
// classified falls through to the next key. Bare values that survive
// every other rule are read as integers (floats truncate toward zero)
// and must land exactly on an enum value.
func ParseStatus(value interface{}) *Status {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case Status:
		return v.Ptr()
	case *Status:
		if v == nil {
			return nil
		}
		return (*v).Ptr()
	case bool:
		return statusFromBool(v)
	case map[string]interface{}:
		for _, key := range statusKeys {
			raw, present := v[key]
			if !present {
				continue
			}
			switch inner := raw.(type) {
			case bool:
				return statusFromBool(inner)
			case string:
				if st := statusFromKeyword(inner); st != nil {
					return st
				}
			default:
				if n, ok := integerValue(raw); ok {
					if st := statusFromCode(n); st != nil {
						return st
					}
				}
			}
		}
		return nil
	case string:
		if st := statusFromKeyword(v); st != nil {
			return st
		}
	}

	n, ok := coerce.Int(value)
	if !ok {
		return nil
	}
	return statusFromCode(n)
}

func statusFromBool(b bool) *Status {
	if b {
		return StatusOnline.Ptr()
	}
	return StatusOffline.Ptr()
}

func statusFromKeyword(s string) *Status {
	switch strings.ToLower(s) {
	case "up", "online", "connected":
		return StatusOnline.Ptr()
	case "down", "offline", "disconnected":
		return StatusOffline.Ptr()
	}
	return nil
}

func statusFromCode(n int) *Status {
	switch Status(n) {
	case StatusOnline, StatusOffline, StatusError:
		return Status(n).Ptr()
	}
	return nil
}

// integerValue extracts an exact integer, rejecting fractional floats.
func integerValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}
