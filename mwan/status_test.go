package mwan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glinet-go/glinet/mwan"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  *mwan.Status
	}{
		// Missing values stay unknown.
		{name: "nil", value: nil, want: nil},

		// Already-parsed values pass through.
		{name: "status value", value: mwan.StatusError, want: mwan.StatusError.Ptr()},
		{name: "status pointer", value: mwan.StatusOnline.Ptr(), want: mwan.StatusOnline.Ptr()},
		{name: "nil status pointer", value: (*mwan.Status)(nil), want: nil},

		// Booleans.
		{name: "true", value: true, want: mwan.StatusOnline.Ptr()},
		{name: "false", value: false, want: mwan.StatusOffline.Ptr()},

		// Objects are probed for known keys.
		{name: "up true", value: obj{"up": true}, want: mwan.StatusOnline.Ptr()},
		{name: "up false", value: obj{"up": false}, want: mwan.StatusOffline.Ptr()},
		{name: "link keyword", value: obj{"link": "up"}, want: mwan.StatusOnline.Ptr()},
		{name: "state mixed case", value: obj{"state": "Disconnected"}, want: mwan.StatusOffline.Ptr()},
		{name: "status integer", value: obj{"status": float64(2)}, want: mwan.StatusError.Ptr()},
		{name: "status out of range", value: obj{"status": float64(7)}, want: nil},
		{name: "unknown keyword in object", value: obj{"online": "yes"}, want: nil},
		{name: "probe order prefers up", value: obj{"status": float64(1), "up": true}, want: mwan.StatusOnline.Ptr()},
		{name: "unclassifiable key falls through", value: obj{"up": "weird", "state": float64(1)}, want: mwan.StatusOffline.Ptr()},
		{name: "fractional float falls through", value: obj{"up": 1.5, "online": true}, want: mwan.StatusOnline.Ptr()},
		{name: "numeric string in object is not classified", value: obj{"up": "1", "state": true}, want: mwan.StatusOnline.Ptr()},
		{name: "no known keys", value: obj{"iface": "wan"}, want: nil},
		{name: "empty object", value: obj{}, want: nil},

		// Keyword strings.
		{name: "online", value: "online", want: mwan.StatusOnline.Ptr()},
		{name: "UP", value: "UP", want: mwan.StatusOnline.Ptr()},
		{name: "connected", value: "connected", want: mwan.StatusOnline.Ptr()},
		{name: "offline", value: "offline", want: mwan.StatusOffline.Ptr()},
		{name: "Down", value: "Down", want: mwan.StatusOffline.Ptr()},
		{name: "disconnected", value: "disconnected", want: mwan.StatusOffline.Ptr()},

		// Bare integer-like values.
		{name: "zero", value: float64(0), want: mwan.StatusOnline.Ptr()},
		{name: "one", value: float64(1), want: mwan.StatusOffline.Ptr()},
		{name: "two", value: float64(2), want: mwan.StatusError.Ptr()},
		{name: "three", value: float64(3), want: nil},
		{name: "negative", value: float64(-1), want: nil},
		{name: "float truncates", value: 2.9, want: mwan.StatusError.Ptr()},
		{name: "small negative float truncates to zero", value: -0.5, want: mwan.StatusOnline.Ptr()},
		{name: "numeric string", value: "2", want: mwan.StatusError.Ptr()},
		{name: "padded numeric string", value: " 1 ", want: mwan.StatusOffline.Ptr()},
		{name: "decimal string", value: "1.5", want: nil},
		{name: "word", value: "flapping", want: nil},
		{name: "array", value: []interface{}{1}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mwan.ParseStatus(tt.value)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				if assert.NotNil(t, got) {
					assert.Equal(t, *tt.want, *got)
				}
			}
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "online", mwan.StatusOnline.String())
	assert.Equal(t, "offline", mwan.StatusOffline.String())
	assert.Equal(t, "error", mwan.StatusError.String())
	assert.Equal(t, "status(9)", mwan.Status(9).String())
}

// obj shortens status payload literals.
type obj = map[string]interface{}
