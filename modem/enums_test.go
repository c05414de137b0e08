package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetworkMode_Label(t *testing.T) {
	assert.Equal(t, "2G", ModeGSM.Label())
	assert.Equal(t, "3G", ModeUMTS.Label())
	assert.Equal(t, "LTE", ModeLTE.Label())
	assert.Equal(t, "5G", ModeFiveG.Label())
	assert.Equal(t, "4G+", ModeLTEAdvanced.Label())
	assert.Equal(t, "network_mode(9)", NetworkMode(9).Label())
}

func TestConnectionState_String(t *testing.T) {
	assert.Equal(t, "unknown", ConnectionUnknown.String())
	assert.Equal(t, "disconnected", ConnectionDisconnected.String())
	assert.Equal(t, "connected", ConnectionConnected.String())
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "registered", RegistrationRegistered.String())
	assert.Equal(t, "needs_pin", RegistrationNeedsPIN.String())
	assert.Equal(t, "connecting", NetworkConnecting.String())
	assert.Equal(t, "excellent", SignalExcellent.String())
	assert.Equal(t, "enabled", AutoSwitchEnabled.String())
	assert.Equal(t, "built-in", TypeBuiltIn.String())
	assert.Equal(t, "type(9)", Type(9).String())
}

func TestParseEnum_Tolerance(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  *SignalStrength
	}{
		{name: "in range", value: float64(2), want: ptrStrength(SignalFair)},
		{name: "numeric string", value: "4", want: ptrStrength(SignalExcellent)},
		{name: "truncating float", value: 3.7, want: ptrStrength(SignalGood)},
		{name: "out of range", value: float64(9), want: nil},
		{name: "word", value: "strong", want: nil},
		{name: "nil", value: nil, want: nil},
		{name: "object", value: map[string]interface{}{}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseEnum(tt.value, SignalStrength.valid)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func ptrStrength(s SignalStrength) *SignalStrength {
	return &s
}
