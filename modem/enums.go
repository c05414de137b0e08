package modem

import (
	"fmt"

	"github.com/glinet-go/glinet/pkg/coerce"
)

// ConnectionState is derived from the network status block. It is the
// one field of a status entry that is always set.
type ConnectionState int

const (
	ConnectionUnknown      ConnectionState = -1
	ConnectionDisconnected ConnectionState = 0
	ConnectionConnected    ConnectionState = 1
)

func (s ConnectionState) String() string {
	switch s {
	case ConnectionUnknown:
		return "unknown"
	case ConnectionDisconnected:
		return "disconnected"
	case ConnectionConnected:
		return "connected"
	}
	return fmt.Sprintf("connection_state(%d)", int(s))
}

// RegistrationStatus is the SIM registration status.
type RegistrationStatus int

const (
	RegistrationRegistered   RegistrationStatus = 0
	RegistrationUnregistered RegistrationStatus = 1
	RegistrationNeedsPIN     RegistrationStatus = 2
)

func (s RegistrationStatus) valid() bool {
	switch s {
	case RegistrationRegistered, RegistrationUnregistered, RegistrationNeedsPIN:
		return true
	}
	return false
}

func (s RegistrationStatus) String() string {
	switch s {
	case RegistrationRegistered:
		return "registered"
	case RegistrationUnregistered:
		return "unregistered"
	case RegistrationNeedsPIN:
		return "needs_pin"
	}
	return fmt.Sprintf("registration_status(%d)", int(s))
}

// NetworkStatus is the modem's network block status.
type NetworkStatus int

const (
	NetworkConnected  NetworkStatus = 0
	NetworkConnecting NetworkStatus = 1
)

func (s NetworkStatus) valid() bool {
	switch s {
	case NetworkConnected, NetworkConnecting:
		return true
	}
	return false
}

func (s NetworkStatus) String() string {
	switch s {
	case NetworkConnected:
		return "connected"
	case NetworkConnecting:
		return "connecting"
	}
	return fmt.Sprintf("network_status(%d)", int(s))
}

// NetworkMode is the radio access technology reported in the signal
// section. The values are the firmware's, hence the gap before 41.
type NetworkMode int

const (
	ModeGSM         NetworkMode = 2
	ModeUMTS        NetworkMode = 3
	ModeLTE         NetworkMode = 4
	ModeFiveG       NetworkMode = 5
	ModeLTEAdvanced NetworkMode = 41
)

func (m NetworkMode) valid() bool {
	switch m {
	case ModeGSM, ModeUMTS, ModeLTE, ModeFiveG, ModeLTEAdvanced:
		return true
	}
	return false
}

// Label returns the user-facing name of the mode.
func (m NetworkMode) Label() string {
	switch m {
	case ModeGSM:
		return "2G"
	case ModeUMTS:
		return "3G"
	case ModeLTE:
		return "LTE"
	case ModeFiveG:
		return "5G"
	case ModeLTEAdvanced:
		return "4G+"
	}
	return fmt.Sprintf("network_mode(%d)", int(m))
}

// SignalStrength is the firmware's overall signal bucket.
type SignalStrength int

const (
	SignalPoor      SignalStrength = 1
	SignalFair      SignalStrength = 2
	SignalGood      SignalStrength = 3
	SignalExcellent SignalStrength = 4
)

func (s SignalStrength) valid() bool {
	return s >= SignalPoor && s <= SignalExcellent
}

func (s SignalStrength) String() string {
	switch s {
	case SignalPoor:
		return "poor"
	case SignalFair:
		return "fair"
	case SignalGood:
		return "good"
	case SignalExcellent:
		return "excellent"
	}
	return fmt.Sprintf("signal_strength(%d)", int(s))
}

// AutoSwitchState is the SIM auto-switch setting on dual-SIM devices.
// Note the inverted encoding: 0 means enabled.
type AutoSwitchState int

const (
	AutoSwitchEnabled  AutoSwitchState = 0
	AutoSwitchDisabled AutoSwitchState = 1
)

func (s AutoSwitchState) valid() bool {
	switch s {
	case AutoSwitchEnabled, AutoSwitchDisabled:
		return true
	}
	return false
}

func (s AutoSwitchState) String() string {
	switch s {
	case AutoSwitchEnabled:
		return "enabled"
	case AutoSwitchDisabled:
		return "disabled"
	}
	return fmt.Sprintf("auto_switch_state(%d)", int(s))
}

// Type classifies the modem hardware.
type Type int

const (
	TypeBuiltIn     Type = 0
	TypeExternal    Type = 1
	TypeUnsupported Type = 2
)

func (t Type) valid() bool {
	switch t {
	case TypeBuiltIn, TypeExternal, TypeUnsupported:
		return true
	}
	return false
}

func (t Type) String() string {
	switch t {
	case TypeBuiltIn:
		return "built-in"
	case TypeExternal:
		return "external"
	case TypeUnsupported:
		return "unsupported"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// parseEnum converts an integer-like JSON value into an enum pointer.
// Out-of-range or non-integer values come back nil, never an error.
func parseEnum[E ~int](v interface{}, valid func(E) bool) *E {
	if v == nil {
		return nil
	}
	n, ok := coerce.Int(v)
	if !ok {
		return nil
	}
	e := E(n)
	if !valid(e) {
		return nil
	}
	return &e
}
