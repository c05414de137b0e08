package mwan

import "github.com/glinet-go/glinet/modem"

// Mode is the multi-WAN operating mode from kmwan.get_config.
type Mode int

const (
	ModeFailover      Mode = 0
	ModeLoadBalancing Mode = 1
)

func (m Mode) String() string {
	switch m {
	case ModeFailover:
		return "failover"
	case ModeLoadBalancing:
		return "load_balancing"
	}
	return "unknown"
}

// ModemDetails carries the modem records attached to a modem-backed
// interface. Either field may be nil when the modem lists are shorter
// than the interface list.
type ModemDetails struct {
	Status *modem.StatusEntry `json:"status,omitempty"`
	Info   *modem.Info        `json:"info,omitempty"`
}

// Interface is the joined view of one kmwan interface: metric and
// weight from the configuration, per-stack status from the live
// status, and modem details for modem-backed interfaces.
type Interface struct {
	Name     string        `json:"name"`
	Metric   *int          `json:"metric,omitempty"`
	Weight   *int          `json:"weight,omitempty"`
	StatusV4 *Status       `json:"status_v4,omitempty"`
	StatusV6 *Status       `json:"status_v6,omitempty"`
	Modem    *ModemDetails `json:"modem,omitempty"`
}

// IsOnline reports whether the interface is usable. The IPv4 status
// decides when known; preferIPv6 flips the precedence. An interface
// with no known status on either stack is offline.
func (i *Interface) IsOnline(preferIPv6 bool) bool {
	if preferIPv6 && i.StatusV6 != nil {
		return *i.StatusV6 == StatusOnline
	}
	if i.StatusV4 != nil {
		return *i.StatusV4 == StatusOnline
	}
	if i.StatusV6 != nil {
		return *i.StatusV6 == StatusOnline
	}
	return false
}

// State is one frozen multi-WAN snapshot. Primary is the name of the
// selected interface, or empty when nothing is online.
type State struct {
	Mode       Mode                  `json:"mode"`
	Interfaces map[string]*Interface `json:"interfaces"`
	Primary    string                `json:"primary,omitempty"`
}
