// Package mwan reads multi-WAN state from the kmwan daemon. The
// daemon's configuration and live status arrive as two separate
// payloads; Manager joins them into one State and picks the primary
// interface the same way the firmware does.
package mwan

import (
	"context"
	"sort"
	"strings"

	"github.com/glinet-go/glinet/modem"
	"github.com/glinet-go/glinet/pkg/coerce"
	"github.com/glinet-go/glinet/rpc"
)

const namespace = "kmwan"

// Manager reads and joins kmwan state through a logged-in Caller.
type Manager struct {
	caller rpc.Caller
	modems *modem.Manager
}

func NewManager(caller rpc.Caller) *Manager {
	return &Manager{
		caller: caller,
		modems: modem.NewManager(caller),
	}
}

// FetchConfig returns the raw kmwan.get_config payload: the operating
// mode plus per-interface metric and weight.
func (m *Manager) FetchConfig(ctx context.Context) (map[string]interface{}, error) {
	return rpc.FetchObject(ctx, m.caller, namespace, "get_config", nil)
}

// FetchStatus returns the raw kmwan.get_status payload: per-interface
// IPv4 and IPv6 status.
func (m *Manager) FetchStatus(ctx context.Context) (map[string]interface{}, error) {
	return rpc.FetchObject(ctx, m.caller, namespace, "get_status", nil)
}

// State fetches configuration and status and joins them. Interfaces
// named in either payload appear in the result; modem-prefixed
// interfaces additionally get modem status and info attached, in
// lexical order of the interface names. Either fetch failing fails
// the whole read.
func (m *Manager) State(ctx context.Context, preferIPv6 bool) (*State, error) {
	config, err := m.FetchConfig(ctx)
	if err != nil {
		return nil, err
	}
	status, err := m.FetchStatus(ctx)
	if err != nil {
		return nil, err
	}

	interfaces := make(map[string]*Interface)
	var order []*Interface
	seed := func(name string) *Interface {
		if iface, ok := interfaces[name]; ok {
			return iface
		}
		iface := &Interface{Name: name}
		interfaces[name] = iface
		order = append(order, iface)
		return iface
	}

	// First layer: configuration (metric / weight).
	for _, entry := range coerce.Objects(config["interfaces"]) {
		name, _ := coerce.String(entry["interface"])
		if name == "" {
			continue
		}
		iface := seed(name)
		iface.Metric = coerce.IntPtr(entry["metric"])
		iface.Weight = coerce.IntPtr(entry["weight"])
	}

	// Second layer: live status (IPv4 / IPv6 online / offline).
	for _, entry := range coerce.Objects(status["interfaces"]) {
		name, _ := coerce.String(entry["interface"])
		if name == "" {
			continue
		}
		iface := seed(name)
		iface.StatusV4 = ParseStatus(entry["status_v4"])
		iface.StatusV6 = ParseStatus(entry["status_v6"])
	}

	mode := parseMode(config["mode"])
	primary := SelectPrimary(order, mode, preferIPv6)

	if err := m.attachModems(ctx, interfaces); err != nil {
		return nil, err
	}

	state := &State{
		Mode:       mode,
		Interfaces: interfaces,
	}
	if primary != nil {
		state.Primary = primary.Name
	}
	return state, nil
}

// attachModems pairs modem-prefixed interfaces with the entries from
// modem.get_status and modem.get_info. Both lists follow the same
// device order, so pairing is positional against the sorted interface
// names. Interfaces beyond the end of a list get empty details.
func (m *Manager) attachModems(ctx context.Context, interfaces map[string]*Interface) error {
	var names []string
	for name := range interfaces {
		if strings.HasPrefix(name, "modem") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	statuses, err := m.modems.Status(ctx)
	if err != nil {
		return err
	}
	infos, err := m.modems.Info(ctx)
	if err != nil {
		return err
	}

	for idx, name := range names {
		details := &ModemDetails{}
		if idx < len(statuses) {
			details.Status = &statuses[idx]
		}
		if idx < len(infos) {
			details.Info = &infos[idx]
		}
		interfaces[name].Modem = details
	}
	return nil
}

// parseMode reads the kmwan mode value, falling back to failover for
// anything missing or unrecognizable.
func parseMode(v interface{}) Mode {
	n, ok := coerce.Int(v)
	if !ok {
		return ModeFailover
	}
	switch Mode(n) {
	case ModeFailover, ModeLoadBalancing:
		return Mode(n)
	}
	return ModeFailover
}
