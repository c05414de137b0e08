// Package modem reads cellular modem state over the router's RPC
// surface: runtime status, hardware info and per-tower cell details.
// Payloads vary a lot between modem vendors, so parsing is tolerant:
// fields that are missing or unreadable become nil instead of errors.
package modem

import (
	"context"
	"strings"

	"github.com/glinet-go/glinet/pkg/coerce"
	"github.com/glinet-go/glinet/rpc"
)

const namespace = "modem"

// Manager reads modem state through a logged-in Caller.
type Manager struct {
	caller rpc.Caller
}

func NewManager(caller rpc.Caller) *Manager {
	return &Manager{caller: caller}
}

// FetchStatus returns the raw modem.get_status payload.
func (m *Manager) FetchStatus(ctx context.Context) (map[string]interface{}, error) {
	return rpc.FetchObject(ctx, m.caller, namespace, "get_status", map[string]interface{}{})
}

// FetchInfo returns the raw modem.get_info payload.
func (m *Manager) FetchInfo(ctx context.Context) (map[string]interface{}, error) {
	return rpc.FetchObject(ctx, m.caller, namespace, "get_info", map[string]interface{}{})
}

// FetchCells returns the raw modem.get_cells_info payload for a bus.
func (m *Manager) FetchCells(ctx context.Context, bus string) (map[string]interface{}, error) {
	return rpc.FetchObject(ctx, m.caller, namespace, "get_cells_info", map[string]interface{}{"bus": bus})
}

// Status returns one parsed entry per modem. For every entry that
// reports a bus, the cell list is fetched as well; a failed cell fetch
// leaves Cells nil and does not fail the status read.
func (m *Manager) Status(ctx context.Context) ([]StatusEntry, error) {
	payload, err := m.FetchStatus(ctx)
	if err != nil {
		return nil, err
	}

	var entries []StatusEntry
	for _, entry := range coerce.Objects(payload["modems"]) {
		var cells []CellInfo
		if bus := coerce.StringPtr(entry["bus"]); bus != nil {
			if parsed, err := m.CellsInfo(ctx, *bus); err == nil {
				cells = parsed
			}
		}
		entries = append(entries, parseStatusEntry(entry, cells))
	}
	return entries, nil
}

// Info returns one parsed entry per modem from modem.get_info.
func (m *Manager) Info(ctx context.Context) ([]Info, error) {
	payload, err := m.FetchInfo(ctx)
	if err != nil {
		return nil, err
	}

	var infos []Info
	for _, entry := range coerce.Objects(payload["modems"]) {
		infos = append(infos, parseInfo(entry))
	}
	return infos, nil
}

// CellsInfo returns the parsed cell list for a modem bus. It returns
// nil when the payload carries no usable cells.
func (m *Manager) CellsInfo(ctx context.Context, bus string) ([]CellInfo, error) {
	payload, err := m.FetchCells(ctx, bus)
	if err != nil {
		return nil, err
	}
	return parseCells(payload), nil
}

func parseInfo(entry map[string]interface{}) Info {
	var simcard *SIMCard
	if sim, ok := coerce.Map(entry["simcard"]); ok && len(sim) > 0 {
		simcard = &SIMCard{
			ICCID:       coerce.StringPtr(sim["iccid"]),
			PhoneNumber: coerce.StringPtr(sim["phone_number"]),
			MCC:         coerce.StringPtr(sim["mcc"]),
			MNC:         coerce.StringPtr(sim["mnc"]),
		}
	}

	var protocols, devices []string
	if list, ok := coerce.StringSlice(entry["protocols"]); ok {
		protocols = list
	}
	if list, ok := coerce.StringSlice(entry["devices"]); ok {
		devices = list
	}

	return Info{
		Bus:              coerce.StringPtr(entry["bus"]),
		Type:             parseEnum(entry["type"], Type.valid),
		ATPort:           coerce.StringPtr(entry["at_port"]),
		DataPort:         coerce.StringPtr(entry["data_port"]),
		SMSSupport:       coerce.BoolPtr(entry["sms_support"]),
		LockTowerSupport: coerce.BoolPtr(entry["lock_tower_support"]),
		QcfgUnsupport:    coerce.BoolPtr(entry["qcfg_unsupport"]),
		IMEI:             coerce.StringPtr(entry["imei"]),
		Name:             coerce.StringPtr(entry["name"]),
		Version:          coerce.StringPtr(entry["version"]),
		Vendor:           coerce.StringPtr(entry["vendor"]),
		Protocols:        protocols,
		Devices:          devices,
		SIMCard:          simcard,
	}
}

func parseStatusEntry(entry map[string]interface{}, cells []CellInfo) StatusEntry {
	// Reading a missing key from a nil map is fine, so absent simcard
	// and network blocks need no special casing.
	sim, _ := coerce.Map(entry["simcard"])
	signal, _ := coerce.Map(sim["signal"])
	networkEntry, _ := coerce.Map(entry["network"])

	network, connState := parseNetwork(networkEntry)
	passthrough, _ := coerce.Map(entry["passthrough"])

	return StatusEntry{
		Bus:             coerce.StringPtr(entry["bus"]),
		CurrentSIM:      coerce.IntPtr(entry["current_sim"]),
		SwitchStatus:    parseEnum(entry["switch_status"], AutoSwitchState.valid),
		SIMStatus:       parseEnum(sim["status"], RegistrationStatus.valid),
		SIMOperator:     coerce.StringPtr(sim["carrier"]),
		SIMICCID:        coerce.StringPtr(sim["iccid"]),
		SIMPhoneNumber:  coerce.StringPtr(sim["phone_number"]),
		SIMMCC:          coerce.StringPtr(sim["mcc"]),
		SIMMNC:          coerce.StringPtr(sim["mnc"]),
		Signal:          parseSignal(signal),
		Network:         network,
		Cells:           cells,
		ConnectionState: connState,
		NewSMSCount:     coerce.IntPtr(entry["new_sms_count"]),
		Passthrough:     passthrough,
		ErrCode:         coerce.IntPtr(entry["err_code"]),
		ErrMsg:          coerce.StringPtr(entry["err_msg"]),
	}
}

func parseSignal(signal map[string]interface{}) *Signal {
	if len(signal) == 0 {
		return nil
	}
	return &Signal{
		Mode:     parseEnum(signal["mode"], NetworkMode.valid),
		Strength: parseEnum(signal["strength"], SignalStrength.valid),
		RSSI:     coerce.IntPtr(signal["rssi"]),
		RSRP:     coerce.IntPtr(signal["rsrp"]),
		RSRQ:     coerce.IntPtr(signal["rsrq"]),
		SINR:     coerce.IntPtr(signal["sinr"]),
		ECIO:     coerce.IntPtr(signal["ecio"]),
	}
}

func parseNetwork(entry map[string]interface{}) (*Network, ConnectionState) {
	if len(entry) == 0 {
		return nil, ConnectionUnknown
	}

	status := parseNetworkStatus(entry["status"])
	connState := ConnectionUnknown
	if status != nil {
		switch *status {
		case NetworkConnected:
			connState = ConnectionConnected
		case NetworkConnecting:
			connState = ConnectionDisconnected
		}
	}

	network := &Network{
		Status:       status,
		TrafficTotal: coerce.IntPtr(entry["traffic_total"]),
		IPv4:         parseNetworkIP(entry["ipv4"]),
		IPv6:         parseNetworkIP(entry["ipv6"]),
	}
	return network, connState
}

// parseNetworkStatus accepts the spellings seen in the wild: the
// keywords "connected"/"connecting" and the enum integers, including
// integers arriving as strings.
func parseNetworkStatus(v interface{}) *NetworkStatus {
	if s, ok := v.(string); ok {
		switch strings.ToLower(s) {
		case "connected":
			st := NetworkConnected
			return &st
		case "connecting":
			st := NetworkConnecting
			return &st
		}
	}
	return parseEnum(v, NetworkStatus.valid)
}

func parseNetworkIP(v interface{}) *NetworkIP {
	ip, ok := coerce.Map(v)
	if !ok {
		return nil
	}
	var dns []string
	if list, ok := coerce.StringSlice(ip["dns"]); ok {
		dns = list
	}
	return &NetworkIP{
		IP:      coerce.StringPtr(ip["ip"]),
		Netmask: coerce.StringPtr(ip["netmask"]),
		Gateway: coerce.StringPtr(ip["gateway"]),
		DNS:     dns,
	}
}

// parseCells handles both payload shapes seen across firmwares: the
// cell list at the top level and the cell list nested under "result".
func parseCells(payload map[string]interface{}) []CellInfo {
	body := payload
	if raw, present := payload["result"]; present {
		nested, ok := coerce.Map(raw)
		if !ok {
			return nil
		}
		body = nested
	}

	list, ok := coerce.Slice(body["cells"])
	if !ok {
		return nil
	}

	var cells []CellInfo
	for _, item := range list {
		cell, ok := coerce.Map(item)
		if !ok {
			continue
		}
		cells = append(cells, CellInfo{
			ULBandwidth: coerce.StringPtr(cell["ul_bandwidth"]),
			DLBandwidth: coerce.StringPtr(cell["dl_bandwidth"]),
			RSRP:        coerce.IntPtr(cell["rsrp"]),
			ID:          coerce.StringPtr(cell["id"]),
			RSSI:        coerce.IntPtr(cell["rssi"]),
			TXChannel:   coerce.StringPtr(cell["tx_channel"]),
			SINRLevel:   coerce.IntPtr(cell["sinr_level"]),
			RSRQLevel:   coerce.IntPtr(cell["rsrq_level"]),
			SINR:        coerce.IntPtr(cell["sinr"]),
			RSRQ:        coerce.IntPtr(cell["rsrq"]),
			RSSILevel:   coerce.IntPtr(cell["rssi_level"]),
			RSRPLevel:   coerce.IntPtr(cell["rsrp_level"]),
			Mode:        coerce.StringPtr(cell["mode"]),
			Band:        coerce.IntPtr(cell["band"]),
			Type:        coerce.StringPtr(cell["type"]),
		})
	}
	// An empty parsed list reads the same as no cell data at all.
	return cells
}
