package router

import (
	"fmt"

	"github.com/glinet-go/glinet/version"
)

// Info is the device identity from system.get_info.
type Info struct {
	Model           string `json:"model"`
	MAC             string `json:"mac"`
	FactoryMAC      string `json:"factory_mac"`
	SN              string `json:"sn"`
	FirmwareVersion string `json:"firmware_version"`
	FirmwareType    string `json:"firmware_type"`
	FirmwareDate    string `json:"firmware_date"`
	HardwareVersion string `json:"hardware_version"`
	CountryCode     string `json:"country_code"`
	Vendor          string `json:"vendor"`
}

// Version parses the firmware version string.
func (i *Info) Version() (version.Version, error) {
	return version.Parse(i.FirmwareVersion)
}

// Load is the snapshot from system.get_load. LoadAverage carries the
// 1, 5 and 15 minute values; memory sizes are in bytes.
type Load struct {
	LoadAverage []float64 `json:"load_average"`
	MemoryFree  int64     `json:"memory_free"`
	MemoryTotal int64     `json:"memory_total"`
}

// MACInfo is the answer from macclone.get_mac.
type MACInfo struct {
	MAC        string `json:"mac"`
	FactoryMAC string `json:"factory_mac"`
}

// DHCPState is the upstream DHCP detection from edgerouter.get_status.
type DHCPState int

const (
	DHCPDisabled       DHCPState = 0
	DHCPBypassed       DHCPState = 1
	DHCPEnabled        DHCPState = 2
	DHCPCableUnplugged DHCPState = 3
)

func (s DHCPState) String() string {
	switch s {
	case DHCPDisabled:
		return "disabled"
	case DHCPBypassed:
		return "bypassed"
	case DHCPEnabled:
		return "enabled"
	case DHCPCableUnplugged:
		return "cable_unplugged"
	}
	return fmt.Sprintf("dhcp_state(%d)", int(s))
}

// InternetStatus is the upstream connectivity check from
// edgerouter.get_status.
type InternetStatus struct {
	Detected DHCPState `json:"detected"`
	IP       string    `json:"ip"`
	Netmask  string    `json:"netmask"`
	Gateway  string    `json:"gateway"`
	DNS      []string  `json:"dns"`
	Valid    bool      `json:"valid"`
}

// Device is one entry from clients.get_list.
type Device struct {
	MAC     string `json:"mac"`
	IP      string `json:"ip"`
	Name    string `json:"name"`
	Iface   string `json:"iface"`
	Vendor  string `json:"vendor"`
	Online  bool   `json:"online"`
	Remote  bool   `json:"remote"`
	Blocked bool   `json:"blocked"`
}

// StaticLease is one entry from lan.get_static_bind_list.
type StaticLease struct {
	MAC  string `json:"mac"`
	IP   string `json:"ip"`
	Name string `json:"name"`
}

// WiFiInterface is one radio interface from wifi.get_config, flattened
// across devices. Key is nil when redacted.
type WiFiInterface struct {
	Name       string  `json:"name"`
	SSID       string  `json:"ssid"`
	Key        *string `json:"key"`
	Enabled    bool    `json:"enabled"`
	Encryption string  `json:"encryption"`
	Hidden     bool    `json:"hidden"`
	Guest      bool    `json:"guest"`
}

// TailscaleState is the connection state from tailscale.get_status.
type TailscaleState int

const (
	TailscaleDisconnected          TailscaleState = 0
	TailscaleLoginRequired         TailscaleState = 1
	TailscaleAuthorizationRequired TailscaleState = 2
	TailscaleConnected             TailscaleState = 3
	TailscaleConnecting            TailscaleState = 4
)

func (s TailscaleState) String() string {
	switch s {
	case TailscaleDisconnected:
		return "disconnected"
	case TailscaleLoginRequired:
		return "login_required"
	case TailscaleAuthorizationRequired:
		return "authorization_required"
	case TailscaleConnected:
		return "connected"
	case TailscaleConnecting:
		return "connecting"
	}
	return fmt.Sprintf("tailscale_state(%d)", int(s))
}

// TailscaleStatus is the parsed tailscale.get_status payload. The
// firmware answers with an empty list when Tailscale is disconnected
// or not configured; that case surfaces as a nil status.
type TailscaleStatus struct {
	LoginName string         `json:"login_name"`
	Status    TailscaleState `json:"status"`
	AddressV4 string         `json:"address_v4"`
}

// WireGuardState is the client state from wg-client.get_status.
type WireGuardState int

const (
	WireGuardNotStarted WireGuardState = 0
	WireGuardConnected  WireGuardState = 1
	WireGuardConnecting WireGuardState = 2
)

func (s WireGuardState) String() string {
	switch s {
	case WireGuardNotStarted:
		return "not_started"
	case WireGuardConnected:
		return "connected"
	case WireGuardConnecting:
		return "connecting"
	}
	return fmt.Sprintf("wireguard_state(%d)", int(s))
}

// WireGuardStatus is the active client tunnel from wg-client
// get_status. Enabled and TunnelID only exist on firmwares that moved
// to the tunnel list shape.
type WireGuardStatus struct {
	Name     string         `json:"name"`
	GroupID  int            `json:"group_id"`
	PeerID   int            `json:"peer_id"`
	Status   WireGuardState `json:"status"`
	Domain   string         `json:"domain"`
	Port     int            `json:"port"`
	IPv4     string         `json:"ipv4"`
	IPv6     string         `json:"ipv6"`
	RxBytes  int64          `json:"rx_bytes"`
	TxBytes  int64          `json:"tx_bytes"`
	Proxy    bool           `json:"proxy"`
	Log      string         `json:"log"`
	Enabled  *bool          `json:"enabled,omitempty"`
	TunnelID *int           `json:"tunnel_id,omitempty"`
}

// WireGuardPeer is one configured peer, flattened from the group
// hierarchy of wg-client.get_all_config_list.
type WireGuardPeer struct {
	Name    string `json:"name"`
	GroupID int    `json:"group_id"`
	PeerID  int    `json:"peer_id"`
}
