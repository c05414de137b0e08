package sim

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Scenario describes the firmware state the simulator serves. A TOML
// overlay replaces whichever sections it names; everything else keeps
// the built-in defaults.
type Scenario struct {
	Device      Device     `toml:"device"`
	Internet    Internet   `toml:"internet"`
	MWAN        MWAN       `toml:"mwan"`
	Modems      []Modem    `toml:"modems"`
	Clients     []Client   `toml:"clients"`
	Leases      []Lease    `toml:"leases"`
	WiFi        []WiFi     `toml:"wifi"`
	Tailscale   *Tailscale `toml:"tailscale"`
	WireGuard   WireGuard  `toml:"wireguard"`
	Unreachable []string   `toml:"unreachable"`
	Failures    []Failure  `toml:"failures"`
}

type Device struct {
	Model           string    `toml:"model"`
	FirmwareVersion string    `toml:"firmware_version"`
	FirmwareType    string    `toml:"firmware_type"`
	HardwareVersion string    `toml:"hardware_version"`
	MAC             string    `toml:"mac"`
	FactoryMAC      string    `toml:"factory_mac"`
	SN              string    `toml:"sn"`
	CountryCode     string    `toml:"country_code"`
	Vendor          string    `toml:"vendor"`
	Uptime          int       `toml:"uptime"`
	LoadAverage     []float64 `toml:"load_average"`
	MemoryTotal     int64     `toml:"memory_total"`
	MemoryFree      int64     `toml:"memory_free"`
}

type Internet struct {
	Detected int      `toml:"detected"`
	IP       string   `toml:"ip"`
	Netmask  string   `toml:"netmask"`
	Gateway  string   `toml:"gateway"`
	DNS      []string `toml:"dns"`
	Valid    bool     `toml:"valid"`
}

type MWAN struct {
	Mode       int         `toml:"mode"`
	Interfaces []Interface `toml:"interfaces"`
}

type Interface struct {
	Name     string `toml:"name"`
	Metric   int    `toml:"metric"`
	Weight   int    `toml:"weight"`
	OnlineV4 bool   `toml:"online_v4"`
	OnlineV6 bool   `toml:"online_v6"`
}

type Modem struct {
	Bus         string `toml:"bus"`
	Name        string `toml:"name"`
	IMEI        string `toml:"imei"`
	Carrier     string `toml:"carrier"`
	ICCID       string `toml:"iccid"`
	NetworkMode int    `toml:"network_mode"`
	Strength    int    `toml:"strength"`
	RSSI        int    `toml:"rssi"`
	RSRP        int    `toml:"rsrp"`
	RSRQ        int    `toml:"rsrq"`
	SINR        int    `toml:"sinr"`
	Connected   bool   `toml:"connected"`
	Cells       []Cell `toml:"cells"`
}

type Cell struct {
	ID   string `toml:"id"`
	Band int    `toml:"band"`
	RSRP int    `toml:"rsrp"`
	RSRQ int    `toml:"rsrq"`
}

type Client struct {
	MAC    string `toml:"mac"`
	IP     string `toml:"ip"`
	Name   string `toml:"name"`
	Iface  string `toml:"iface"`
	Online bool   `toml:"online"`
}

type Lease struct {
	MAC  string `toml:"mac"`
	IP   string `toml:"ip"`
	Name string `toml:"name"`
}

type WiFi struct {
	Device     string `toml:"device"`
	Name       string `toml:"name"`
	SSID       string `toml:"ssid"`
	Key        string `toml:"key"`
	Encryption string `toml:"encryption"`
	Enabled    bool   `toml:"enabled"`
	Guest      bool   `toml:"guest"`
}

type Tailscale struct {
	LoginName string `toml:"login_name"`
	Status    int    `toml:"status"`
	AddressV4 string `toml:"address_v4"`
}

type WireGuard struct {
	Tunnel *WireGuardTunnel `toml:"tunnel"`
	Groups []WireGuardGroup `toml:"groups"`
}

type WireGuardTunnel struct {
	Name    string `toml:"name"`
	GroupID int    `toml:"group_id"`
	PeerID  int    `toml:"peer_id"`
	Status  int    `toml:"status"`
	IPv4    string `toml:"ipv4"`
	RxBytes int64  `toml:"rx_bytes"`
	TxBytes int64  `toml:"tx_bytes"`
}

type WireGuardGroup struct {
	Name  string          `toml:"name"`
	ID    int             `toml:"id"`
	Peers []WireGuardPeer `toml:"peers"`
}

type WireGuardPeer struct {
	Name string `toml:"name"`
	ID   int    `toml:"id"`
}

// Failure injects an RPC error for one namespace.method.
type Failure struct {
	Namespace string `toml:"namespace"`
	Method    string `toml:"method"`
	Code      int    `toml:"code"`
	Message   string `toml:"message"`
}

// DefaultScenario is a healthy dual-WAN router: an ethernet uplink, a
// cellular fallback with live signal data, a handful of clients and a
// WireGuard tunnel.
func DefaultScenario() *Scenario {
	return &Scenario{
		Device: Device{
			Model:           "mt6000",
			FirmwareVersion: "4.5.16",
			FirmwareType:    "release",
			HardwareVersion: "1.0",
			MAC:             "94:83:C4:A0:00:01",
			FactoryMAC:      "94:83:C4:A0:00:01",
			SN:              "c4a0000112345",
			CountryCode:     "GB",
			Vendor:          "glinet",
			Uptime:          86400,
			LoadAverage:     []float64{0.25, 0.35, 0.3},
			MemoryTotal:     1073741824,
			MemoryFree:      412000256,
		},
		Internet: Internet{
			Detected: 2,
			IP:       "82.15.178.44",
			Netmask:  "255.255.254.0",
			Gateway:  "82.15.178.1",
			DNS:      []string{"82.15.176.1"},
			Valid:    true,
		},
		MWAN: MWAN{
			Mode: 0,
			Interfaces: []Interface{
				{Name: "wan", Metric: 10, Weight: 2, OnlineV4: true, OnlineV6: false},
				{Name: "modem_0001", Metric: 20, Weight: 1, OnlineV4: true, OnlineV6: false},
			},
		},
		Modems: []Modem{
			{
				Bus:         "0001:01:00.0",
				Name:        "RM520N-GL",
				IMEI:        "867400060123456",
				Carrier:     "Mobilly",
				ICCID:       "8944500212345678901",
				NetworkMode: 5,
				Strength:    3,
				RSSI:        -58,
				RSRP:        -94,
				RSRQ:        -10,
				SINR:        16,
				Connected:   true,
				Cells: []Cell{
					{ID: "66486", Band: 20, RSRP: -94, RSRQ: -11},
					{ID: "66487", Band: 3, RSRP: -101, RSRQ: -14},
				},
			},
		},
		Clients: []Client{
			{MAC: "AA:BB:CC:00:00:01", IP: "192.168.8.100", Name: "laptop", Iface: "wlan1", Online: true},
			{MAC: "AA:BB:CC:00:00:02", IP: "192.168.8.101", Name: "printer", Iface: "eth1", Online: false},
			{MAC: "AA:BB:CC:00:00:03", IP: "192.168.8.102", Name: "phone", Iface: "wlan1", Online: true},
		},
		Leases: []Lease{
			{MAC: "AA:BB:CC:00:00:04", IP: "192.168.8.10", Name: "nas"},
		},
		WiFi: []WiFi{
			{Device: "radio0", Name: "wifi2g", SSID: "GL-MT6000-2G", Key: "goodlife", Encryption: "sae-mixed", Enabled: true},
			{Device: "radio1", Name: "wifi5g", SSID: "GL-MT6000-5G", Key: "goodlife", Encryption: "sae-mixed", Enabled: true},
		},
		WireGuard: WireGuard{
			Tunnel: &WireGuardTunnel{
				Name:    "london",
				GroupID: 7707,
				PeerID:  1341,
				Status:  1,
				IPv4:    "10.0.0.2",
				RxBytes: 1048576,
				TxBytes: 262144,
			},
			Groups: []WireGuardGroup{
				{Name: "oracle", ID: 7707, Peers: []WireGuardPeer{
					{Name: "london", ID: 1341},
					{Name: "frankfurt", ID: 1342},
				}},
			},
		},
	}
}

// LoadScenario reads a TOML overlay from path. Keys present in the
// document override the default scenario; list sections replace their
// default wholesale. An empty path returns the default scenario
// untouched.
func LoadScenario(path string) (*Scenario, error) {
	scenario := DefaultScenario()
	if path == "" {
		return scenario, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	scenario.clearListed(raw)

	if err := toml.Unmarshal(data, scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return scenario, nil
}

// clearListed resets every list section the document names so that the
// typed decode starts those lists from scratch instead of layering
// entries over the defaults.
func (s *Scenario) clearListed(raw map[string]interface{}) {
	for key, value := range raw {
		switch key {
		case "modems":
			s.Modems = nil
		case "clients":
			s.Clients = nil
		case "leases":
			s.Leases = nil
		case "wifi":
			s.WiFi = nil
		case "unreachable":
			s.Unreachable = nil
		case "failures":
			s.Failures = nil
		case "device":
			if section, ok := value.(map[string]interface{}); ok {
				if _, named := section["load_average"]; named {
					s.Device.LoadAverage = nil
				}
			}
		case "internet":
			if section, ok := value.(map[string]interface{}); ok {
				if _, named := section["dns"]; named {
					s.Internet.DNS = nil
				}
			}
		case "mwan":
			if section, ok := value.(map[string]interface{}); ok {
				if _, named := section["interfaces"]; named {
					s.MWAN.Interfaces = nil
				}
			}
		case "wireguard":
			if section, ok := value.(map[string]interface{}); ok {
				if _, named := section["tunnel"]; named {
					s.WireGuard.Tunnel = nil
				}
				if _, named := section["groups"]; named {
					s.WireGuard.Groups = nil
				}
			}
		}
	}
}
