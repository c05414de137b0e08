// Package router covers the general router surface: device identity,
// system status and load, connected clients, WiFi configuration reads
// and VPN status. Everything here is a read, with the single exception
// of Reboot.
package router

import (
	"context"

	"github.com/glinet-go/glinet/pkg/coerce"
	"github.com/glinet-go/glinet/rpc"
)

// Client reads router state through a logged-in Caller.
type Client struct {
	caller rpc.Caller
}

func NewClient(caller rpc.Caller) *Client {
	return &Client{caller: caller}
}

// Info returns the device identity from system.get_info.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	info, err := rpc.Fetch[Info](ctx, c.caller, "system", "get_info", nil)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Status returns the raw system.get_status payload: service, network,
// system and wifi sections. WiFi passwords are blanked before the
// payload is handed out.
func (c *Client) Status(ctx context.Context) (map[string]interface{}, error) {
	payload, err := rpc.FetchObject(ctx, c.caller, "system", "get_status", nil)
	if err != nil {
		return nil, err
	}
	for _, entry := range coerce.Objects(payload["wifi"]) {
		entry["passwd"] = nil
	}
	return payload, nil
}

// Load returns the load snapshot from system.get_load.
func (c *Client) Load(ctx context.Context) (*Load, error) {
	load, err := rpc.Fetch[Load](ctx, c.caller, "system", "get_load", nil)
	if err != nil {
		return nil, err
	}
	return &load, nil
}

// MAC returns the current and factory MAC from macclone.get_mac.
func (c *Client) MAC(ctx context.Context) (*MACInfo, error) {
	mac, err := rpc.Fetch[MACInfo](ctx, c.caller, "macclone", "get_mac", nil)
	if err != nil {
		return nil, err
	}
	return &mac, nil
}

// Reboot schedules a reboot after delay seconds.
func (c *Client) Reboot(ctx context.Context, delay int) error {
	return c.caller.Call(ctx, "system", "reboot", map[string]interface{}{"delay": delay}, nil)
}

// Ping runs diag.ping on the router. The firmware answers with the
// ping output on success and an empty list when the address was not
// reachable.
func (c *Client) Ping(ctx context.Context, address string) (bool, error) {
	var result interface{}
	if err := c.caller.Call(ctx, "diag", "ping", map[string]interface{}{"addr": address}, &result); err != nil {
		return false, err
	}
	if list, ok := result.([]interface{}); ok && len(list) == 0 {
		return false, nil
	}
	return true, nil
}

// InternetStatus returns the upstream connectivity check from
// edgerouter.get_status.
func (c *Client) InternetStatus(ctx context.Context) (*InternetStatus, error) {
	status, err := rpc.Fetch[InternetStatus](ctx, c.caller, "edgerouter", "get_status", nil)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Clients returns every device known to clients.get_list, online or
// not.
func (c *Client) Clients(ctx context.Context) ([]Device, error) {
	payload, err := rpc.Fetch[struct {
		Clients []Device `json:"clients"`
	}](ctx, c.caller, "clients", "get_list", nil)
	if err != nil {
		return nil, err
	}
	return payload.Clients, nil
}

// ConnectedClients returns the online devices keyed by MAC address.
func (c *Client) ConnectedClients(ctx context.Context) (map[string]Device, error) {
	devices, err := c.Clients(ctx)
	if err != nil {
		return nil, err
	}
	online := make(map[string]Device)
	for _, device := range devices {
		if device.Online && device.MAC != "" {
			online[device.MAC] = device
		}
	}
	return online, nil
}

// StaticLeases returns the static DHCP bindings from
// lan.get_static_bind_list.
func (c *Client) StaticLeases(ctx context.Context) ([]StaticLease, error) {
	payload, err := rpc.Fetch[struct {
		List []StaticLease `json:"list"`
	}](ctx, c.caller, "lan", "get_static_bind_list", nil)
	if err != nil {
		return nil, err
	}
	return payload.List, nil
}

// WiFiInterfaces returns the radio interfaces from wifi.get_config,
// flattened across devices and keyed by interface name. Keys are
// cleared unless redactKeys is false.
func (c *Client) WiFiInterfaces(ctx context.Context, redactKeys bool) (map[string]WiFiInterface, error) {
	payload, err := rpc.Fetch[struct {
		Res []struct {
			Ifaces []WiFiInterface `json:"ifaces"`
		} `json:"res"`
	}](ctx, c.caller, "wifi", "get_config", nil)
	if err != nil {
		return nil, err
	}

	interfaces := make(map[string]WiFiInterface)
	for _, dev := range payload.Res {
		for _, iface := range dev.Ifaces {
			if iface.Name == "" {
				continue
			}
			if redactKeys {
				iface.Key = nil
			}
			interfaces[iface.Name] = iface
		}
	}
	return interfaces, nil
}

// TailscaleStatus returns the parsed tailscale.get_status payload, or
// nil when Tailscale is disconnected or not configured.
func (c *Client) TailscaleStatus(ctx context.Context) (*TailscaleStatus, error) {
	raw, err := rpc.Fetch[interface{}](ctx, c.caller, "tailscale", "get_status", nil)
	if err != nil {
		return nil, err
	}
	payload, ok := raw.(map[string]interface{})
	if !ok || len(payload) == 0 {
		return nil, nil
	}

	status := &TailscaleStatus{}
	if s, ok := coerce.String(payload["login_name"]); ok {
		status.LoginName = s
	}
	if s, ok := coerce.String(payload["address_v4"]); ok {
		status.AddressV4 = s
	}
	if n, ok := coerce.Int(payload["status"]); ok && n >= int(TailscaleDisconnected) && n <= int(TailscaleConnecting) {
		status.Status = TailscaleState(n)
	}
	return status, nil
}

// TailscaleState returns just the connection state, mapping an absent
// status payload to disconnected.
func (c *Client) TailscaleState(ctx context.Context) (TailscaleState, error) {
	status, err := c.TailscaleStatus(ctx)
	if err != nil {
		return TailscaleDisconnected, err
	}
	if status == nil {
		return TailscaleDisconnected, nil
	}
	return status.Status, nil
}

// WireGuardStatus returns the active client tunnel from wg-client
// get_status. Firmwares that answer with a tunnel list contribute
// their first tunnel; an empty list means no tunnel and returns nil.
func (c *Client) WireGuardStatus(ctx context.Context) (*WireGuardStatus, error) {
	raw, err := rpc.Fetch[interface{}](ctx, c.caller, "wg-client", "get_status", nil)
	if err != nil {
		return nil, err
	}

	var payload interface{}
	switch v := raw.(type) {
	case map[string]interface{}:
		payload = v
	case []interface{}:
		if len(v) == 0 {
			return nil, nil
		}
		payload = v[0]
	default:
		return nil, nil
	}

	entry, ok := payload.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	status := &WireGuardStatus{}
	if s, ok := coerce.String(entry["name"]); ok {
		status.Name = s
	}
	if n, ok := coerce.Int(entry["group_id"]); ok {
		status.GroupID = n
	}
	if n, ok := coerce.Int(entry["peer_id"]); ok {
		status.PeerID = n
	}
	if n, ok := coerce.Int(entry["status"]); ok && n >= int(WireGuardNotStarted) && n <= int(WireGuardConnecting) {
		status.Status = WireGuardState(n)
	}
	if s, ok := coerce.String(entry["domain"]); ok {
		status.Domain = s
	}
	if n, ok := coerce.Int(entry["port"]); ok {
		status.Port = n
	}
	if s, ok := coerce.String(entry["ipv4"]); ok {
		status.IPv4 = s
	}
	if s, ok := coerce.String(entry["ipv6"]); ok {
		status.IPv6 = s
	}
	if f, ok := coerce.Float(entry["rx_bytes"]); ok {
		status.RxBytes = int64(f)
	}
	if f, ok := coerce.Float(entry["tx_bytes"]); ok {
		status.TxBytes = int64(f)
	}
	if b, ok := coerce.Bool(entry["proxy"]); ok {
		status.Proxy = b
	}
	if s, ok := coerce.String(entry["log"]); ok {
		status.Log = s
	}
	status.Enabled = coerce.BoolPtr(entry["enabled"])
	status.TunnelID = coerce.IntPtr(entry["tunnel_id"])
	return status, nil
}

// WireGuardPeers returns every configured peer, flattened from the
// group list of wg-client.get_all_config_list. Groups without peers
// are dropped. Names follow the "group/peer" convention.
func (c *Client) WireGuardPeers(ctx context.Context) ([]WireGuardPeer, error) {
	payload, err := rpc.Fetch[struct {
		ConfigList []struct {
			GroupName string `json:"group_name"`
			GroupID   int    `json:"group_id"`
			Peers     []struct {
				Name   string `json:"name"`
				PeerID int    `json:"peer_id"`
			} `json:"peers"`
		} `json:"config_list"`
	}](ctx, c.caller, "wg-client", "get_all_config_list", nil)
	if err != nil {
		return nil, err
	}

	var peers []WireGuardPeer
	for _, group := range payload.ConfigList {
		for _, peer := range group.Peers {
			peers = append(peers, WireGuardPeer{
				Name:    group.GroupName + "/" + peer.Name,
				GroupID: group.GroupID,
				PeerID:  peer.PeerID,
			})
		}
	}
	return peers, nil
}
