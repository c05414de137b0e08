package sim

import (
	"fmt"

	"github.com/glinet-go/glinet/pkg/coerce"
	"github.com/glinet-go/glinet/rpc"
)

func (s *Server) systemInfo(map[string]interface{}) (interface{}, *rpc.RPCError) {
	device := s.scenario.Device
	return map[string]interface{}{
		"model":            device.Model,
		"mac":              device.MAC,
		"factory_mac":      device.FactoryMAC,
		"sn":               device.SN,
		"firmware_version": device.FirmwareVersion,
		"firmware_type":    device.FirmwareType,
		"hardware_version": device.HardwareVersion,
		"country_code":     device.CountryCode,
		"vendor":           device.Vendor,
	}, nil
}

// systemStatus answers with wifi passwords included; redaction is the
// caller's job.
func (s *Server) systemStatus(map[string]interface{}) (interface{}, *rpc.RPCError) {
	network := make([]map[string]interface{}, 0, len(s.scenario.MWAN.Interfaces))
	for _, iface := range s.scenario.MWAN.Interfaces {
		network = append(network, map[string]interface{}{
			"interface": iface.Name,
			"online":    iface.OnlineV4 || iface.OnlineV6,
			"up":        true,
		})
	}

	wifi := make([]map[string]interface{}, 0, len(s.scenario.WiFi))
	for _, entry := range s.scenario.WiFi {
		wifi = append(wifi, map[string]interface{}{
			"name":   entry.Name,
			"ssid":   entry.SSID,
			"passwd": entry.Key,
			"up":     entry.Enabled,
			"guest":  entry.Guest,
		})
	}

	return map[string]interface{}{
		"system": map[string]interface{}{
			"uptime":       s.scenario.Device.Uptime,
			"load_average": s.loadAverages(),
		},
		"network": network,
		"wifi":    wifi,
		"service": []interface{}{},
	}, nil
}

func (s *Server) systemLoad(map[string]interface{}) (interface{}, *rpc.RPCError) {
	device := s.scenario.Device
	return map[string]interface{}{
		"load_average": s.loadAverages(),
		"memory_free":  device.MemoryFree + int64(s.jitterInt(1<<20)),
		"memory_total": device.MemoryTotal,
	}, nil
}

func (s *Server) reboot(args map[string]interface{}) (interface{}, *rpc.RPCError) {
	delay, _ := coerce.Int(args["delay"])
	s.log.Infof("reboot requested, delay %ds (ignored)", delay)
	return map[string]interface{}{}, nil
}

func (s *Server) mwanConfig(map[string]interface{}) (interface{}, *rpc.RPCError) {
	interfaces := make([]map[string]interface{}, 0, len(s.scenario.MWAN.Interfaces))
	for _, iface := range s.scenario.MWAN.Interfaces {
		interfaces = append(interfaces, map[string]interface{}{
			"interface": iface.Name,
			"metric":    iface.Metric,
			"weight":    iface.Weight,
		})
	}
	return map[string]interface{}{
		"mode":       s.scenario.MWAN.Mode,
		"interfaces": interfaces,
	}, nil
}

func (s *Server) mwanStatus(map[string]interface{}) (interface{}, *rpc.RPCError) {
	interfaces := make([]map[string]interface{}, 0, len(s.scenario.MWAN.Interfaces))
	for _, iface := range s.scenario.MWAN.Interfaces {
		interfaces = append(interfaces, map[string]interface{}{
			"interface": iface.Name,
			"status_v4": iface.OnlineV4,
			"status_v6": iface.OnlineV6,
		})
	}
	return map[string]interface{}{"interfaces": interfaces}, nil
}

func (s *Server) modemStatus(map[string]interface{}) (interface{}, *rpc.RPCError) {
	modems := make([]map[string]interface{}, 0, len(s.scenario.Modems))
	for _, modem := range s.scenario.Modems {
		status := "connecting"
		if modem.Connected {
			status = "connected"
		}
		modems = append(modems, map[string]interface{}{
			"bus":           modem.Bus,
			"current_sim":   1,
			"new_sms_count": 0,
			"simcard": map[string]interface{}{
				"status":  0,
				"carrier": modem.Carrier,
				"iccid":   modem.ICCID,
				"signal": map[string]interface{}{
					"mode":     modem.NetworkMode,
					"strength": modem.Strength,
					"rssi":     modem.RSSI + s.jitterInt(3),
					"rsrp":     modem.RSRP + s.jitterInt(2),
					"rsrq":     modem.RSRQ + s.jitterInt(1),
					"sinr":     modem.SINR + s.jitterInt(2),
				},
			},
			"network": map[string]interface{}{"status": status},
		})
	}
	return map[string]interface{}{"modems": modems}, nil
}

func (s *Server) modemInfo(map[string]interface{}) (interface{}, *rpc.RPCError) {
	modems := make([]map[string]interface{}, 0, len(s.scenario.Modems))
	for _, modem := range s.scenario.Modems {
		modems = append(modems, map[string]interface{}{
			"bus":         modem.Bus,
			"name":        modem.Name,
			"imei":        modem.IMEI,
			"sms_support": true,
			"protocols":   []string{"qmi", "mbim"},
			"simcard":     map[string]interface{}{"iccid": modem.ICCID},
		})
	}
	return map[string]interface{}{"modems": modems}, nil
}

func (s *Server) modemCells(args map[string]interface{}) (interface{}, *rpc.RPCError) {
	bus, ok := coerce.String(args["bus"])
	if !ok || bus == "" {
		return nil, rpc.NewRPCError(rpc.CodeModemIDMissing, "")
	}

	for _, modem := range s.scenario.Modems {
		if modem.Bus != bus {
			continue
		}
		cells := make([]map[string]interface{}, 0, len(modem.Cells))
		for _, cell := range modem.Cells {
			cells = append(cells, map[string]interface{}{
				"id":   cell.ID,
				"band": cell.Band,
				"rsrp": cell.RSRP + s.jitterInt(2),
				"rsrq": cell.RSRQ + s.jitterInt(1),
				"mode": "LTE",
			})
		}
		return map[string]interface{}{"cells": cells}, nil
	}
	return nil, rpc.NewRPCError(rpc.CodeModemNotFound, "")
}

func (s *Server) macInfo(map[string]interface{}) (interface{}, *rpc.RPCError) {
	return map[string]interface{}{
		"mac":         s.scenario.Device.MAC,
		"factory_mac": s.scenario.Device.FactoryMAC,
	}, nil
}

func (s *Server) clientList(map[string]interface{}) (interface{}, *rpc.RPCError) {
	clients := make([]map[string]interface{}, 0, len(s.scenario.Clients))
	for _, client := range s.scenario.Clients {
		clients = append(clients, map[string]interface{}{
			"mac":     client.MAC,
			"ip":      client.IP,
			"name":    client.Name,
			"iface":   client.Iface,
			"online":  client.Online,
			"remote":  false,
			"blocked": false,
		})
	}
	return map[string]interface{}{"clients": clients}, nil
}

func (s *Server) staticLeases(map[string]interface{}) (interface{}, *rpc.RPCError) {
	list := make([]map[string]interface{}, 0, len(s.scenario.Leases))
	for _, lease := range s.scenario.Leases {
		list = append(list, map[string]interface{}{
			"mac":  lease.MAC,
			"ip":   lease.IP,
			"name": lease.Name,
		})
	}
	return map[string]interface{}{"list": list}, nil
}

func (s *Server) wifiConfig(map[string]interface{}) (interface{}, *rpc.RPCError) {
	var order []string
	byDevice := make(map[string][]map[string]interface{})
	for _, entry := range s.scenario.WiFi {
		if _, seen := byDevice[entry.Device]; !seen {
			order = append(order, entry.Device)
		}
		byDevice[entry.Device] = append(byDevice[entry.Device], map[string]interface{}{
			"name":       entry.Name,
			"ssid":       entry.SSID,
			"key":        entry.Key,
			"enabled":    entry.Enabled,
			"encryption": entry.Encryption,
			"hidden":     false,
			"guest":      entry.Guest,
		})
	}

	res := make([]map[string]interface{}, 0, len(order))
	for _, device := range order {
		res = append(res, map[string]interface{}{
			"device": device,
			"ifaces": byDevice[device],
		})
	}
	return map[string]interface{}{"res": res}, nil
}

// ping answers like the firmware does: the raw ping output on success
// and an empty list when the address was unreachable.
func (s *Server) ping(args map[string]interface{}) (interface{}, *rpc.RPCError) {
	addr, ok := coerce.String(args["addr"])
	if !ok || addr == "" {
		return nil, rpc.NewRPCError(codeInvalidParams, "Invalid params")
	}
	for _, blocked := range s.scenario.Unreachable {
		if blocked == addr {
			return []string{}, nil
		}
	}
	return fmt.Sprintf("PING %s (%s): 56 data bytes\n5 packets transmitted, 5 packets received, 0%% packet loss", addr, addr), nil
}

func (s *Server) internetStatus(map[string]interface{}) (interface{}, *rpc.RPCError) {
	internet := s.scenario.Internet
	return map[string]interface{}{
		"detected": internet.Detected,
		"ip":       internet.IP,
		"netmask":  internet.Netmask,
		"gateway":  internet.Gateway,
		"dns":      internet.DNS,
		"valid":    internet.Valid,
	}, nil
}

func (s *Server) tailscaleStatus(map[string]interface{}) (interface{}, *rpc.RPCError) {
	ts := s.scenario.Tailscale
	if ts == nil {
		return []interface{}{}, nil
	}
	return map[string]interface{}{
		"login_name": ts.LoginName,
		"status":     ts.Status,
		"address_v4": ts.AddressV4,
	}, nil
}

func (s *Server) wireguardStatus(map[string]interface{}) (interface{}, *rpc.RPCError) {
	tunnel := s.scenario.WireGuard.Tunnel
	if tunnel == nil {
		return []interface{}{}, nil
	}
	return []interface{}{
		map[string]interface{}{
			"name":     tunnel.Name,
			"group_id": tunnel.GroupID,
			"peer_id":  tunnel.PeerID,
			"status":   tunnel.Status,
			"ipv4":     tunnel.IPv4,
			"rx_bytes": tunnel.RxBytes,
			"tx_bytes": tunnel.TxBytes,
		},
	}, nil
}

func (s *Server) wireguardConfigList(map[string]interface{}) (interface{}, *rpc.RPCError) {
	groups := make([]map[string]interface{}, 0, len(s.scenario.WireGuard.Groups))
	for _, group := range s.scenario.WireGuard.Groups {
		peers := make([]map[string]interface{}, 0, len(group.Peers))
		for _, peer := range group.Peers {
			peers = append(peers, map[string]interface{}{
				"name":    peer.Name,
				"peer_id": peer.ID,
			})
		}
		groups = append(groups, map[string]interface{}{
			"group_name": group.Name,
			"group_id":   group.ID,
			"peers":      peers,
		})
	}
	return map[string]interface{}{"config_list": groups}, nil
}

func (s *Server) loadAverages() []float64 {
	base := s.scenario.Device.LoadAverage
	out := make([]float64, len(base))
	for i, v := range base {
		out[i] = v + s.jitterFloat(0.05)
		if out[i] < 0 {
			out[i] = 0
		}
	}
	return out
}
