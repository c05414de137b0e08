package modem

// Optional fields are pointers so that "the firmware did not report
// this" stays distinct from a zero value.

// SIMCard holds SIM identity details from modem.get_info.
type SIMCard struct {
	ICCID       *string `json:"iccid,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	MCC         *string `json:"mcc,omitempty"`
	MNC         *string `json:"mnc,omitempty"`
}

// Info is one hardware entry from modem.get_info.
type Info struct {
	Bus              *string  `json:"bus,omitempty"`
	Type             *Type    `json:"type,omitempty"`
	ATPort           *string  `json:"at_port,omitempty"`
	DataPort         *string  `json:"data_port,omitempty"`
	SMSSupport       *bool    `json:"sms_support,omitempty"`
	LockTowerSupport *bool    `json:"lock_tower_support,omitempty"`
	QcfgUnsupport    *bool    `json:"qcfg_unsupport,omitempty"`
	IMEI             *string  `json:"imei,omitempty"`
	Name             *string  `json:"name,omitempty"`
	Version          *string  `json:"version,omitempty"`
	Vendor           *string  `json:"vendor,omitempty"`
	Protocols        []string `json:"protocols,omitempty"`
	Devices          []string `json:"devices,omitempty"`
	SIMCard          *SIMCard `json:"simcard,omitempty"`
}

// Signal holds the per-SIM radio measurements.
type Signal struct {
	Mode     *NetworkMode    `json:"mode,omitempty"`
	Strength *SignalStrength `json:"strength,omitempty"`
	RSSI     *int            `json:"rssi,omitempty"`
	RSRP     *int            `json:"rsrp,omitempty"`
	RSRQ     *int            `json:"rsrq,omitempty"`
	SINR     *int            `json:"sinr,omitempty"`
	ECIO     *int            `json:"ecio,omitempty"`
}

// NetworkIP is the address block for one IP stack.
type NetworkIP struct {
	IP      *string  `json:"ip,omitempty"`
	Netmask *string  `json:"netmask,omitempty"`
	Gateway *string  `json:"gateway,omitempty"`
	DNS     []string `json:"dns,omitempty"`
}

// Network is the modem's network status block.
type Network struct {
	Status       *NetworkStatus `json:"status,omitempty"`
	TrafficTotal *int           `json:"traffic_total,omitempty"`
	IPv4         *NetworkIP     `json:"ipv4,omitempty"`
	IPv6         *NetworkIP     `json:"ipv6,omitempty"`
}

// CellInfo is one cell from modem.get_cells_info. Bandwidths and
// channels stay strings because firmwares report them both ways.
type CellInfo struct {
	ULBandwidth *string `json:"ul_bandwidth,omitempty"`
	DLBandwidth *string `json:"dl_bandwidth,omitempty"`
	RSRP        *int    `json:"rsrp,omitempty"`
	ID          *string `json:"id,omitempty"`
	RSSI        *int    `json:"rssi,omitempty"`
	TXChannel   *string `json:"tx_channel,omitempty"`
	SINRLevel   *int    `json:"sinr_level,omitempty"`
	RSRQLevel   *int    `json:"rsrq_level,omitempty"`
	SINR        *int    `json:"sinr,omitempty"`
	RSRQ        *int    `json:"rsrq,omitempty"`
	RSSILevel   *int    `json:"rssi_level,omitempty"`
	RSRPLevel   *int    `json:"rsrp_level,omitempty"`
	Mode        *string `json:"mode,omitempty"`
	Band        *int    `json:"band,omitempty"`
	Type        *string `json:"type,omitempty"`
}

// StatusEntry is one modem from modem.get_status, joined with the cell
// list fetched for its bus. Passthrough carries the raw passthrough
// object untouched.
type StatusEntry struct {
	Bus             *string                `json:"bus,omitempty"`
	CurrentSIM      *int                   `json:"current_sim,omitempty"`
	SwitchStatus    *AutoSwitchState       `json:"switch_status,omitempty"`
	SIMStatus       *RegistrationStatus    `json:"sim_status,omitempty"`
	SIMOperator     *string                `json:"sim_operator,omitempty"`
	SIMICCID        *string                `json:"sim_iccid,omitempty"`
	SIMPhoneNumber  *string                `json:"sim_phone_number,omitempty"`
	SIMMCC          *string                `json:"sim_mcc,omitempty"`
	SIMMNC          *string                `json:"sim_mnc,omitempty"`
	Signal          *Signal                `json:"signal,omitempty"`
	Network         *Network               `json:"network,omitempty"`
	Cells           []CellInfo             `json:"cells_info,omitempty"`
	ConnectionState ConnectionState        `json:"connection_state"`
	NewSMSCount     *int                   `json:"new_sms_count,omitempty"`
	Passthrough     map[string]interface{} `json:"passthrough,omitempty"`
	ErrCode         *int                   `json:"err_code,omitempty"`
	ErrMsg          *string                `json:"err_msg,omitempty"`
}
