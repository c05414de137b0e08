// Package metrics exposes the normalized multi-WAN state, system load
// and client counts of a GL.iNet router as Prometheus metrics.
package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/glinet-go/glinet/internal/logger"
	"github.com/glinet-go/glinet/modem"
	"github.com/glinet-go/glinet/mwan"
	"github.com/glinet-go/glinet/pkg/cache"
	"github.com/glinet-go/glinet/pkg/concurrent"
	"github.com/glinet-go/glinet/router"
	"github.com/glinet-go/glinet/rpc"
)

const snapshotKey = "snapshot"

// Options tunes the collector. The zero value scrapes under the
// "glinet" namespace with a 30 second timeout and no snapshot cache.
type Options struct {
	Namespace  string
	Timeout    time.Duration
	CacheTTL   time.Duration
	PreferIPv6 bool
	Logger     logger.Logger
}

// Collector implements prometheus.Collector over a logged-in Caller.
// Every scrape fetches the multi-WAN state, the system load and the
// client list concurrently; a failed source omits its metrics and
// marks the scrape unsuccessful.
type Collector struct {
	mwan   *mwan.Manager
	router *router.Client
	opts   Options
	log    logger.Logger

	snap        *cache.Cache[snapshot]
	descriptors map[string]*prometheus.Desc
	mutex       sync.Mutex
}

type clientStats struct {
	online int
	total  int
}

type snapshot struct {
	state   *mwan.State
	load    *router.Load
	clients *clientStats
}

// NewCollector creates a collector reading through caller.
func NewCollector(caller rpc.Caller, opts Options) *Collector {
	if opts.Namespace == "" {
		opts.Namespace = "glinet"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default
	}

	c := &Collector{
		mwan:   mwan.NewManager(caller),
		router: router.NewClient(caller),
		opts:   opts,
		log:    opts.Logger,
	}
	if opts.CacheTTL > 0 {
		c.snap = cache.New[snapshot](opts.CacheTTL)
	}
	c.initializeDescriptors()
	return c
}

func (c *Collector) initializeDescriptors() {
	namespace := c.opts.Namespace

	c.descriptors = map[string]*prometheus.Desc{
		"mwan_mode": prometheus.NewDesc(
			fmt.Sprintf("%s_mwan_mode", namespace),
			"Multi-WAN mode (0 failover, 1 load balancing)",
			nil, nil,
		),
		"interface_online": prometheus.NewDesc(
			fmt.Sprintf("%s_interface_online", namespace),
			"Interface online state by address family (1 online, 0 offline)",
			[]string{"interface", "family"}, nil,
		),
		"interface_metric": prometheus.NewDesc(
			fmt.Sprintf("%s_interface_metric", namespace),
			"Failover metric of the interface",
			[]string{"interface"}, nil,
		),
		"interface_weight": prometheus.NewDesc(
			fmt.Sprintf("%s_interface_weight", namespace),
			"Load balancing weight of the interface",
			[]string{"interface"}, nil,
		),
		"interface_primary": prometheus.NewDesc(
			fmt.Sprintf("%s_interface_primary", namespace),
			"1 when the interface is the selected primary link",
			[]string{"interface"}, nil,
		),
		"modem_connection_state": prometheus.NewDesc(
			fmt.Sprintf("%s_modem_connection_state", namespace),
			"Modem connection state (-1 unknown, 0 disconnected, 1 connected)",
			[]string{"interface", "bus"}, nil,
		),
		"modem_signal_rssi": prometheus.NewDesc(
			fmt.Sprintf("%s_modem_signal_rssi", namespace),
			"Modem RSSI in dBm",
			[]string{"interface", "bus"}, nil,
		),
		"modem_signal_rsrp": prometheus.NewDesc(
			fmt.Sprintf("%s_modem_signal_rsrp", namespace),
			"Modem RSRP in dBm",
			[]string{"interface", "bus"}, nil,
		),
		"modem_signal_rsrq": prometheus.NewDesc(
			fmt.Sprintf("%s_modem_signal_rsrq", namespace),
			"Modem RSRQ in dB",
			[]string{"interface", "bus"}, nil,
		),
		"modem_signal_sinr": prometheus.NewDesc(
			fmt.Sprintf("%s_modem_signal_sinr", namespace),
			"Modem SINR in dB",
			[]string{"interface", "bus"}, nil,
		),
		"modem_signal_strength": prometheus.NewDesc(
			fmt.Sprintf("%s_modem_signal_strength", namespace),
			"Modem signal strength bucket (1 poor to 4 excellent)",
			[]string{"interface", "bus"}, nil,
		),
		"modem_network_mode": prometheus.NewDesc(
			fmt.Sprintf("%s_modem_network_mode", namespace),
			"Modem network generation currently in use",
			[]string{"interface", "bus", "mode"}, nil,
		),
		"modem_cells": prometheus.NewDesc(
			fmt.Sprintf("%s_modem_cells", namespace),
			"Number of cells the modem reports",
			[]string{"interface", "bus"}, nil,
		),
		"modem_new_sms": prometheus.NewDesc(
			fmt.Sprintf("%s_modem_new_sms", namespace),
			"Unread SMS count reported by the modem",
			[]string{"interface", "bus"}, nil,
		),
		"load_average": prometheus.NewDesc(
			fmt.Sprintf("%s_load_average", namespace),
			"System load average",
			[]string{"period"}, nil,
		),
		"memory_free_bytes": prometheus.NewDesc(
			fmt.Sprintf("%s_memory_free_bytes", namespace),
			"Free system memory in bytes",
			nil, nil,
		),
		"memory_total_bytes": prometheus.NewDesc(
			fmt.Sprintf("%s_memory_total_bytes", namespace),
			"Total system memory in bytes",
			nil, nil,
		),
		"clients_online": prometheus.NewDesc(
			fmt.Sprintf("%s_clients_online", namespace),
			"Number of online clients",
			nil, nil,
		),
		"clients": prometheus.NewDesc(
			fmt.Sprintf("%s_clients", namespace),
			"Number of known clients",
			nil, nil,
		),
		"cache_hits_total": prometheus.NewDesc(
			fmt.Sprintf("%s_cache_hits_total", namespace),
			"Snapshot cache hits",
			nil, nil,
		),
		"cache_misses_total": prometheus.NewDesc(
			fmt.Sprintf("%s_cache_misses_total", namespace),
			"Snapshot cache misses",
			nil, nil,
		),
		"scrape_duration_seconds": prometheus.NewDesc(
			fmt.Sprintf("%s_scrape_duration_seconds", namespace),
			"Duration of the last scrape",
			nil, nil,
		),
		"scrape_success": prometheus.NewDesc(
			fmt.Sprintf("%s_scrape_success", namespace),
			"1 when the last scrape succeeded",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, desc := range c.descriptors {
		ch <- desc
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.Timeout)
	defer cancel()

	snap, healthy := c.snapshot(ctx)

	c.exportState(ch, snap.state)
	c.exportLoad(ch, snap.load)
	c.exportClients(ch, snap.clients)
	c.exportCacheStats(ch)

	ch <- prometheus.MustNewConstMetric(
		c.descriptors["scrape_duration_seconds"],
		prometheus.GaugeValue,
		time.Since(start).Seconds(),
	)
	ch <- prometheus.MustNewConstMetric(
		c.descriptors["scrape_success"],
		prometheus.GaugeValue,
		boolValue(healthy),
	)
}

func (c *Collector) snapshot(ctx context.Context) (snapshot, bool) {
	if c.snap != nil {
		if snap, found := c.snap.Get(snapshotKey); found {
			return snap, true
		}
	}

	tasks := []concurrent.Task{
		{Name: "mwan_state", Work: func(ctx context.Context) (interface{}, error) {
			return c.mwan.State(ctx, c.opts.PreferIPv6)
		}},
		{Name: "system_load", Work: func(ctx context.Context) (interface{}, error) {
			return c.router.Load(ctx)
		}},
		{Name: "clients", Work: func(ctx context.Context) (interface{}, error) {
			return c.router.Clients(ctx)
		}},
	}

	results, err := concurrent.Run(ctx, tasks, c.opts.Timeout)
	if err != nil {
		c.log.Errorf("scrape failed: %v", err)
		return snapshot{}, false
	}

	var snap snapshot
	healthy := true
	for _, result := range results {
		if result.Err != nil {
			c.log.Errorf("%s fetch failed: %v", result.Name, result.Err)
			healthy = false
			continue
		}
		c.log.Debugf("%s fetched in %s", result.Name, result.Elapsed)

		switch result.ID {
		case 0:
			if state, ok := result.Value.(*mwan.State); ok {
				snap.state = state
			}
		case 1:
			if load, ok := result.Value.(*router.Load); ok {
				snap.load = load
			}
		case 2:
			if devices, ok := result.Value.([]router.Device); ok {
				stats := &clientStats{total: len(devices)}
				for _, device := range devices {
					if device.Online {
						stats.online++
					}
				}
				snap.clients = stats
			}
		}
	}

	if healthy && c.snap != nil {
		c.snap.Set(snapshotKey, snap)
	}
	return snap, healthy
}

func (c *Collector) exportState(ch chan<- prometheus.Metric, state *mwan.State) {
	if state == nil {
		return
	}

	ch <- prometheus.MustNewConstMetric(
		c.descriptors["mwan_mode"],
		prometheus.GaugeValue,
		float64(state.Mode),
	)

	for name, iface := range state.Interfaces {
		if value, ok := statusValue(iface.StatusV4); ok {
			ch <- prometheus.MustNewConstMetric(
				c.descriptors["interface_online"],
				prometheus.GaugeValue,
				value,
				name, "ipv4",
			)
		}
		if value, ok := statusValue(iface.StatusV6); ok {
			ch <- prometheus.MustNewConstMetric(
				c.descriptors["interface_online"],
				prometheus.GaugeValue,
				value,
				name, "ipv6",
			)
		}
		if iface.Metric != nil {
			ch <- prometheus.MustNewConstMetric(
				c.descriptors["interface_metric"],
				prometheus.GaugeValue,
				float64(*iface.Metric),
				name,
			)
		}
		if iface.Weight != nil {
			ch <- prometheus.MustNewConstMetric(
				c.descriptors["interface_weight"],
				prometheus.GaugeValue,
				float64(*iface.Weight),
				name,
			)
		}
		ch <- prometheus.MustNewConstMetric(
			c.descriptors["interface_primary"],
			prometheus.GaugeValue,
			boolValue(name == state.Primary),
			name,
		)

		if iface.Modem != nil && iface.Modem.Status != nil {
			c.exportModem(ch, name, iface.Modem.Status)
		}
	}
}

func (c *Collector) exportModem(ch chan<- prometheus.Metric, name string, status *modem.StatusEntry) {
	bus := ""
	if status.Bus != nil {
		bus = *status.Bus
	}

	ch <- prometheus.MustNewConstMetric(
		c.descriptors["modem_connection_state"],
		prometheus.GaugeValue,
		float64(status.ConnectionState),
		name, bus,
	)

	if status.Signal != nil {
		signals := map[string]*int{
			"modem_signal_rssi": status.Signal.RSSI,
			"modem_signal_rsrp": status.Signal.RSRP,
			"modem_signal_rsrq": status.Signal.RSRQ,
			"modem_signal_sinr": status.Signal.SINR,
		}
		for key, value := range signals {
			if value == nil {
				continue
			}
			ch <- prometheus.MustNewConstMetric(
				c.descriptors[key],
				prometheus.GaugeValue,
				float64(*value),
				name, bus,
			)
		}
		if status.Signal.Strength != nil {
			ch <- prometheus.MustNewConstMetric(
				c.descriptors["modem_signal_strength"],
				prometheus.GaugeValue,
				float64(*status.Signal.Strength),
				name, bus,
			)
		}
		if status.Signal.Mode != nil {
			ch <- prometheus.MustNewConstMetric(
				c.descriptors["modem_network_mode"],
				prometheus.GaugeValue,
				1,
				name, bus, status.Signal.Mode.Label(),
			)
		}
	}

	if status.Cells != nil {
		ch <- prometheus.MustNewConstMetric(
			c.descriptors["modem_cells"],
			prometheus.GaugeValue,
			float64(len(status.Cells)),
			name, bus,
		)
	}
	if status.NewSMSCount != nil {
		ch <- prometheus.MustNewConstMetric(
			c.descriptors["modem_new_sms"],
			prometheus.GaugeValue,
			float64(*status.NewSMSCount),
			name, bus,
		)
	}
}

func (c *Collector) exportLoad(ch chan<- prometheus.Metric, load *router.Load) {
	if load == nil {
		return
	}

	periods := []string{"1m", "5m", "15m"}
	for i, value := range load.LoadAverage {
		if i >= len(periods) {
			break
		}
		ch <- prometheus.MustNewConstMetric(
			c.descriptors["load_average"],
			prometheus.GaugeValue,
			value,
			periods[i],
		)
	}

	ch <- prometheus.MustNewConstMetric(
		c.descriptors["memory_free_bytes"],
		prometheus.GaugeValue,
		float64(load.MemoryFree),
	)
	ch <- prometheus.MustNewConstMetric(
		c.descriptors["memory_total_bytes"],
		prometheus.GaugeValue,
		float64(load.MemoryTotal),
	)
}

func (c *Collector) exportClients(ch chan<- prometheus.Metric, stats *clientStats) {
	if stats == nil {
		return
	}

	ch <- prometheus.MustNewConstMetric(
		c.descriptors["clients_online"],
		prometheus.GaugeValue,
		float64(stats.online),
	)
	ch <- prometheus.MustNewConstMetric(
		c.descriptors["clients"],
		prometheus.GaugeValue,
		float64(stats.total),
	)
}

func (c *Collector) exportCacheStats(ch chan<- prometheus.Metric) {
	if c.snap == nil {
		return
	}

	stats := c.snap.Stats()
	ch <- prometheus.MustNewConstMetric(
		c.descriptors["cache_hits_total"],
		prometheus.CounterValue,
		float64(stats.Hits),
	)
	ch <- prometheus.MustNewConstMetric(
		c.descriptors["cache_misses_total"],
		prometheus.CounterValue,
		float64(stats.Misses),
	)
}

func statusValue(status *mwan.Status) (float64, bool) {
	if status == nil {
		return 0, false
	}
	return boolValue(*status == mwan.StatusOnline), true
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
