package mwan

import "sort"

// Interfaces with no configured metric sort after every real metric.
const missingMetric = 10000

// SelectPrimary picks the interface traffic should be using right now.
// Only online interfaces are considered. In failover mode the lowest
// metric wins; in load-balancing mode the highest weight wins, with
// the metric breaking ties. A missing weight counts as 0. All ties
// keep the earliest interface in the order given, so callers should
// pass interfaces in a stable order.
func SelectPrimary(interfaces []*Interface, mode Mode, preferIPv6 bool) *Interface {
	if len(interfaces) == 0 {
		return nil
	}

	online := make([]*Interface, 0, len(interfaces))
	for _, iface := range interfaces {
		if iface.IsOnline(preferIPv6) {
			online = append(online, iface)
		}
	}
	if len(online) == 0 {
		return nil
	}

	if mode == ModeFailover {
		sort.SliceStable(online, func(a, b int) bool {
			return metricOf(online[a]) < metricOf(online[b])
		})
		return online[0]
	}

	sort.SliceStable(online, func(a, b int) bool {
		wa, wb := weightOf(online[a]), weightOf(online[b])
		if wa != wb {
			return wa > wb
		}
		return metricOf(online[a]) < metricOf(online[b])
	})
	return online[0]
}

func metricOf(i *Interface) int {
	if i.Metric != nil {
		return *i.Metric
	}
	return missingMetric
}

func weightOf(i *Interface) int {
	if i.Weight != nil {
		return *i.Weight
	}
	return 0
}
