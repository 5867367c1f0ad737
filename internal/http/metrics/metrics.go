package metrics

import "sync/atomic"

// Collector keeps coarse request counters for the /metrics endpoint.
type Collector struct {
	requests uint64
	errors   uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	atomic.AddUint64(&c.requests, 1)
}

func (c *Collector) IncErrors() {
	atomic.AddUint64(&c.errors, 1)
}

func (c *Collector) Snapshot() (requests, errors uint64) {
	return atomic.LoadUint64(&c.requests), atomic.LoadUint64(&c.errors)
}
