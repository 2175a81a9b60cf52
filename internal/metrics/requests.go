package metrics

import "sync/atomic"

// RequestCounter is an instance-scoped request counter, injected where
// needed instead of living in process-global state.
type RequestCounter struct {
	n atomic.Int64
}

// NewRequestCounter creates a counter starting at zero.
func NewRequestCounter() *RequestCounter { return &RequestCounter{} }

// Inc increments the counter.
func (c *RequestCounter) Inc() { c.n.Add(1) }

// Count returns the current value.
func (c *RequestCounter) Count() int64 { return c.n.Load() }
