package kernel

import "sync"

// clock is the shared millisecond counter. It only moves forward; stop
// releases every waiter for good.
type clock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	now     uint64
	stopped bool
	done    chan struct{}
}

func (c *clock) init() {
	c.cond = sync.NewCond(&c.mu)
	c.done = make(chan struct{})
}

func (c *clock) advance(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.now {
		return
	}
	c.now = seq
	c.cond.Broadcast()
}

func (c *clock) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.done)
	c.cond.Broadcast()
}

func (c *clock) read() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// waitPast blocks until the clock moves beyond after or stops.
func (c *clock) waitPast(after uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.now <= after && !c.stopped {
		c.cond.Wait()
	}
	return c.now
}
