package kernel

// Context is the handle a task uses to reach the kernel from Run.
type Context struct {
	k  *Kernel
	id TaskID
}

func (c *Context) TaskID() TaskID { return c.id }

// Done is closed by Kernel.Stop.
func (c *Context) Done() <-chan struct{} { return c.k.clock.done }

func (c *Context) Stopped() bool {
	select {
	case <-c.k.clock.done:
		return true
	default:
		return false
	}
}

// RecvChan exposes the endpoint queue so a task can select on it. It fails
// without the receive right.
func (c *Context) RecvChan(epCap Capability) (<-chan Message, bool) {
	return c.k.recvChan(epCap)
}

// TryRecv takes one queued message if there is one. A closed queue reports
// false just like an empty one.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	ch, ok := c.k.recvChan(epCap)
	if !ok {
		return Message{}, false
	}
	select {
	case msg, ok := <-ch:
		return msg, ok
	default:
		return Message{}, false
	}
}

// Send queues a message without blocking.
func (c *Context) Send(to Capability, kind uint16, payload []byte) SendResult {
	return c.k.deliver(to, kind, payload)
}

// SendRetry is Send that sleeps until the next tick and tries again while
// the queue is full, at most limit extra times.
func (c *Context) SendRetry(to Capability, kind uint16, payload []byte, limit int) SendResult {
	res := c.Send(to, kind, payload)
	for i := 0; i < limit && res == SendErrQueueFull && !c.Stopped(); i++ {
		c.k.clock.waitPast(c.k.clock.read())
		res = c.Send(to, kind, payload)
	}
	return res
}

// NowTick returns the clock in milliseconds.
func (c *Context) NowTick() uint64 { return c.k.clock.read() }

// WaitTick blocks until the clock passes after, or the kernel stops, and
// returns the clock.
func (c *Context) WaitTick(after uint64) uint64 { return c.k.clock.waitPast(after) }
