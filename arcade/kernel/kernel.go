// Package kernel is the in-process message bus the game runs on: tasks own
// goroutines, talk through bounded endpoint queues and share one millisecond
// clock driven by the host frame loop.
package kernel

import "sync"

const (
	maxTasks     = 32
	maxEndpoints = 32
	mailboxSlots = 16
)

type TaskID uint8

// Rights say what a capability holder may do with its endpoint.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

type Endpoint uint8

// Capability names an endpoint together with the rights granted on it. The
// zero value grants nothing.
type Capability struct {
	ep     Endpoint
	rights Rights
}

// Valid reports whether c grants any right at all.
func (c Capability) Valid() bool { return c.rights != 0 }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict narrows c to the given rights. Nothing left means the zero value.
func (c Capability) Restrict(rights Rights) Capability {
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// MaxMessageBytes bounds a message payload.
const MaxMessageBytes = 64

// Message is copied by value through endpoint queues.
type Message struct {
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
}

// Payload returns the used part of Data. Len is clamped to the buffer size.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidCap
	SendErrNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrInvalidCap:
		return "invalid capability"
	case SendErrNoSendRight:
		return "capability has no send right"
	case SendErrNoEndpoint:
		return "no such endpoint"
	case SendErrPayloadTooLarge:
		return "payload too large"
	case SendErrQueueFull:
		return "queue full"
	default:
		return "unknown"
	}
}

// Task is a long-lived component. Run returns once its work is over or
// ctx.Done() is closed.
type Task interface {
	Run(ctx *Context)
}

type mailbox struct {
	ch     chan Message
	closed bool
}

type Kernel struct {
	mu    sync.Mutex
	boxes []*mailbox
	tasks TaskID
	wg    sync.WaitGroup

	clock clock
}

func New() *Kernel {
	k := &Kernel{boxes: make([]*mailbox, 0, maxEndpoints)}
	k.clock.init()
	return k
}

// NewEndpoint allocates a queue of mailboxSlots messages. It returns the zero
// capability once maxEndpoints are in use.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.boxes) >= maxEndpoints || rights == 0 {
		return Capability{}
	}
	k.boxes = append(k.boxes, &mailbox{ch: make(chan Message, mailboxSlots)})
	return Capability{ep: Endpoint(len(k.boxes) - 1), rights: rights}
}

// CloseEndpoint closes the endpoint's queue. Receivers drain what is left and
// then observe a closed channel; later sends fail with SendErrNoEndpoint.
func (k *Kernel) CloseEndpoint(c Capability) {
	if !c.Valid() {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	box := k.box(c.ep)
	if box == nil || box.closed {
		return
	}
	box.closed = true
	close(box.ch)
}

// AddTask starts t on its own goroutine and returns its ID. A panic inside
// Run is recovered and handed to the panic handler.
func (k *Kernel) AddTask(t Task) TaskID {
	k.mu.Lock()
	if k.tasks >= maxTasks || t == nil {
		k.mu.Unlock()
		return 0
	}
	id := k.tasks
	k.tasks++
	k.mu.Unlock()

	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		defer func() {
			if v := recover(); v != nil {
				triggerPanic(PanicInfo{TaskID: id, Value: v})
			}
		}()
		t.Run(&Context{k: k, id: id})
	}()
	return id
}

// Post delivers a message from outside any task, such as the host loop.
func (k *Kernel) Post(to Capability, kind uint16, payload []byte) SendResult {
	return k.deliver(to, kind, payload)
}

// TickTo advances the clock to seq. Older values are ignored.
func (k *Kernel) TickTo(seq uint64) { k.clock.advance(seq) }

// Stop closes every task's Done channel and releases clock waiters.
func (k *Kernel) Stop() { k.clock.stop() }

// Wait blocks until every task has returned from Run.
func (k *Kernel) Wait() { k.wg.Wait() }

func (k *Kernel) box(ep Endpoint) *mailbox {
	if int(ep) >= len(k.boxes) {
		return nil
	}
	return k.boxes[ep]
}

func (k *Kernel) recvChan(c Capability) (<-chan Message, bool) {
	if !c.canRecv() {
		return nil, false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	box := k.box(c.ep)
	if box == nil {
		return nil, false
	}
	return box.ch, true
}

func (k *Kernel) deliver(to Capability, kind uint16, payload []byte) SendResult {
	switch {
	case !to.Valid():
		return SendErrInvalidCap
	case !to.canSend():
		return SendErrNoSendRight
	case len(payload) > MaxMessageBytes:
		return SendErrPayloadTooLarge
	}

	msg := Message{Kind: kind, Len: uint16(len(payload))}
	copy(msg.Data[:], payload)

	k.mu.Lock()
	defer k.mu.Unlock()
	box := k.box(to.ep)
	if box == nil || box.closed {
		return SendErrNoEndpoint
	}
	select {
	case box.ch <- msg:
		return SendOK
	default:
		return SendErrQueueFull
	}
}
