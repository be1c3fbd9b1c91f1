package field

import "sync"

// Scheduler arranges for a callback to run before the next frame is shown.
// The returned cancel function withdraws the request and is safe to call
// more than once, including after the callback ran.
type Scheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// FramePump is a Scheduler driven by the host's own loop. Each Pump call
// runs the callbacks requested before it; callbacks requested while pumping
// wait for the next Pump.
type FramePump struct {
	mu      sync.Mutex
	nextID  uint64
	pending []pendingFrame
}

type pendingFrame struct {
	id uint64
	fn func()
}

// NewFramePump creates an idle pump.
func NewFramePump() *FramePump {
	return &FramePump{}
}

// RequestFrame queues fn for the next Pump.
func (p *FramePump) RequestFrame(fn func()) func() {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.pending = append(p.pending, pendingFrame{id: id, fn: fn})
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { p.cancel(id) })
	}
}

// Pump runs the queued callbacks and returns how many ran.
func (p *FramePump) Pump() int {
	p.mu.Lock()
	batch := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, f := range batch {
		f.fn()
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (p *FramePump) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *FramePump) cancel(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, f := range p.pending {
		if f.id == id {
			p.pending = append(p.pending[:i], p.pending[i+1:]...)
			return
		}
	}
}
