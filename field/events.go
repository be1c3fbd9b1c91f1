package field

import "sync"

// Handler receives host input events in viewport pixel coordinates.
type Handler interface {
	PointerMove(x, y float32)
	Click(x, y float32)
	Resize(width, height int)
}

// Subscription detaches a Handler. Unsubscribe is safe to call more than once.
type Subscription interface {
	Unsubscribe()
}

// EventSource delivers host input events to subscribed handlers.
type EventSource interface {
	Subscribe(h Handler) Subscription
}

// Dispatcher is an EventSource that hosts feed directly.
// It is safe for concurrent use; handlers are invoked outside its lock so
// they may subscribe or unsubscribe from within a callback.
type Dispatcher struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []dispatchEntry
}

type dispatchEntry struct {
	id uint64
	h  Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers h and returns its subscription.
func (d *Dispatcher) Subscribe(h Handler) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.handlers = append(d.handlers, dispatchEntry{id: id, h: h})
	return &subscription{d: d, id: id}
}

// Len returns the number of subscribed handlers.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}

// PointerMove forwards a pointer move to every handler.
func (d *Dispatcher) PointerMove(x, y float32) {
	for _, h := range d.snapshot() {
		h.PointerMove(x, y)
	}
}

// Click forwards a primary-button press to every handler.
func (d *Dispatcher) Click(x, y float32) {
	for _, h := range d.snapshot() {
		h.Click(x, y)
	}
}

// Resize forwards a viewport resize to every handler.
func (d *Dispatcher) Resize(width, height int) {
	for _, h := range d.snapshot() {
		h.Resize(width, height)
	}
}

func (d *Dispatcher) snapshot() []Handler {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Handler, len(d.handlers))
	for i, e := range d.handlers {
		out[i] = e.h
	}
	return out
}

func (d *Dispatcher) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, e := range d.handlers {
		if e.id == id {
			d.handlers = append(d.handlers[:i], d.handlers[i+1:]...)
			return
		}
	}
}

type subscription struct {
	d    *Dispatcher
	id   uint64
	once sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() { s.d.remove(s.id) })
}
