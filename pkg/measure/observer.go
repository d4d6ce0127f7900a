// Package measure delivers container size changes to interested parties.
//
// An [Observer] is the asynchronous half of layout: whoever can measure the
// display (a terminal resize event, a test) calls [Observer.Publish], and
// every subscriber receives the latest size through its callback. Layout
// computation itself stays synchronous in the subscriber.
//
//	obs := measure.NewObserver()
//	cancel := obs.Observe(func(b grid.Box) {
//	    layout := grid.Compute(4000, b, constraints)
//	    ...
//	})
//	defer cancel()
//
// A new subscriber is immediately called with the last published size, if
// any, so late registrations never miss the first measurement.
package measure

import (
	"sync"

	"github.com/matzehuels/weeks/pkg/errors"
	"github.com/matzehuels/weeks/pkg/grid"
)

// Observer fans out size measurements. The zero value is not usable; use
// [NewObserver].
type Observer struct {
	mu       sync.Mutex
	next     uint64
	seq      uint64
	subs     map[uint64]*subscriber
	latest   grid.Box
	measured bool
}

// subscriber serializes deliveries to one callback and drops any that are
// older than the last one it saw.
type subscriber struct {
	mu   sync.Mutex
	seen uint64
	fn   func(grid.Box)
}

func (s *subscriber) deliver(seq uint64, b grid.Box) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.seen {
		return
	}
	s.seen = seq
	s.fn(b)
}

// NewObserver creates an Observer with no measurement yet.
func NewObserver() *Observer {
	return &Observer{subs: make(map[uint64]*subscriber)}
}

// Observe registers fn and returns a function that unregisters it. Calling
// the returned function more than once is harmless. If a size was already
// published, fn is called with it before Observe returns.
func (o *Observer) Observe(fn func(grid.Box)) (cancel func()) {
	sub := &subscriber{fn: fn}

	o.mu.Lock()
	id := o.next
	o.next++
	o.subs[id] = sub
	latest, seq, ok := o.latest, o.seq, o.measured
	o.mu.Unlock()

	if ok {
		sub.deliver(seq, latest)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

// Publish records b as the latest size and calls every subscriber with it.
// Each publication is numbered; a subscriber never receives a size older
// than one it already got, so under concurrent publishers its last call
// always matches [Observer.Latest]. Callbacks run on the publishing
// goroutine outside the Observer lock and may call back into the Observer,
// but must not Publish synchronously.
func (o *Observer) Publish(b grid.Box) {
	o.mu.Lock()
	o.seq++
	seq := o.seq
	o.latest, o.measured = b, true
	subs := make([]*subscriber, 0, len(o.subs))
	for _, s := range o.subs {
		subs = append(subs, s)
	}
	o.mu.Unlock()

	for _, s := range subs {
		s.deliver(seq, b)
	}
}

// Latest returns the last published size. Before the first publication it
// returns an error with code MEASUREMENT_UNAVAILABLE, which callers recover
// from by falling back to viewport ratios (see [grid.Resolve]).
func (o *Observer) Latest() (grid.Box, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.measured {
		return grid.Box{}, errors.New(errors.ErrCodeMeasurementUnavailable, "container not measured yet")
	}
	return o.latest, nil
}

// Len returns the number of registered subscribers.
func (o *Observer) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}
