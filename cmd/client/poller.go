package main

import "sync"

// poller owns the background poll loop's lifecycle. At most one loop runs at
// a time: Start stops any previous loop before launching the next, so a
// re-login can never leave an old loop polling under a stale identity.
type poller struct {
	wg   sync.WaitGroup
	stop chan struct{}
}

// Start runs fn in the background until Stop. fn must return when its stop
// channel closes.
func (p *poller) Start(fn func(stop <-chan struct{})) {
	p.Stop()
	p.stop = make(chan struct{})
	p.wg.Add(1)
	go func(stop chan struct{}) {
		defer p.wg.Done()
		fn(stop)
	}(p.stop)
}

// Stop terminates the running loop, if any, and waits for it to exit.
func (p *poller) Stop() {
	if p.stop != nil {
		close(p.stop)
		p.wg.Wait()
		p.stop = nil
	}
}
