package simclock

// Proc is one logical process of the simulation. Its function runs on a
// dedicated goroutine that alternates strictly with the environment driver.
type Proc struct {
	name   string
	env    *Env
	fn     func(*Proc)
	resume chan struct{}
	done   bool
}

// Name returns the identifier the process was spawned with.
func (p *Proc) Name() string {
	return p.name
}

// Env returns the environment the process belongs to.
func (p *Proc) Env() *Env {
	return p.env
}

// Now returns the current simulated time.
func (p *Proc) Now() float64 {
	return p.env.now
}

// Hold suspends the calling process for d simulated time units. A zero
// duration yields to other same-instant wakeups without advancing the
// clock.
func (p *Proc) Hold(d float64) {
	if d < 0 {
		panic("simclock: negative hold duration")
	}
	p.env.scheduleAfter(p, d)
	p.park()
}

// WaitAll suspends the calling process until every given signal has fired.
// Already-fired signals count as satisfied; with nothing left to wait for
// it returns immediately.
func (p *Proc) WaitAll(signals ...*Signal) {
	w := &waiter{proc: p}
	for _, s := range signals {
		if !s.fired {
			w.pending++
			s.waiters = append(s.waiters, w)
		}
	}
	if w.pending == 0 {
		return
	}
	p.park()
}

// start launches the process goroutine, parked until the driver's first
// handoff.
func (p *Proc) start() {
	go func() {
		<-p.resume
		p.fn(p)
		p.done = true
		p.env.yield <- struct{}{}
	}()
}

// park returns control to the driver and blocks until resumed.
func (p *Proc) park() {
	p.env.yield <- struct{}{}
	<-p.resume
}
