package simclock

// Signal is a one-shot completion event. Processes block on conjunctions of
// signals via Proc.WaitAll; firing a signal wakes every waiter whose full
// conjunction is now satisfied.
type Signal struct {
	env     *Env
	name    string
	fired   bool
	waiters []*waiter
}

// waiter tracks one parked process and how many of its signals are still
// outstanding.
type waiter struct {
	proc    *Proc
	pending int
}

// NewSignal creates an unfired signal bound to this environment.
func (e *Env) NewSignal(name string) *Signal {
	return &Signal{env: e, name: name}
}

// Name returns the identifier the signal was created with.
func (s *Signal) Name() string {
	return s.name
}

// Fired reports whether the signal has already fired.
func (s *Signal) Fired() bool {
	return s.fired
}

// Fire marks the signal done and moves waiters whose conjunction is fully
// satisfied to the ready queue, to resume at the current instant. Firing an
// already-fired signal is a no-op. Must be called from a running process.
func (s *Signal) Fire() {
	if s.fired {
		return
	}
	s.fired = true
	for _, w := range s.waiters {
		w.pending--
		if w.pending == 0 {
			s.env.ready.PushBack(w.proc)
		}
	}
	s.waiters = nil
}
