package simclock

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/addrummond/heap"
	"github.com/gammazero/deque"
)

// ErrStalled is returned by Run when the event queue drains before every
// process has terminated, i.e. some processes are blocked forever on
// signals that can no longer fire.
var ErrStalled = errors.New("simulation stalled")

// timer is one pending timed resumption.
type timer struct {
	at   float64
	seq  int64
	proc *Proc
}

func (a *timer) Cmp(b *timer) int {
	if c := cmp.Compare(a.at, b.at); c != 0 {
		return c
	}
	// Tie-break on scheduling order so same-instant timers fire FIFO.
	return cmp.Compare(a.seq, b.seq)
}

// Env owns the simulated clock and the set of processes driving it. It is
// not safe for use from goroutines other than its own processes and the
// goroutine that calls Run.
type Env struct {
	now     float64
	seq     int64
	timers  heap.Heap[timer, heap.Min]
	ready   deque.Deque[*Proc]
	procs   []*Proc
	yield   chan struct{}
	started bool
}

// NewEnv returns an environment with the clock at zero and no processes.
func NewEnv() *Env {
	return &Env{yield: make(chan struct{})}
}

// Now returns the current simulated time.
func (e *Env) Now() float64 {
	return e.now
}

// Spawn registers a new process. All spawned processes become runnable at
// time zero, in spawn order, when Run starts. Spawning after Run has been
// called is a programming error.
func (e *Env) Spawn(name string, fn func(*Proc)) *Proc {
	if e.started {
		panic("simclock: Spawn called after Run")
	}
	p := &Proc{name: name, env: e, fn: fn, resume: make(chan struct{})}
	e.procs = append(e.procs, p)
	return p
}

// Run drives the simulation to quiescence: same-instant wakeups drain FIFO
// from the ready queue, then the clock jumps to the earliest pending timer.
// It returns ErrStalled when any process never terminated.
func (e *Env) Run() error {
	if e.started {
		panic("simclock: Run called twice")
	}
	e.started = true

	for _, p := range e.procs {
		p.start()
		e.ready.PushBack(p)
	}

	for {
		var p *Proc
		if e.ready.Len() > 0 {
			p = e.ready.PopFront()
		} else {
			tm, ok := heap.PopOrderable(&e.timers)
			if !ok {
				break
			}
			e.now = tm.at
			p = tm.proc
		}
		// Hand control to the process and block until it parks or ends.
		p.resume <- struct{}{}
		<-e.yield
	}

	var blocked []string
	for _, p := range e.procs {
		if !p.done {
			blocked = append(blocked, p.name)
		}
	}
	if len(blocked) > 0 {
		return fmt.Errorf("%w: %d process(es) never completed: %s",
			ErrStalled, len(blocked), strings.Join(blocked, ", "))
	}
	return nil
}

// scheduleAfter queues a timed resumption for p at now+d. Zero-delay
// resumptions go through the ready queue so they stay FIFO with signal
// wakeups at the same instant.
func (e *Env) scheduleAfter(p *Proc, d float64) {
	if d == 0 {
		e.ready.PushBack(p)
		return
	}
	e.seq++
	heap.PushOrderable(&e.timers, timer{at: e.now + d, seq: e.seq, proc: p})
}
