package simclock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldOrdering(t *testing.T) {
	env := NewEnv()
	var trace []string

	env.Spawn("slow", func(p *Proc) {
		p.Hold(5)
		trace = append(trace, fmt.Sprintf("slow@%v", p.Now()))
	})
	env.Spawn("fast", func(p *Proc) {
		p.Hold(2)
		trace = append(trace, fmt.Sprintf("fast@%v", p.Now()))
	})

	require.NoError(t, env.Run())
	assert.Equal(t, []string{"fast@2", "slow@5"}, trace)
	assert.Equal(t, 5.0, env.Now())
}

func TestSameInstantFIFO(t *testing.T) {
	env := NewEnv()
	var trace []string

	// Both wake at t=3; spawn order must decide who runs first.
	for _, name := range []string{"first", "second", "third"} {
		name := name
		env.Spawn(name, func(p *Proc) {
			p.Hold(3)
			trace = append(trace, name)
		})
	}

	require.NoError(t, env.Run())
	assert.Equal(t, []string{"first", "second", "third"}, trace)
}

func TestZeroHoldYields(t *testing.T) {
	env := NewEnv()
	var trace []string

	env.Spawn("a", func(p *Proc) {
		trace = append(trace, "a1")
		p.Hold(0)
		trace = append(trace, "a2")
	})
	env.Spawn("b", func(p *Proc) {
		trace = append(trace, "b1")
	})

	require.NoError(t, env.Run())
	// The zero-delay hold lets b run before a resumes, without moving time.
	assert.Equal(t, []string{"a1", "b1", "a2"}, trace)
	assert.Zero(t, env.Now())
}

func TestWaitAll(t *testing.T) {
	env := NewEnv()
	sigA := env.NewSignal("a")
	sigB := env.NewSignal("b")

	var wokeAt float64
	env.Spawn("consumer", func(p *Proc) {
		p.WaitAll(sigA, sigB)
		wokeAt = p.Now()
	})
	env.Spawn("producerA", func(p *Proc) {
		p.Hold(1)
		sigA.Fire()
	})
	env.Spawn("producerB", func(p *Proc) {
		p.Hold(4)
		sigB.Fire()
	})

	require.NoError(t, env.Run())
	// The conjunction is only satisfied once the slower producer fires.
	assert.Equal(t, 4.0, wokeAt)
	assert.True(t, sigA.Fired())
	assert.True(t, sigB.Fired())
}

func TestWaitAllAlreadyFired(t *testing.T) {
	env := NewEnv()
	sig := env.NewSignal("done")

	var trace []string
	env.Spawn("producer", func(p *Proc) {
		sig.Fire()
		trace = append(trace, "fired")
	})
	env.Spawn("consumer", func(p *Proc) {
		p.Hold(2)
		p.WaitAll(sig) // fired long ago, must not block
		trace = append(trace, "resumed")
	})

	require.NoError(t, env.Run())
	assert.Equal(t, []string{"fired", "resumed"}, trace)
}

func TestWaitAllEmpty(t *testing.T) {
	env := NewEnv()
	ran := false
	env.Spawn("p", func(p *Proc) {
		p.WaitAll()
		ran = true
	})
	require.NoError(t, env.Run())
	assert.True(t, ran)
}

func TestFireIsIdempotent(t *testing.T) {
	env := NewEnv()
	sig := env.NewSignal("once")

	wakeups := 0
	env.Spawn("consumer", func(p *Proc) {
		p.WaitAll(sig)
		wakeups++
	})
	env.Spawn("producer", func(p *Proc) {
		sig.Fire()
		sig.Fire()
	})

	require.NoError(t, env.Run())
	assert.Equal(t, 1, wakeups)
}

func TestRunStalled(t *testing.T) {
	env := NewEnv()
	never := env.NewSignal("never")

	env.Spawn("orphan", func(p *Proc) {
		p.WaitAll(never)
	})
	env.Spawn("fine", func(p *Proc) {
		p.Hold(1)
	})

	err := env.Run()
	require.ErrorIs(t, err, ErrStalled)
	assert.ErrorContains(t, err, "orphan")
	assert.NotContains(t, err.Error(), "fine")
}

func TestNegativeHoldPanics(t *testing.T) {
	env := NewEnv()
	env.Spawn("p", func(p *Proc) {
		assert.Panics(t, func() { p.Hold(-1) })
	})
	// The panicking Hold is recovered by assert.Panics, so the process still
	// terminates normally.
	require.NoError(t, env.Run())
}
