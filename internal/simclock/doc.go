// Package simclock is a discrete-event simulation environment. Many logical
// processes appear to run in parallel in simulated time while a single
// driver goroutine interleaves them cooperatively: exactly one process runs
// at any real instant, so processes never observe torn state from each
// other.
//
// A process suspends in exactly two ways: Hold parks it for a simulated
// duration via a min-heap of timed resumptions, and WaitAll parks it until a
// conjunction of completion signals has fired. Wakeups at the same simulated
// instant run in FIFO order, which keeps runs deterministic for a fixed
// input set.
package simclock
