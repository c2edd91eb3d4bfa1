package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"
)

// schedEvent is one entry in the Scheduler's priority queue: a due time and
// the continuation to run once that time is reached. Ties break on seq,
// which is assigned in call order, giving FIFO ordering among events
// scheduled for the same tick (spec §5).
type schedEvent struct {
	time int64
	seq  uint64
	fn   func(*Scheduler)
}

// eventQueue implements heap.Interface ordered by (time, seq), mirroring
// the teacher's EventQueue/EventHeap (sim/simulator.go, sim/cluster
// /event_heap.go): lower timestamp first, insertion order breaks ties.
type eventQueue []*schedEvent

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].time != q[j].time {
		return q[i].time < q[j].time
	}
	return q[i].seq < q[j].seq
}
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x any)   { *q = append(*q, x.(*schedEvent)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Task is one cooperative activity driven by the Scheduler — in this
// simulator, exactly one Task per Train. Suspension points (Timeout, Event
// await, Resource request) all run on the Task's own goroutine stack,
// which is why component behaviors never need a goroutine of their own:
// Component.Do is called synchronously from within the owning Train's
// Task.
//
// Only one Task ever runs application logic at a time; the Scheduler's
// resumeAndWait enforces the handoff so reasoning about ordering stays
// serial, per spec §5.
type Task struct {
	proceed  chan struct{}
	yielded  chan struct{}
	finished bool
	panicked any
}

// suspend hands control back to the Scheduler and blocks until it is
// resumed. Every suspension point in this package funnels through here.
func (t *Task) suspend() {
	t.yielded <- struct{}{}
	<-t.proceed
}

// Scheduler is the virtual-time event queue and cooperative task runtime
// (spec §4.1).
type Scheduler struct {
	queue eventQueue
	now   int64
	seq   uint64
}

// NewScheduler creates a Scheduler with the clock at zero.
func NewScheduler() *Scheduler {
	s := &Scheduler{queue: make(eventQueue, 0)}
	heap.Init(&s.queue)
	return s
}

// Now returns the current virtual time.
func (s *Scheduler) Now() int64 { return s.now }

func (s *Scheduler) pushEvent(due int64, fn func(*Scheduler)) {
	s.seq++
	heap.Push(&s.queue, &schedEvent{time: due, seq: s.seq, fn: fn})
}

// resumeAndWait wakes t and blocks until t suspends again or finishes. This
// is the only place a Task is ever allowed to run concurrently with the
// Scheduler's own goroutine, and it always ends with the Scheduler blocked
// again before returning — preserving single-threaded serial semantics. A
// panic raised inside t is re-raised here, on the resuming goroutine.
func (s *Scheduler) resumeAndWait(t *Task) {
	t.proceed <- struct{}{}
	if !t.finished {
		<-t.yielded
	}
	if t.panicked != nil {
		panic(t.panicked)
	}
}

// Spawn starts a new Task running fn and runs it until its first
// suspension point (or completion, if fn never suspends).
func (s *Scheduler) Spawn(fn func(*Task)) *Task {
	t := &Task{proceed: make(chan struct{}), yielded: make(chan struct{})}
	go func() {
		<-t.proceed
		defer func() {
			t.panicked = recover()
			t.finished = true
			t.yielded <- struct{}{}
		}()
		fn(t)
	}()
	s.resumeAndWait(t)
	return t
}

// Timeout suspends t until now+d, then resumes it. d must be non-negative.
func (s *Scheduler) Timeout(t *Task, d int64) {
	if d < 0 {
		panicInvariant("timeout duration must be non-negative, got %d", d)
	}
	due := s.now + d
	s.pushEvent(due, func(sch *Scheduler) {
		sch.resumeAndWait(t)
	})
	t.suspend()
}

// Event is an explicit future completed by Succeed, analogous to the
// coroutine-native "event()" primitive in spec §4.1.
type Event struct {
	sched        *Scheduler
	owner        *Task
	fired        bool
	preSucceeded bool
}

// NewEvent creates an event not yet awaited by anyone.
func (s *Scheduler) NewEvent() *Event {
	return &Event{sched: s}
}

// Succeed completes the event. If a task is already awaiting it, the wake
// is scheduled as a same-tick queue entry rather than fired in place, so
// concurrently-running tasks never execute logic at the same instant — the
// Scheduler's own loop always mediates the handoff (spec §5 ordering
// guarantees for simultaneously-unblocked agents).
func (e *Event) Succeed() {
	if e.fired {
		return
	}
	e.fired = true
	if e.owner == nil {
		e.preSucceeded = true
		return
	}
	owner := e.owner
	e.sched.pushEvent(e.sched.now, func(sch *Scheduler) {
		sch.resumeAndWait(owner)
	})
}

// Await suspends t until the event succeeds. If it has already succeeded
// (Succeed was called before anyone awaited it), Await returns immediately
// without suspending.
func (e *Event) Await(t *Task) {
	if e.preSucceeded {
		return
	}
	e.owner = t
	t.suspend()
}

// Run drains the event queue. If until is non-nil, the clock advances to
// *until and Run halts even if events remain beyond that point — a later
// call to Run resumes processing them (spec §4.1, §4.6).
func (s *Scheduler) Run(until *int64) {
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if until != nil && next.time > *until {
			break
		}
		ev := heap.Pop(&s.queue).(*schedEvent)
		if ev.time < s.now {
			panicInvariant("clock went backwards: %d < %d", ev.time, s.now)
		}
		s.now = ev.time
		logrus.Debugf("[tick %d] executing scheduled event", s.now)
		ev.fn(s)
	}
	if until != nil && s.now < *until {
		s.now = *until
	}
}
