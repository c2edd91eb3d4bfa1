package sim

import "github.com/sirupsen/logrus"

// admissionGate is implemented by whatever owns a Resource — always a
// Component — and lets the Resource consult component/collection state
// beyond raw capacity before granting a request (spec §4.2).
type admissionGate interface {
	CanAcceptAgent(agent *Train, seg *RouteSegment) bool
	AcceptAgent(agent *Train, seg *RouteSegment)
}

// waiter is one outstanding request against a Resource. seg is the segment
// the agent is trying to enter, threaded through to the admission gate so
// components like MultiBlockTrack can read seg.Prev/seg.Next.
type waiter struct {
	agent *Train
	seg   *RouteSegment
	ev    *Event
}

// Resource is the capacity-gating object owned by a Component (spec §4.2).
// Admission is FIFO: a waiter is only ever considered once it reaches the
// head of the queue, and a failed predicate re-check never reorders the
// queue behind it.
type Resource struct {
	capacity int
	gate     admissionGate
	users    []*waiter
	waitQ    []*waiter
}

// NewResource creates a Resource with the given capacity, gated by owner.
func NewResource(capacity int, owner admissionGate) *Resource {
	if capacity < 1 {
		panicInvariant("resource capacity must be >= 1, got %d", capacity)
	}
	return &Resource{capacity: capacity, gate: owner}
}

// Count returns the number of agents currently holding a slot.
func (r *Resource) Count() int { return len(r.users) }

// Capacity returns the resource's configured capacity.
func (r *Resource) Capacity() int { return r.capacity }

// Request asks for a usage slot on behalf of agent, suspending t until one
// is granted. Admission is attempted immediately; if not granted right
// away the caller waits at the back of the FIFO queue.
func (r *Resource) Request(sched *Scheduler, t *Task, agent *Train, seg *RouteSegment) {
	w := &waiter{agent: agent, seg: seg, ev: sched.NewEvent()}
	r.waitQ = append(r.waitQ, w)
	r.tryAdmit()
	w.ev.Await(t)
}

// Release drops agent's usage slot and re-evaluates the wait queue. This is
// purely capacity bookkeeping: the component/collection-level consequences
// of the agent leaving (occupant tracking, collection notification) are
// handled separately by Component.ReleaseAgent, called directly by the
// train at transfer time rather than from here — mirroring the split in the
// reference model between freeing a capacity slot and the agent's own
// transfer_to notifying the component it left (spec §4.5, §9).
func (r *Resource) Release(agent *Train, next *RouteSegment) {
	for i, u := range r.users {
		if u.agent == agent {
			r.users = append(r.users[:i], r.users[i+1:]...)
			r.tryAdmit()
			return
		}
	}
	logrus.Warnf("release called for agent %s not holding a slot", agent.UID)
}

// ProcessQueue re-evaluates waiters without a corresponding release or new
// request — used when external component state changed in a way that may
// newly satisfy the admission predicate (spec §4.2, e.g. MultiBlockTrack
// freeing an internal block).
func (r *Resource) ProcessQueue() {
	r.tryAdmit()
}

// tryAdmit admits waiters from the head of the queue for as long as
// capacity remains and each successive head passes the admission
// predicate. A predicate failure stops the scan entirely — it does not
// skip ahead to a later waiter.
func (r *Resource) tryAdmit() {
	for len(r.waitQ) > 0 && len(r.users) < r.capacity {
		head := r.waitQ[0]
		if !r.gate.CanAcceptAgent(head.agent, head.seg) {
			break
		}
		r.waitQ = r.waitQ[1:]
		r.users = append(r.users, head)
		r.gate.AcceptAgent(head.agent, head.seg)
		head.ev.Succeed()
	}
}
