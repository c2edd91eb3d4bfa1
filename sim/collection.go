package sim

// Collection groups several Components under a joint occupancy rule (spec
// §3, §4.4). BlockExclusiveZone is the only variant spec.md names.
type Collection interface {
	UID() string
	CanAcceptAgent(agent *Train, seg *RouteSegment) bool
	AcceptAgent(agent *Train)
	ReleaseAgent(agent *Train, next *RouteSegment)
}

// BlockExclusiveZone admits at most one agent across all of its member
// components at any time (spec §4.4).
type BlockExclusiveZone struct {
	uid       string
	occupied  bool
	waitQueue []*Train
	// targetSeg records, for each queued agent, the segment it is trying to
	// enter — the agent's own current_segment doesn't help here, since an
	// agent queued on its very first-ever segment has none yet (spec §9
	// open question).
	targetSeg map[*Train]*RouteSegment
}

// NewBlockExclusiveZone creates an unoccupied BlockExclusiveZone.
func NewBlockExclusiveZone(uid string) *BlockExclusiveZone {
	return &BlockExclusiveZone{uid: uid, targetSeg: make(map[*Train]*RouteSegment)}
}

// UID returns the collection's unique identifier.
func (z *BlockExclusiveZone) UID() string { return z.uid }

// Occupied reports whether some agent currently holds the zone.
func (z *BlockExclusiveZone) Occupied() bool { return z.occupied }

// isInternalMove reports whether agent is moving between two components
// that both belong to this zone — such moves must never flip occupancy.
func (z *BlockExclusiveZone) isInternalMove(agent *Train) bool {
	seg := agent.CurrentSegment()
	return seg != nil && seg.Component.Collection() != nil && seg.Component.Collection().UID() == z.uid
}

func (z *BlockExclusiveZone) inQueue(agent *Train) bool {
	for _, a := range z.waitQueue {
		if a == agent {
			return true
		}
	}
	return false
}

// CanAcceptAgent implements the entry admission predicate: internal moves
// always pass; external entries are enqueued (if not already) and admitted
// only once unoccupied and at the head of the FIFO queue. For an external
// entry, seg is recorded as the agent's target regardless of outcome, so ReleaseAgent can re-poke
// the right Resource later even if the agent has not entered anything yet.
func (z *BlockExclusiveZone) CanAcceptAgent(agent *Train, seg *RouteSegment) bool {
	if z.isInternalMove(agent) {
		return true
	}
	z.targetSeg[agent] = seg
	if !z.inQueue(agent) {
		z.waitQueue = append(z.waitQueue, agent)
	}
	return !z.occupied && z.waitQueue[0] == agent
}

// AcceptAgent marks the zone occupied once an external entrant is admitted.
// Internal moves are a no-op.
func (z *BlockExclusiveZone) AcceptAgent(agent *Train) {
	if z.isInternalMove(agent) {
		return
	}
	if z.occupied || len(z.waitQueue) == 0 || z.waitQueue[0] != agent {
		panicInvariant("agent %s accepted into zone %s it was not cleared to enter", agent.UID, z.uid)
	}
	z.waitQueue = z.waitQueue[1:]
	z.occupied = true
	delete(z.targetSeg, agent)
}

// ReleaseAgent clears occupancy when the agent is leaving the zone (next is
// nil or outside the zone) and gives the next queued agent another chance
// to enter by re-triggering its target component's Resource. Moves that
// stay within the zone (next still inside it) are a no-op. The re-trigger
// goes through targetSeg rather than the queued agent's current_segment:
// an agent blocked on the very first segment of its tour has no current
// segment yet to read Next from (spec §9 open question).
func (z *BlockExclusiveZone) ReleaseAgent(agent *Train, next *RouteSegment) {
	if next != nil && next.Component.Collection() != nil && next.Component.Collection().UID() == z.uid {
		return
	}
	z.occupied = false
	if len(z.waitQueue) > 0 {
		head := z.waitQueue[0]
		if seg, ok := z.targetSeg[head]; ok {
			seg.Component.Resource().ProcessQueue()
		}
	}
}
