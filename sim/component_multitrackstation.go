package sim

import "math/rand"

// trackAssignment records which track an agent holds at a MultiTrackStation
// and whether it is a stopping or bypass move.
type trackAssignment struct {
	stopping bool
	index    int
}

// MultiTrackStation offers separate stopping and bypass tracks: a train
// "is stopping" iff the route segment it is entering on has a non-nil
// departure hold, otherwise it bypasses straight through (spec §4.3).
type MultiTrackStation struct {
	BaseComponent
	resource    *Resource
	numStopping int
	numBypass   int
	bypassTime  int
	burrC       float64
	burrD       float64
	burrLoc     float64
	burrScale   float64
	rng         *rand.Rand

	stoppingTracks []*Train
	bypassTracks   []*Train
	assignment     map[string]trackAssignment
}

// NewMultiTrackStation creates a MultiTrackStation. numStopping, numBypass
// and bypassTime must be strictly positive.
func NewMultiTrackStation(key ComponentKey, numStopping, numBypass, bypassTime int, burrC, burrD, burrLoc, burrScale float64, rng *rand.Rand, jitter Jitter, collection Collection) (*MultiTrackStation, error) {
	if numStopping <= 0 {
		return nil, wrapNotPositive("multi-track station %q num_stopping_tracks must be positive, got %d", key.UID(), numStopping)
	}
	if numBypass <= 0 {
		return nil, wrapNotPositive("multi-track station %q num_bypass_tracks must be positive, got %d", key.UID(), numBypass)
	}
	if bypassTime <= 0 {
		return nil, wrapNotPositive("multi-track station %q bypass_time must be positive, got %d", key.UID(), bypassTime)
	}
	c := &MultiTrackStation{
		BaseComponent:  newBaseComponent(key, "MultiTrackStation", jitter, collection),
		numStopping:    numStopping,
		numBypass:      numBypass,
		bypassTime:     bypassTime,
		burrC:          burrC,
		burrD:          burrD,
		burrLoc:        burrLoc,
		burrScale:      burrScale,
		rng:            rng,
		stoppingTracks: make([]*Train, numStopping),
		bypassTracks:   make([]*Train, numBypass),
		assignment:     make(map[string]trackAssignment),
	}
	c.resource = NewResource(numStopping+numBypass, c)
	return c, nil
}

func (c *MultiTrackStation) Resource() *Resource { return c.resource }

func isStopping(seg *RouteSegment) bool { return seg.Departure != nil }

func (c *MultiTrackStation) freeStoppingTrack() int {
	for i, occ := range c.stoppingTracks {
		if occ == nil {
			return i
		}
	}
	return -1
}

func (c *MultiTrackStation) freeBypassTrack() int {
	for i, occ := range c.bypassTracks {
		if occ == nil {
			return i
		}
	}
	return -1
}

// CanAcceptAgent implements spec §4.3: a stopping agent needs a free
// stopping track; a bypassing agent accepts a free track of either kind.
func (c *MultiTrackStation) CanAcceptAgent(agent *Train, seg *RouteSegment) bool {
	if !c.collectionPermits(agent, seg) {
		return false
	}
	if isStopping(seg) {
		return c.freeStoppingTrack() != -1
	}
	return c.freeBypassTrack() != -1 || c.freeStoppingTrack() != -1
}

// AcceptAgent assigns a bypass track first when bypassing and one is free,
// otherwise a stopping track (spec §4.3 "Acceptance").
func (c *MultiTrackStation) AcceptAgent(agent *Train, seg *RouteSegment) {
	stopping := isStopping(seg)
	if !stopping {
		if i := c.freeBypassTrack(); i != -1 {
			c.bypassTracks[i] = agent
			c.assignment[agent.UID] = trackAssignment{stopping: false, index: i}
			c.trackAgent(agent)
			return
		}
	}
	i := c.freeStoppingTrack()
	if i == -1 {
		panicInvariant("multi-track station %s: admission predicate passed but no track could be assigned", c.UID())
	}
	c.stoppingTracks[i] = agent
	c.assignment[agent.UID] = trackAssignment{stopping: true, index: i}
	c.trackAgent(agent)
}

func (c *MultiTrackStation) ReleaseAgent(agent *Train, next *RouteSegment) {
	a, ok := c.assignment[agent.UID]
	if !ok {
		panicInvariant("multi-track station %s: release for agent %s not tracked", c.UID(), agent.UID)
	}
	if a.stopping {
		c.stoppingTracks[a.index] = nil
	} else {
		c.bypassTracks[a.index] = nil
	}
	delete(c.assignment, agent.UID)
	c.untrackAgent(agent, next)
}

func (c *MultiTrackStation) Do(sched *Scheduler, t *Task, train *Train) {
	a := c.assignment[train.UID]
	var d int
	if a.stopping {
		d = roundToInt(burrRVS(c.rng, c.burrC, c.burrD, c.burrLoc, c.burrScale)) + c.jitter.Sample()
	} else {
		d = c.bypassTime + c.jitter.Sample()
	}
	if d < 0 {
		d = 0
	}
	sched.Timeout(t, int64(d))
}

func (c *MultiTrackStation) AsRecord() ComponentRecord {
	return ComponentRecord{
		Type: "MultiTrackStation",
		U:    c.key.U, V: c.key.V, Key: c.key.Key,
		Args: map[string]any{
			"num_stopping_tracks": c.numStopping,
			"num_bypass_tracks":   c.numBypass,
			"bypass_time":         c.bypassTime,
			"burr_c":              c.burrC,
			"burr_d":              c.burrD,
			"burr_loc":            c.burrLoc,
			"burr_scale":          c.burrScale,
		},
	}
}
