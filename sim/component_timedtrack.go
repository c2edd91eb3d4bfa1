package sim

// TimedTrack is a fixed-duration track segment: every train takes
// traversalTime ticks plus jitter, first-come-first-served against its
// capacity (spec §4.3).
type TimedTrack struct {
	BaseComponent
	resource      *Resource
	traversalTime int
}

// NewTimedTrack creates a TimedTrack. capacity and traversalTime must be
// strictly positive.
func NewTimedTrack(key ComponentKey, capacity, traversalTime int, jitter Jitter, collection Collection) (*TimedTrack, error) {
	if capacity <= 0 {
		return nil, wrapNotPositive("timed track %q capacity must be positive, got %d", key.UID(), capacity)
	}
	if traversalTime <= 0 {
		return nil, wrapNotPositive("timed track %q traversal_time must be positive, got %d", key.UID(), traversalTime)
	}
	c := &TimedTrack{
		BaseComponent: newBaseComponent(key, "TimedTrack", jitter, collection),
		traversalTime: traversalTime,
	}
	c.resource = NewResource(capacity, c)
	return c, nil
}

func (c *TimedTrack) Resource() *Resource { return c.resource }

func (c *TimedTrack) CanAcceptAgent(agent *Train, seg *RouteSegment) bool {
	return c.collectionPermits(agent, seg)
}

func (c *TimedTrack) AcceptAgent(agent *Train, seg *RouteSegment) {
	c.trackAgent(agent)
}

func (c *TimedTrack) ReleaseAgent(agent *Train, next *RouteSegment) {
	c.untrackAgent(agent, next)
}

func (c *TimedTrack) Do(sched *Scheduler, t *Task, train *Train) {
	d := c.traversalTime + c.jitter.Sample()
	if d < 0 {
		d = 0
	}
	sched.Timeout(t, int64(d))
}

func (c *TimedTrack) AsRecord() ComponentRecord {
	return ComponentRecord{
		Type: "TimedTrack",
		U:    c.key.U, V: c.key.V, Key: c.key.Key,
		Args: map[string]any{
			"capacity":       c.resource.Capacity(),
			"traversal_time": c.traversalTime,
		},
	}
}
