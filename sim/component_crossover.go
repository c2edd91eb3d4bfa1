package sim

// SimpleCrossover is a capacity-1 fixed-duration junction (spec §4.3).
type SimpleCrossover struct {
	BaseComponent
	resource      *Resource
	traversalTime int
}

// NewSimpleCrossover creates a SimpleCrossover. traversalTime must be
// positive.
func NewSimpleCrossover(key ComponentKey, traversalTime int, jitter Jitter, collection Collection) (*SimpleCrossover, error) {
	if traversalTime <= 0 {
		return nil, wrapNotPositive("crossover %q traversal_time must be positive, got %d", key.UID(), traversalTime)
	}
	c := &SimpleCrossover{
		BaseComponent: newBaseComponent(key, "SimpleCrossover", jitter, collection),
		traversalTime: traversalTime,
	}
	c.resource = NewResource(1, c)
	return c, nil
}

func (c *SimpleCrossover) Resource() *Resource { return c.resource }

func (c *SimpleCrossover) CanAcceptAgent(agent *Train, seg *RouteSegment) bool {
	return c.collectionPermits(agent, seg)
}

func (c *SimpleCrossover) AcceptAgent(agent *Train, seg *RouteSegment) {
	c.trackAgent(agent)
}

func (c *SimpleCrossover) ReleaseAgent(agent *Train, next *RouteSegment) {
	c.untrackAgent(agent, next)
}

func (c *SimpleCrossover) Do(sched *Scheduler, t *Task, train *Train) {
	d := c.traversalTime + c.jitter.Sample()
	if d < 0 {
		d = 0
	}
	sched.Timeout(t, int64(d))
}

func (c *SimpleCrossover) AsRecord() ComponentRecord {
	return ComponentRecord{
		Type: "SimpleCrossover",
		U:    c.key.U, V: c.key.V, Key: c.key.Key,
		Args: map[string]any{"traversal_time": c.traversalTime},
	}
}
