package sim

// SimpleYard is a capacity-N source/sink with zero-duration dwell — trains
// pass through instantly once admitted (spec §4.3).
type SimpleYard struct {
	BaseComponent
	resource *Resource
}

// NewSimpleYard creates a SimpleYard. capacity must be strictly positive.
func NewSimpleYard(key ComponentKey, capacity int, jitter Jitter, collection Collection) (*SimpleYard, error) {
	if capacity <= 0 {
		return nil, wrapNotPositive("simple yard %q capacity must be positive, got %d", key.UID(), capacity)
	}
	c := &SimpleYard{BaseComponent: newBaseComponent(key, "SimpleYard", jitter, collection)}
	c.resource = NewResource(capacity, c)
	return c, nil
}

func (c *SimpleYard) Resource() *Resource { return c.resource }

func (c *SimpleYard) CanAcceptAgent(agent *Train, seg *RouteSegment) bool {
	return c.collectionPermits(agent, seg)
}

func (c *SimpleYard) AcceptAgent(agent *Train, seg *RouteSegment) {
	c.trackAgent(agent)
}

func (c *SimpleYard) ReleaseAgent(agent *Train, next *RouteSegment) {
	c.untrackAgent(agent, next)
}

// Do is a no-op: SimpleYard imposes no dwell.
func (c *SimpleYard) Do(sched *Scheduler, t *Task, train *Train) {}

func (c *SimpleYard) AsRecord() ComponentRecord {
	return ComponentRecord{
		Type: "SimpleYard",
		U:    c.key.U, V: c.key.V, Key: c.key.Key,
		Args: map[string]any{"capacity": c.resource.Capacity()},
	}
}
