package sim

// TimedStation shares SimpleStation's boarding/alighting dwell formula.
// traversalTime is retained as configuration metadata only — it plays no
// part in the dwell computation (spec §4.3).
type TimedStation struct {
	BaseComponent
	resource      *Resource
	traversalTime int
	meanBoarding  float64
	meanAlighting float64
}

// NewTimedStation creates a TimedStation. traversalTime must be positive
// even though it is unused by Do, matching the source's retained-but-dead
// field.
func NewTimedStation(key ComponentKey, traversalTime int, meanBoarding, meanAlighting float64, jitter Jitter, collection Collection) (*TimedStation, error) {
	if traversalTime <= 0 {
		return nil, wrapNotPositive("timed station %q traversal_time must be positive, got %d", key.UID(), traversalTime)
	}
	c := &TimedStation{
		BaseComponent: newBaseComponent(key, "TimedStation", jitter, collection),
		traversalTime: traversalTime,
		meanBoarding:  meanBoarding,
		meanAlighting: meanAlighting,
	}
	c.resource = NewResource(1, c)
	return c, nil
}

func (c *TimedStation) Resource() *Resource { return c.resource }

func (c *TimedStation) CanAcceptAgent(agent *Train, seg *RouteSegment) bool {
	return c.collectionPermits(agent, seg)
}

func (c *TimedStation) AcceptAgent(agent *Train, seg *RouteSegment) {
	c.trackAgent(agent)
}

func (c *TimedStation) ReleaseAgent(agent *Train, next *RouteSegment) {
	c.untrackAgent(agent, next)
}

func (c *TimedStation) Do(sched *Scheduler, t *Task, train *Train) {
	d := stationDwell(c.meanBoarding, c.meanAlighting, c.jitter.Sample())
	if d < 0 {
		d = 0
	}
	sched.Timeout(t, int64(d))
}

func (c *TimedStation) AsRecord() ComponentRecord {
	return ComponentRecord{
		Type: "TimedStation",
		U:    c.key.U, V: c.key.V, Key: c.key.Key,
		Args: map[string]any{
			"traversal_time": c.traversalTime,
			"mean_boarding":  c.meanBoarding,
			"mean_alighting": c.meanAlighting,
		},
	}
}
