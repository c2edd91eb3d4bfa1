package sim

// stationDwell implements the boarding/alighting dwell formula shared by
// SimpleStation and TimedStation (spec §4.3):
//
//	round(2 + 0.4*meanBoarding + 0.4*meanAlighting + jitter)
func stationDwell(meanBoarding, meanAlighting float64, jitter int) int {
	return roundToInt(2+0.4*meanBoarding+0.4*meanAlighting) + jitter
}

// SimpleStation is a capacity-1 stop whose dwell depends on mean
// boarding/alighting counts (spec §4.3).
type SimpleStation struct {
	BaseComponent
	resource      *Resource
	meanBoarding  float64
	meanAlighting float64
}

// NewSimpleStation creates a SimpleStation.
func NewSimpleStation(key ComponentKey, meanBoarding, meanAlighting float64, jitter Jitter, collection Collection) (*SimpleStation, error) {
	c := &SimpleStation{
		BaseComponent: newBaseComponent(key, "SimpleStation", jitter, collection),
		meanBoarding:  meanBoarding,
		meanAlighting: meanAlighting,
	}
	c.resource = NewResource(1, c)
	return c, nil
}

func (c *SimpleStation) Resource() *Resource { return c.resource }

func (c *SimpleStation) CanAcceptAgent(agent *Train, seg *RouteSegment) bool {
	return c.collectionPermits(agent, seg)
}

func (c *SimpleStation) AcceptAgent(agent *Train, seg *RouteSegment) {
	c.trackAgent(agent)
}

func (c *SimpleStation) ReleaseAgent(agent *Train, next *RouteSegment) {
	c.untrackAgent(agent, next)
}

func (c *SimpleStation) Do(sched *Scheduler, t *Task, train *Train) {
	d := stationDwell(c.meanBoarding, c.meanAlighting, c.jitter.Sample())
	if d < 0 {
		d = 0
	}
	sched.Timeout(t, int64(d))
}

func (c *SimpleStation) AsRecord() ComponentRecord {
	return ComponentRecord{
		Type: "SimpleStation",
		U:    c.key.U, V: c.key.V, Key: c.key.Key,
		Args: map[string]any{
			"mean_boarding":  c.meanBoarding,
			"mean_alighting": c.meanAlighting,
		},
	}
}
