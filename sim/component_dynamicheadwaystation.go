package sim

// DynamicHeadwayStation computes dwell from the elapsed time since the
// previous train's arrival rather than a fixed mean boarding/alighting
// count: closer headways mean fewer waiting passengers (spec §4.3).
type DynamicHeadwayStation struct {
	BaseComponent
	resource       *Resource
	firstTrainDwell int
	intercept       float64
	boardingSlope   float64
	alightingSlope  float64
	boardingRate    float64
	alightingRate   float64

	prevArrival *int64
}

// NewDynamicHeadwayStation creates a DynamicHeadwayStation.
func NewDynamicHeadwayStation(key ComponentKey, firstTrainDwell int, intercept, boardingSlope, alightingSlope, boardingRate, alightingRate float64, jitter Jitter, collection Collection) (*DynamicHeadwayStation, error) {
	if firstTrainDwell <= 0 {
		return nil, wrapNotPositive("dynamic headway station %q first_train_dwell must be positive, got %d", key.UID(), firstTrainDwell)
	}
	c := &DynamicHeadwayStation{
		BaseComponent:   newBaseComponent(key, "DynamicHeadwayStation", jitter, collection),
		firstTrainDwell: firstTrainDwell,
		intercept:       intercept,
		boardingSlope:   boardingSlope,
		alightingSlope:  alightingSlope,
		boardingRate:    boardingRate,
		alightingRate:   alightingRate,
	}
	c.resource = NewResource(1, c)
	return c, nil
}

func (c *DynamicHeadwayStation) Resource() *Resource { return c.resource }

func (c *DynamicHeadwayStation) CanAcceptAgent(agent *Train, seg *RouteSegment) bool {
	return c.collectionPermits(agent, seg)
}

func (c *DynamicHeadwayStation) AcceptAgent(agent *Train, seg *RouteSegment) {
	c.trackAgent(agent)
}

func (c *DynamicHeadwayStation) ReleaseAgent(agent *Train, next *RouteSegment) {
	c.untrackAgent(agent, next)
}

func (c *DynamicHeadwayStation) Do(sched *Scheduler, t *Task, train *Train) {
	now := sched.Now()
	var d int
	if c.prevArrival == nil {
		d = c.firstTrainDwell
	} else {
		dt := float64(now - *c.prevArrival)
		d = roundToInt(c.intercept + c.boardingSlope*(dt*c.boardingRate) + c.alightingSlope*(dt*c.alightingRate))
	}
	d += c.jitter.Sample()
	if d < 0 {
		d = 0
	}
	c.prevArrival = &now
	sched.Timeout(t, int64(d))
}

func (c *DynamicHeadwayStation) AsRecord() ComponentRecord {
	return ComponentRecord{
		Type: "DynamicHeadwayStation",
		U:    c.key.U, V: c.key.V, Key: c.key.Key,
		Args: map[string]any{
			"first_train_dwell": c.firstTrainDwell,
			"intercept":         c.intercept,
			"boarding_slope":    c.boardingSlope,
			"alighting_slope":   c.alightingSlope,
			"boarding_rate":     c.boardingRate,
			"alighting_rate":    c.alightingRate,
		},
	}
}
