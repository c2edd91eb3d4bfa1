package sim

import "math"

// TraversalModel computes the number of ticks needed to cover distance at
// topSpeed. PhysicsTrack delegates to it rather than implementing
// acceleration/deceleration kinematics itself: the source's acceleration
// model is an unimplemented callback and spec.md explicitly directs
// implementers not to guess at the formula (spec §9 Open Questions).
type TraversalModel interface {
	BasicTraversal(distance, topSpeed float64) int
}

// DefaultTraversalModel is the stub shipped with this package: plain
// distance/speed with no acceleration phase. It exists only to exercise
// PhysicsTrack's wiring — callers needing the real kinematics model supply
// their own TraversalModel.
type DefaultTraversalModel struct{}

func (DefaultTraversalModel) BasicTraversal(distance, topSpeed float64) int {
	return int(math.Ceil(distance / topSpeed))
}

// PhysicsTrack is a capacity-1 track whose traversal time comes from an
// injectable TraversalModel rather than a fixed duration (spec §4.3).
type PhysicsTrack struct {
	BaseComponent
	resource *Resource
	length   float64
	topSpeed float64
	model    TraversalModel
}

// NewPhysicsTrack creates a PhysicsTrack. length and topSpeed must be
// strictly positive. model may be nil, in which case DefaultTraversalModel
// is used.
func NewPhysicsTrack(key ComponentKey, length, topSpeed float64, model TraversalModel, jitter Jitter, collection Collection) (*PhysicsTrack, error) {
	if length <= 0 {
		return nil, wrapNotPositive("physics track %q length must be positive, got %v", key.UID(), length)
	}
	if topSpeed <= 0 {
		return nil, wrapNotPositive("physics track %q top_speed must be positive, got %v", key.UID(), topSpeed)
	}
	if model == nil {
		model = DefaultTraversalModel{}
	}
	c := &PhysicsTrack{
		BaseComponent: newBaseComponent(key, "PhysicsTrack", jitter, collection),
		length:        length,
		topSpeed:      topSpeed,
		model:         model,
	}
	c.resource = NewResource(1, c)
	return c, nil
}

func (c *PhysicsTrack) Resource() *Resource { return c.resource }

func (c *PhysicsTrack) CanAcceptAgent(agent *Train, seg *RouteSegment) bool {
	return c.collectionPermits(agent, seg)
}

func (c *PhysicsTrack) AcceptAgent(agent *Train, seg *RouteSegment) {
	c.trackAgent(agent)
}

func (c *PhysicsTrack) ReleaseAgent(agent *Train, next *RouteSegment) {
	c.untrackAgent(agent, next)
}

func (c *PhysicsTrack) Do(sched *Scheduler, t *Task, train *Train) {
	effectiveSpeed := c.topSpeed
	if train.MaxSpeed < effectiveSpeed {
		effectiveSpeed = train.MaxSpeed
	}
	d := c.model.BasicTraversal(c.length, effectiveSpeed) + c.jitter.Sample()
	if d < 0 {
		d = 0
	}
	sched.Timeout(t, int64(d))
}

func (c *PhysicsTrack) AsRecord() ComponentRecord {
	return ComponentRecord{
		Type: "PhysicsTrack",
		U:    c.key.U, V: c.key.V, Key: c.key.Key,
		Args: map[string]any{
			"length":    c.length,
			"top_speed": c.topSpeed,
		},
	}
}
