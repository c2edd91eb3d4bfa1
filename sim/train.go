package sim

import "github.com/sirupsen/logrus"

// Train is the mobile agent traversing a Tour (spec §3, §4.5).
type Train struct {
	UID      string
	Tour     *Tour
	MaxSpeed float64
	Speed    float64

	model   *Model
	current *RouteSegment
}

// NewTrain creates a Train. maxSpeed must be strictly positive.
func NewTrain(model *Model, uid string, tour *Tour, maxSpeed float64) (*Train, error) {
	if maxSpeed <= 0 {
		return nil, wrapNotPositive("train %q max_speed must be positive, got %v", uid, maxSpeed)
	}
	return &Train{UID: uid, Tour: tour, MaxSpeed: maxSpeed, model: model}, nil
}

// CurrentSegment returns the segment the train currently occupies, or nil
// if it has not yet entered the network or has finished its tour.
func (t *Train) CurrentSegment() *RouteSegment { return t.current }

// run drives the traversal loop described in spec §4.5. It is invoked as
// the body of the Train's Task.
func (t *Train) run(task *Task) {
	sched := t.model.Scheduler
	var prevResource *Resource

	if wait := t.Tour.CreationTime - sched.Now(); wait > 0 {
		sched.Timeout(task, wait)
	}

	segments := t.Tour.Traverse()
	for _, seg := range segments {
		// 1. Arrival hold.
		if seg.Arrival != nil {
			wait := *seg.Arrival - sched.Now()
			if wait < 0 {
				wait = 0
			}
			if wait > 0 {
				sched.Timeout(task, wait)
			}
		}

		// 2. Request the new component's resource.
		res := seg.Component.Resource()
		res.Request(sched, task, t, seg)

		// 3. Transfer: point current at the new segment, then release the
		// previous component (notifying its collection with the segment
		// we're moving to). Acquire-new precedes release-old — admission already
		// ran AcceptAgent on the new component inside Resource.Request, so
		// by this point the train is never observably absent from every
		// component (spec §4.5 step 3-4 hard invariant).
		prevSeg := t.current
		t.current = seg
		if prevSeg != nil {
			prevSeg.Component.ReleaseAgent(t, seg)
		}

		// 4. Release the previous component's resource request now that
		// the new one is held.
		if prevResource != nil {
			prevResource.Release(t, seg)
		}
		logrus.Debugf("%d,%s,IN,%s,%s", sched.Now(), t.UID, seg.Component.UID(), seg.Component.Type())
		t.model.Log.Entry(sched.Now(), t.UID, seg.Component.UID(), seg.Component.Type())

		// 5. Dwell.
		seg.Component.Do(sched, task, t)

		// 6. Departure hold, still holding the slot.
		if seg.Departure != nil {
			wait := *seg.Departure - sched.Now()
			if wait < 0 {
				wait = 0
			}
			if wait > 0 {
				sched.Timeout(task, wait)
			}
		}

		logrus.Debugf("%d,%s,OUT,%s,%s", sched.Now(), t.UID, seg.Component.UID(), seg.Component.Type())
		t.model.Log.Exit(sched.Now(), t.UID, seg.Component.UID(), seg.Component.Type())

		prevResource = res
	}

	// 7. End of tour: release the final segment's component (occupant
	// bookkeeping and collection notification) and its resource slot. The
	// in-loop step 3 only ever releases the PREVIOUS segment's component as
	// each new one is entered, so without this the last component a train
	// ever occupies would never hear about the agent leaving.
	if t.current != nil {
		t.current.Component.ReleaseAgent(t, nil)
		t.current = nil
	}
	if prevResource != nil {
		prevResource.Release(t, nil)
	}
}
