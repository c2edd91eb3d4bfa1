package sim

// TourSegment wraps one Route within a Tour, linked to the tour's other
// routes (spec §3).
type TourSegment struct {
	Tour  *Tour
	Route *Route
	Prev  *TourSegment
	Next  *TourSegment
}

// Tour is an ordered list of Routes an agent traverses in sequence,
// plus its creation/deletion bookkeeping (spec §3).
type Tour struct {
	Name           string
	CreationTime   int64
	DeletionTime   int64
	TourSegments   []*TourSegment
}

// NewTour creates an empty Tour.
func NewTour(name string, creationTime, deletionTime int64) *Tour {
	return &Tour{Name: name, CreationTime: creationTime, DeletionTime: deletionTime}
}

// Append adds a route to the tour. Consecutive routes must bridge at a
// shared component: the new route's first component must equal the
// previous route's last component (spec §3).
func (t *Tour) Append(route *Route) error {
	var prev *TourSegment
	if len(t.TourSegments) > 0 {
		prev = t.TourSegments[len(t.TourSegments)-1]
	}
	if prev != nil {
		prevLast := prev.Route.Segments[len(prev.Route.Segments)-1]
		if len(route.Segments) == 0 || prevLast.Component.UID() != route.Segments[0].Component.UID() {
			return wrapInputMismatch("route %q does not start at the bridging component %q ending route %q",
				route.Name, prevLast.Component.UID(), prev.Route.Name)
		}
	}
	seg := &TourSegment{Tour: t, Route: route, Prev: prev}
	if prev != nil {
		prev.Next = seg
	}
	t.TourSegments = append(t.TourSegments, seg)
	return nil
}

// Traverse yields every RouteSegment of the tour in visiting order, merging
// consecutive routes at their shared bridging component: the departure
// hold applied there comes from the later route's first segment, and the
// agent proceeds directly to that route's second segment — the bridging
// component is visited exactly once (spec §3, §9).
func (t *Tour) Traverse() []*RouteSegment {
	if len(t.TourSegments) == 0 {
		return nil
	}
	var out []*RouteSegment
	tourSeg := t.TourSegments[0]
	routeSeg := tourSeg.Route.Segments[0]
	for tourSeg != nil {
		for routeSeg.Next != nil {
			out = append(out, routeSeg)
			routeSeg = routeSeg.Next
		}
		// routeSeg is now the last segment of the current route.
		if tourSeg.Next != nil {
			nextRoute := tourSeg.Next.Route
			if len(nextRoute.Segments) > 0 {
				routeSeg.Departure = nextRoute.Segments[0].Departure
				routeSeg.Next = nextRoute.Segments[1]
			}
		}
		out = append(out, routeSeg)
		routeSeg = routeSeg.Next
		tourSeg = tourSeg.Next
	}
	return out
}
