package sim

// RouteSegment is one (component, optional schedule) entry in a Route,
// linked to its neighbors within the route (spec §3).
type RouteSegment struct {
	Route     *Route
	Component Component
	Prev      *RouteSegment
	Next      *RouteSegment
	// Arrival is the earliest simulated time the agent may enter the
	// component, or nil for no hold.
	Arrival *int64
	// Departure is the earliest simulated time the agent may leave the
	// component, or nil for no hold.
	Departure *int64
}

// Route is an ordered linked list of RouteSegments (spec §3).
type Route struct {
	Name     string
	Segments []*RouteSegment
}

// NewRoute creates an empty, named Route.
func NewRoute(name string) *Route {
	return &Route{Name: name}
}

// Append adds a component to the end of the route with optional schedule
// holds, linking it to the previous segment.
func (r *Route) Append(c Component, arrival, departure *int64) *RouteSegment {
	seg := &RouteSegment{Route: r, Component: c, Arrival: arrival, Departure: departure}
	if len(r.Segments) > 0 {
		prev := r.Segments[len(r.Segments)-1]
		prev.Next = seg
		seg.Prev = prev
	}
	r.Segments = append(r.Segments, seg)
	return seg
}

// UIDs returns the component uids of every segment, in order.
func (r *Route) UIDs() []string {
	uids := make([]string, len(r.Segments))
	for i, seg := range r.Segments {
		uids[i] = seg.Component.UID()
	}
	return uids
}
