package sim

import "math/rand"

// This file implements the deserialization surface spec.md §6 treats as an
// external collaborator in the original source, but which this package
// implements directly since it is the only concrete ingress point given a
// typed configuration object (SPEC_FULL.md §2). Record types mirror the
// JSON shapes verbatim; Load* methods on Model turn them into the live
// object graph.

// RouteComponentRef names one component by graph coordinates within a
// RouteRecord.
type RouteComponentRef struct {
	U   string `json:"u"`
	V   string `json:"v"`
	Key string `json:"key"`
}

// RouteRecord is the JSON shape of a route: a name and an ordered list of
// component references (spec §6).
type RouteRecord struct {
	Name       string              `json:"name"`
	Components []RouteComponentRef `json:"components"`
}

// SegmentArgs is one position in a tour-route's args list: an optional
// arrival/departure hold. A JSON null decodes to a nil *SegmentArgs,
// meaning no schedule hold at that position (spec §6).
type SegmentArgs struct {
	Arrival   *int64 `json:"arrival,omitempty"`
	Departure *int64 `json:"departure,omitempty"`
}

// TourRouteRef names a route within a tour plus the per-segment args
// aligned positionally with that route's components (spec §4.6).
type TourRouteRef struct {
	Name string         `json:"name"`
	Args []*SegmentArgs `json:"args"`
}

// TourRecord is the JSON shape of a tour (spec §6).
type TourRecord struct {
	Name         string         `json:"name"`
	CreationTime int64          `json:"creation_time"`
	DeletionTime int64          `json:"deletion_time"`
	Routes       []TourRouteRef `json:"routes"`
}

// TrainRecord is the JSON shape of a train (spec §6).
type TrainRecord struct {
	Name     string  `json:"name"`
	MaxSpeed float64 `json:"max_speed"`
	Tour     string  `json:"tour"`
}

// LoadComponents builds and registers a Component for each record, creating
// (or attaching to) any referenced Collection and Jitter along the way
// (spec §4.6 construction rules).
func (m *Model) LoadComponents(recs []ComponentRecord) error {
	for _, rec := range recs {
		key := ComponentKey{U: rec.U, V: rec.V, Key: rec.Key}
		collection, err := m.getOrCreateCollection(rec.Collection)
		if err != nil {
			return err
		}
		jitter, err := buildJitter(rec.Jitter, m.RNG.ForComponent(key.UID()))
		if err != nil {
			return err
		}
		comp, err := buildComponent(key, rec, jitter, collection, m.RNG.ForComponent(key.UID()))
		if err != nil {
			return err
		}
		if err := m.AddComponent(comp); err != nil {
			return err
		}
	}
	return nil
}

// LoadRoutes builds and registers a Route for each record. A route's
// segments carry no schedule holds of their own — those are applied
// per-tour when a route is referenced from LoadTours (spec §3, §6).
func (m *Model) LoadRoutes(recs []RouteRecord) error {
	for _, rec := range recs {
		route := NewRoute(rec.Name)
		for _, ref := range rec.Components {
			uid := ComponentKey{U: ref.U, V: ref.V, Key: ref.Key}.UID()
			comp, ok := m.Component(uid)
			if !ok {
				return wrapInputMismatch("route %q references unknown component %q", rec.Name, uid)
			}
			route.Append(comp, nil, nil)
		}
		m.AddRoute(route)
	}
	return nil
}

// LoadTours builds and registers a Tour for each record. Each referenced
// route is instantiated fresh per tour usage, with that usage's args
// applied positionally to produce the segment-level schedule holds
// (spec §4.6: "the args list must equal the number of components in the
// referenced route").
func (m *Model) LoadTours(recs []TourRecord) error {
	for _, rec := range recs {
		tour := NewTour(rec.Name, rec.CreationTime, rec.DeletionTime)
		for _, routeRef := range rec.Routes {
			base, ok := m.Route(routeRef.Name)
			if !ok {
				return wrapInputMismatch("tour %q references unknown route %q", rec.Name, routeRef.Name)
			}
			if len(routeRef.Args) != len(base.Segments) {
				return wrapInputMismatch("tour %q route %q: %d args but route has %d components",
					rec.Name, routeRef.Name, len(routeRef.Args), len(base.Segments))
			}
			instance := NewRoute(base.Name)
			for i, seg := range base.Segments {
				var arrival, departure *int64
				if a := routeRef.Args[i]; a != nil {
					arrival, departure = a.Arrival, a.Departure
				}
				instance.Append(seg.Component, arrival, departure)
			}
			if err := tour.Append(instance); err != nil {
				return err
			}
		}
		if err := m.AddTour(tour); err != nil {
			return err
		}
	}
	return nil
}

// LoadTrains builds and registers a Train for each record.
func (m *Model) LoadTrains(recs []TrainRecord) error {
	for _, rec := range recs {
		tour, ok := m.Tour(rec.Tour)
		if !ok {
			return wrapInputMismatch("train %q references unknown tour %q", rec.Name, rec.Tour)
		}
		train, err := NewTrain(m, rec.Name, tour, rec.MaxSpeed)
		if err != nil {
			return err
		}
		if err := m.AddTrain(train); err != nil {
			return err
		}
	}
	return nil
}

// getOrCreateCollection implements spec §4.6's "first reference creates the
// collection instance, subsequent references attach to it".
func (m *Model) getOrCreateCollection(ref *CollectionRecord) (Collection, error) {
	if ref == nil {
		return nil, nil
	}
	uid := ref.Type + ":" + ref.Key
	if c, ok := m.Collection(uid); ok {
		return c, nil
	}
	switch ref.Type {
	case "BlockExclusiveZone":
		z := NewBlockExclusiveZone(uid)
		if err := m.AddCollection(z); err != nil {
			return nil, err
		}
		return z, nil
	default:
		return nil, wrapInputMismatch("unknown collection type %q", ref.Type)
	}
}

func buildJitter(rec *JitterRecord, rng *rand.Rand) (Jitter, error) {
	if rec == nil {
		return NoJitter{}, nil
	}
	switch rec.Type {
	case "NoJitter", "":
		return NoJitter{}, nil
	case "UniformJitter":
		min, err := intArg(rec.Args, "min")
		if err != nil {
			return nil, err
		}
		max, err := intArg(rec.Args, "max")
		if err != nil {
			return nil, err
		}
		return NewUniformJitter(rng, min, max), nil
	case "GaussianJitter":
		mean, err := floatArg(rec.Args, "mean")
		if err != nil {
			return nil, err
		}
		stdDev, err := floatArg(rec.Args, "std_dev")
		if err != nil {
			return nil, err
		}
		return NewGaussianJitter(rng, mean, stdDev), nil
	case "LogNormalJitter":
		mu, err := floatArg(rec.Args, "mu")
		if err != nil {
			return nil, err
		}
		sigma, err := floatArg(rec.Args, "sigma")
		if err != nil {
			return nil, err
		}
		return NewLogNormalJitter(rng, mu, sigma), nil
	case "DisruptionJitter":
		p, err := floatArg(rec.Args, "p")
		if err != nil {
			return nil, err
		}
		magnitude, err := intArg(rec.Args, "magnitude")
		if err != nil {
			return nil, err
		}
		return NewDisruptionJitter(rng, p, magnitude)
	default:
		return nil, wrapInputMismatch("unknown jitter type %q", rec.Type)
	}
}

func buildComponent(key ComponentKey, rec ComponentRecord, jitter Jitter, collection Collection, rng *rand.Rand) (Component, error) {
	args := rec.Args
	switch rec.Type {
	case "TimedTrack":
		capacity, err := intArg(args, "capacity")
		if err != nil {
			return nil, err
		}
		traversalTime, err := intArg(args, "traversal_time")
		if err != nil {
			return nil, err
		}
		return NewTimedTrack(key, capacity, traversalTime, jitter, collection)
	case "SimpleYard":
		capacity, err := intArg(args, "capacity")
		if err != nil {
			return nil, err
		}
		return NewSimpleYard(key, capacity, jitter, collection)
	case "SimpleStation":
		meanBoarding, err := floatArg(args, "mean_boarding")
		if err != nil {
			return nil, err
		}
		meanAlighting, err := floatArg(args, "mean_alighting")
		if err != nil {
			return nil, err
		}
		return NewSimpleStation(key, meanBoarding, meanAlighting, jitter, collection)
	case "TimedStation":
		traversalTime, err := intArg(args, "traversal_time")
		if err != nil {
			return nil, err
		}
		meanBoarding, err := floatArg(args, "mean_boarding")
		if err != nil {
			return nil, err
		}
		meanAlighting, err := floatArg(args, "mean_alighting")
		if err != nil {
			return nil, err
		}
		return NewTimedStation(key, traversalTime, meanBoarding, meanAlighting, jitter, collection)
	case "SimpleCrossover":
		traversalTime, err := intArg(args, "traversal_time")
		if err != nil {
			return nil, err
		}
		return NewSimpleCrossover(key, traversalTime, jitter, collection)
	case "DynamicHeadwayStation":
		firstTrainDwell, err := intArg(args, "first_train_dwell")
		if err != nil {
			return nil, err
		}
		intercept, err := floatArg(args, "intercept")
		if err != nil {
			return nil, err
		}
		boardingSlope, err := floatArg(args, "boarding_slope")
		if err != nil {
			return nil, err
		}
		alightingSlope, err := floatArg(args, "alighting_slope")
		if err != nil {
			return nil, err
		}
		boardingRate, err := floatArg(args, "boarding_rate")
		if err != nil {
			return nil, err
		}
		alightingRate, err := floatArg(args, "alighting_rate")
		if err != nil {
			return nil, err
		}
		return NewDynamicHeadwayStation(key, firstTrainDwell, intercept, boardingSlope, alightingSlope, boardingRate, alightingRate, jitter, collection)
	case "PhysicsTrack":
		length, err := floatArg(args, "length")
		if err != nil {
			return nil, err
		}
		topSpeed, err := floatArg(args, "top_speed")
		if err != nil {
			return nil, err
		}
		return NewPhysicsTrack(key, length, topSpeed, nil, jitter, collection)
	case "MultiBlockTrack":
		numTracks, err := intArg(args, "num_tracks")
		if err != nil {
			return nil, err
		}
		numBlocks, err := intArg(args, "num_blocks")
		if err != nil {
			return nil, err
		}
		traversalTime, err := intArg(args, "traversal_time")
		if err != nil {
			return nil, err
		}
		return NewMultiBlockTrack(key, numTracks, numBlocks, traversalTime, jitter, collection)
	case "MultiTrackStation":
		numStopping, err := intArg(args, "num_stopping_tracks")
		if err != nil {
			return nil, err
		}
		numBypass, err := intArg(args, "num_bypass_tracks")
		if err != nil {
			return nil, err
		}
		bypassTime, err := intArg(args, "bypass_time")
		if err != nil {
			return nil, err
		}
		burrC, err := floatArg(args, "burr_c")
		if err != nil {
			return nil, err
		}
		burrD, err := floatArg(args, "burr_d")
		if err != nil {
			return nil, err
		}
		burrLoc, err := floatArg(args, "burr_loc")
		if err != nil {
			return nil, err
		}
		burrScale, err := floatArg(args, "burr_scale")
		if err != nil {
			return nil, err
		}
		return NewMultiTrackStation(key, numStopping, numBypass, bypassTime, burrC, burrD, burrLoc, burrScale, rng, jitter, collection)
	default:
		return nil, wrapInputMismatch("unknown component type %q", rec.Type)
	}
}

func floatArg(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, wrapInputMismatch("missing required arg %q", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, wrapInputMismatch("arg %q must be a number, got %T", key, v)
	}
	return f, nil
}

func intArg(args map[string]any, key string) (int, error) {
	f, err := floatArg(args, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
