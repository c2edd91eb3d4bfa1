package sim

import "fmt"

// ComponentKey identifies a component's position on the network multigraph
// (spec §3): an edge (u, v, key). The component's uid is derived as
// "{u}-{v}-{key}" (spec §6).
type ComponentKey struct {
	U, V, Key string
}

// UID derives the component's unique identifier from its graph coordinates.
func (k ComponentKey) UID() string {
	return fmt.Sprintf("%s-%s-%s", k.U, k.V, k.Key)
}

// Component is the capability every network element implements (spec §9
// "Polymorphic components"): a capacity-bounded edge that trains occupy for
// some duration. Concrete variants (TimedTrack, MultiBlockTrack, ...) embed
// BaseComponent for the shared bookkeeping and implement the behavior
// hooks themselves.
type Component interface {
	UID() string
	Key() ComponentKey
	Type() string
	Resource() *Resource
	Collection() Collection

	// CanAcceptAgent is the admission predicate consulted by Resource in
	// addition to raw capacity. seg is the segment the agent is entering —
	// MultiBlockTrack needs it to read seg.Prev/seg.Next when determining
	// direction of travel.
	CanAcceptAgent(agent *Train, seg *RouteSegment) bool
	// AcceptAgent is called the instant a request is granted, before the
	// request resolves (spec §4.2).
	AcceptAgent(agent *Train, seg *RouteSegment)
	// ReleaseAgent is called when an agent's Resource request is released.
	// next is the RouteSegment the agent is moving to (nil at tour end).
	ReleaseAgent(agent *Train, next *RouteSegment)

	// Do runs the component's dwell/traversal logic for train, suspending
	// t on the Scheduler as needed, and returns once the train has
	// finished its in-component activity (spec §4.3).
	Do(sched *Scheduler, t *Task, train *Train)

	// AsRecord projects the component back to its configuration shape, for
	// the round-trip property in spec §8.
	AsRecord() ComponentRecord
}

// BaseComponent holds the bookkeeping shared by every Component variant:
// identity, jitter strategy, collection membership, and the occupant set.
// It is not itself a Component — concrete types embed it and implement the
// interface, delegating to its helper methods where default behavior
// applies.
type BaseComponent struct {
	key        ComponentKey
	typeName   string
	jitter     Jitter
	collection Collection
	occupants  map[string]*Train
}

func newBaseComponent(key ComponentKey, typeName string, jitter Jitter, collection Collection) BaseComponent {
	if jitter == nil {
		jitter = NoJitter{}
	}
	return BaseComponent{
		key:        key,
		typeName:   typeName,
		jitter:     jitter,
		collection: collection,
		occupants:  make(map[string]*Train),
	}
}

// UID returns the component's derived unique identifier.
func (b *BaseComponent) UID() string { return b.key.UID() }

// Key returns the component's graph coordinates.
func (b *BaseComponent) Key() ComponentKey { return b.key }

// Type returns the component's configuration type name.
func (b *BaseComponent) Type() string { return b.typeName }

// Collection returns the component's collection membership, or nil.
func (b *BaseComponent) Collection() Collection { return b.collection }

// Occupants returns the number of agents currently occupying the component.
// Invariant: len(Occupants()) <= Resource().Capacity() (spec §3, §8).
func (b *BaseComponent) Occupants() int { return len(b.occupants) }

// collectionPermits is the default admission check: true if the component
// has no collection, otherwise delegates to it. Every concrete component's
// CanAcceptAgent starts from this before layering its own predicate.
func (b *BaseComponent) collectionPermits(agent *Train, seg *RouteSegment) bool {
	if b.collection == nil {
		return true
	}
	return b.collection.CanAcceptAgent(agent, seg)
}

// trackAgent records the agent as occupying this component and notifies
// its collection, if any.
func (b *BaseComponent) trackAgent(agent *Train) {
	if b.collection != nil {
		b.collection.AcceptAgent(agent)
	}
	b.occupants[agent.UID] = agent
}

// untrackAgent removes the agent from the occupant set and notifies its
// collection, if any.
func (b *BaseComponent) untrackAgent(agent *Train, next *RouteSegment) {
	if b.collection != nil {
		b.collection.ReleaseAgent(agent, next)
	}
	delete(b.occupants, agent.UID)
}

// ComponentRecord is the JSON-decodable and round-trippable projection of a
// Component's configuration (spec §6, §8 round-trip property).
type ComponentRecord struct {
	Type       string             `json:"type"`
	U          string             `json:"u"`
	V          string             `json:"v"`
	Key        string             `json:"key"`
	Args       map[string]any     `json:"args"`
	Jitter     *JitterRecord      `json:"jitter,omitempty"`
	Collection *CollectionRecord  `json:"collection,omitempty"`
}

// JitterRecord names a jitter strategy and its constructor arguments.
type JitterRecord struct {
	Type string         `json:"type"`
	Args map[string]any `json:"args"`
}

// CollectionRecord references a Collection by type and key; the first
// component referencing a given (type, key) pair creates the collection,
// later references attach to it (spec §4.6).
type CollectionRecord struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}
