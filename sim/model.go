package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Model is the enclosing container described in spec §3/§4.6: the
// multigraph of Components keyed by (u, v, key), the by-uid registries for
// agents/tours/collections, the Scheduler, and the event log sink. Route
// segments hold direct references to their Components, and Collections hold
// direct references to the Trains queued on them; the Model's registries
// are the by-uid lookup over those same objects.
type Model struct {
	Scheduler *Scheduler
	Log       *EventLog
	RNG       *PartitionedRNG

	components  map[string]Component
	collections map[string]Collection
	routes      map[string]*Route
	tours       map[string]*Tour
	trains      map[string]*Train

	// agentTourUIDs is the shared uid namespace tours and trains are drawn
	// from (spec §4.6): a tour and a train may never share a uid, even
	// though they're stored in separate maps.
	agentTourUIDs map[string]struct{}

	tasks []*Task
}

// NewModel creates an empty Model with its own Scheduler and event log
// writing to log. seed drives every stochastic component via a
// PartitionedRNG, so two Models built from identical configuration and seed
// reproduce identical runs (spec §9 "Randomness").
func NewModel(seed int64, log *EventLog) *Model {
	return &Model{
		Scheduler:     NewScheduler(),
		Log:           log,
		RNG:           NewPartitionedRNG(seed),
		components:    make(map[string]Component),
		collections:   make(map[string]Collection),
		routes:        make(map[string]*Route),
		tours:         make(map[string]*Tour),
		trains:        make(map[string]*Train),
		agentTourUIDs: make(map[string]struct{}),
	}
}

// AddComponent registers c under its derived uid. Component uids are
// derived from graph coordinates (spec §6), so collisions can only arise
// from a duplicate (u, v, key) in the configuration.
func (m *Model) AddComponent(c Component) error {
	uid := c.UID()
	if _, exists := m.components[uid]; exists {
		return wrapNotUniqueID("component %q already registered", uid)
	}
	m.components[uid] = c
	return nil
}

// Component looks up a registered component by uid.
func (m *Model) Component(uid string) (Component, bool) {
	c, ok := m.components[uid]
	return c, ok
}

// AddCollection registers a Collection the first time a component record
// references its (type, key) pair (spec §4.6). Subsequent references reuse
// getOrCreateCollection instead of calling this again.
func (m *Model) AddCollection(c Collection) error {
	if _, exists := m.collections[c.UID()]; exists {
		return wrapNotUniqueID("collection %q already registered", c.UID())
	}
	m.collections[c.UID()] = c
	return nil
}

// Collection looks up a registered collection by uid.
func (m *Model) Collection(uid string) (Collection, bool) {
	c, ok := m.collections[uid]
	return c, ok
}

// AddRoute registers a named Route. Route names are a loader-local
// namespace, not the globally-unique agent/tour uid space spec §4.6
// describes, so duplicates simply overwrite — the loader is responsible for
// not emitting duplicate route names.
func (m *Model) AddRoute(r *Route) { m.routes[r.Name] = r }

// Route looks up a registered route by name.
func (m *Model) Route(name string) (*Route, bool) {
	r, ok := m.routes[name]
	return r, ok
}

// AddTour registers a Tour under its uid. Tour uids are globally unique
// across agents and tours (spec §4.6); duplicates fail, including against a
// train already registered under the same uid.
func (m *Model) AddTour(t *Tour) error {
	if _, exists := m.agentTourUIDs[t.Name]; exists {
		return wrapNotUniqueID("tour %q already registered", t.Name)
	}
	m.agentTourUIDs[t.Name] = struct{}{}
	m.tours[t.Name] = t
	return nil
}

// Tour looks up a registered tour by uid.
func (m *Model) Tour(name string) (*Tour, bool) {
	t, ok := m.tours[name]
	return t, ok
}

// AddTrain registers a Train under its uid. Train uids share the same
// global namespace as tours (spec §4.6); duplicates fail, including against
// a tour already registered under the same uid.
func (m *Model) AddTrain(t *Train) error {
	if _, exists := m.agentTourUIDs[t.UID]; exists {
		return wrapNotUniqueID("train %q already registered", t.UID)
	}
	m.agentTourUIDs[t.UID] = struct{}{}
	m.trains[t.UID] = t
	return nil
}

// Train looks up a registered train by uid.
func (m *Model) Train(uid string) (*Train, bool) {
	t, ok := m.trains[uid]
	return t, ok
}

// Trains returns every registered train, in no particular order.
func (m *Model) Trains() []*Train {
	out := make([]*Train, 0, len(m.trains))
	for _, t := range m.trains {
		out = append(out, t)
	}
	return out
}

// Start activates every registered train by spawning one cooperative task
// per agent (spec §4.6 "start() activates all trains"). Each task drives
// Train.run, which in turn drives the Scheduler by requesting resources and
// yielding to component.Do.
func (m *Model) Start() {
	for _, t := range m.trains {
		train := t
		task := m.Scheduler.Spawn(func(task *Task) {
			train.run(task)
		})
		m.tasks = append(m.tasks, task)
		logrus.WithField("train", train.UID).Debug("activated")
	}
}

// Run advances simulated time by delegating to the Scheduler. Re-invoking
// Run resumes from the Scheduler's current now (spec §4.6).
func (m *Model) Run(until *int64) {
	m.Scheduler.Run(until)
}

// String renders a short summary, useful for logging at the start of a run.
func (m *Model) String() string {
	return fmt.Sprintf("Model(components=%d, collections=%d, routes=%d, tours=%d, trains=%d)",
		len(m.components), len(m.collections), len(m.routes), len(m.tours), len(m.trains))
}
