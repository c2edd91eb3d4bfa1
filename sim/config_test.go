package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/assert"
)

func TestLoadComponents_BuildsAndRegistersEachType(t *testing.T) {
	m := NewModel(1, NewEventLog(&bytes.Buffer{}))
	recs := []ComponentRecord{
		{Type: "TimedTrack", U: "a", V: "b", Key: "0", Args: map[string]any{"capacity": 2.0, "traversal_time": 50.0}},
		{Type: "SimpleYard", U: "b", V: "c", Key: "0", Args: map[string]any{"capacity": 1.0}},
	}
	require.NoError(t, m.LoadComponents(recs))

	c, ok := m.Component("a-b-0")
	require.True(t, ok)
	assert.Equal(t, "TimedTrack", c.Type())
}

func TestLoadComponents_UnknownTypeFails(t *testing.T) {
	m := NewModel(1, NewEventLog(&bytes.Buffer{}))
	recs := []ComponentRecord{{Type: "Nonsense", U: "a", V: "b", Key: "0", Args: map[string]any{}}}
	err := m.LoadComponents(recs)
	assert.ErrorIs(t, err, ErrInputMismatch)
}

func TestLoadComponents_MissingArgFails(t *testing.T) {
	m := NewModel(1, NewEventLog(&bytes.Buffer{}))
	recs := []ComponentRecord{{Type: "TimedTrack", U: "a", V: "b", Key: "0", Args: map[string]any{"capacity": 1.0}}}
	err := m.LoadComponents(recs)
	assert.ErrorIs(t, err, ErrInputMismatch)
}

func TestLoadComponents_SharedCollectionIsCreatedOnce(t *testing.T) {
	m := NewModel(1, NewEventLog(&bytes.Buffer{}))
	collRef := &CollectionRecord{Type: "BlockExclusiveZone", Key: "zone1"}
	recs := []ComponentRecord{
		{Type: "TimedTrack", U: "a", V: "b", Key: "0", Args: map[string]any{"capacity": 1.0, "traversal_time": 10.0}, Collection: collRef},
		{Type: "TimedTrack", U: "b", V: "c", Key: "0", Args: map[string]any{"capacity": 1.0, "traversal_time": 10.0}, Collection: collRef},
	}
	require.NoError(t, m.LoadComponents(recs))

	c1, _ := m.Component("a-b-0")
	c2, _ := m.Component("b-c-0")
	assert.Same(t, c1.Collection(), c2.Collection())
}

func TestLoadRoutes_UnknownComponentFails(t *testing.T) {
	m := NewModel(1, NewEventLog(&bytes.Buffer{}))
	recs := []RouteRecord{{Name: "r1", Components: []RouteComponentRef{{U: "x", V: "y", Key: "0"}}}}
	err := m.LoadRoutes(recs)
	assert.ErrorIs(t, err, ErrInputMismatch)
}

func TestLoadTours_ArgsLengthMustMatchRouteLength(t *testing.T) {
	m := NewModel(1, NewEventLog(&bytes.Buffer{}))
	require.NoError(t, m.LoadComponents([]ComponentRecord{
		{Type: "TimedTrack", U: "a", V: "b", Key: "0", Args: map[string]any{"capacity": 1.0, "traversal_time": 10.0}},
	}))
	require.NoError(t, m.LoadRoutes([]RouteRecord{
		{Name: "r1", Components: []RouteComponentRef{{U: "a", V: "b", Key: "0"}}},
	}))

	err := m.LoadTours([]TourRecord{
		{Name: "t1", Routes: []TourRouteRef{{Name: "r1", Args: []*SegmentArgs{}}}},
	})
	assert.ErrorIs(t, err, ErrInputMismatch)
}

func TestLoadTours_AppliesArgsPositionally(t *testing.T) {
	m := NewModel(1, NewEventLog(&bytes.Buffer{}))
	require.NoError(t, m.LoadComponents([]ComponentRecord{
		{Type: "TimedTrack", U: "a", V: "b", Key: "0", Args: map[string]any{"capacity": 1.0, "traversal_time": 10.0}},
	}))
	require.NoError(t, m.LoadRoutes([]RouteRecord{
		{Name: "r1", Components: []RouteComponentRef{{U: "a", V: "b", Key: "0"}}},
	}))

	departure := int64(90)
	require.NoError(t, m.LoadTours([]TourRecord{
		{Name: "t1", CreationTime: 0, DeletionTime: 1000, Routes: []TourRouteRef{
			{Name: "r1", Args: []*SegmentArgs{{Departure: &departure}}},
		}},
	}))

	tour, ok := m.Tour("t1")
	require.True(t, ok)
	segs := tour.Traverse()
	require.Len(t, segs, 1)
	require.NotNil(t, segs[0].Departure)
	assert.Equal(t, int64(90), *segs[0].Departure)
}

func TestLoadTrains_UnknownTourFails(t *testing.T) {
	m := NewModel(1, NewEventLog(&bytes.Buffer{}))
	err := m.LoadTrains([]TrainRecord{{Name: "agent-1", MaxSpeed: 10, Tour: "missing"}})
	assert.ErrorIs(t, err, ErrInputMismatch)
}

func TestFloatArg_MissingAndWrongType(t *testing.T) {
	_, err := floatArg(map[string]any{}, "x")
	assert.ErrorIs(t, err, ErrInputMismatch)

	_, err = floatArg(map[string]any{"x": "nope"}, "x")
	assert.ErrorIs(t, err, ErrInputMismatch)

	v, err := floatArg(map[string]any{"x": 3.5}, "x")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestIntArg_TruncatesFloat(t *testing.T) {
	v, err := intArg(map[string]any{"x": 7.9}, "x")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestBuildJitter_UnknownTypeFails(t *testing.T) {
	_, err := buildJitter(&JitterRecord{Type: "Mystery"}, nil)
	assert.ErrorIs(t, err, ErrInputMismatch)
}

func TestBuildJitter_NilRecordIsNoJitter(t *testing.T) {
	j, err := buildJitter(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, j.Sample())
}
