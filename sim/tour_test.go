package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/assert"
)

func TestTour_AppendRejectsNonBridgingRoute(t *testing.T) {
	tour := NewTour("t1", 0, 1000)
	x := mustTrack(t, "x", "y")
	y := mustTrack(t, "y", "z")
	z := mustTrack(t, "p", "q")

	route1 := NewRoute("r1")
	route1.Append(x, nil, nil)
	route1.Append(y, nil, nil)
	require.NoError(t, tour.Append(route1))

	route2 := NewRoute("r2")
	route2.Append(z, nil, nil) // does not start at y, the bridging component
	err := tour.Append(route2)
	assert.ErrorIs(t, err, ErrInputMismatch)
}

func TestTour_TraverseMergesBridgingComponentOnce(t *testing.T) {
	tour := NewTour("t1", 0, 1000)
	x := mustTrack(t, "x", "y")
	y := mustTrack(t, "y", "z")
	zTrack := mustTrack(t, "z", "w")

	route1 := NewRoute("r1")
	route1.Append(x, nil, nil)
	route1.Append(y, nil, nil)
	require.NoError(t, tour.Append(route1))

	departure := int64(42)
	route2 := NewRoute("r2")
	route2.Append(y, nil, &departure) // bridges at y, carries the departure hold
	route2.Append(zTrack, nil, nil)
	require.NoError(t, tour.Append(route2))

	segs := tour.Traverse()
	require.Len(t, segs, 3)
	assert.Equal(t, "x-y-0", segs[0].Component.UID())
	assert.Equal(t, "y-z-0", segs[1].Component.UID())
	assert.Equal(t, "z-w-0", segs[2].Component.UID())

	require.NotNil(t, segs[1].Departure)
	assert.Equal(t, int64(42), *segs[1].Departure)
}

func TestTour_TraverseEmptyTourReturnsNil(t *testing.T) {
	tour := NewTour("empty", 0, 0)
	assert.Nil(t, tour.Traverse())
}
