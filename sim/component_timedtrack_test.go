package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/assert"
)

func TestTimedTrack_TraversalTimeMustBePositive(t *testing.T) {
	_, err := NewTimedTrack(ComponentKey{U: "a", V: "b", Key: "0"}, 1, 0, NoJitter{}, nil)
	assert.ErrorIs(t, err, ErrNotPositive)
}

func TestTimedTrack_CapacityMustBePositive(t *testing.T) {
	_, err := NewTimedTrack(ComponentKey{U: "a", V: "b", Key: "0"}, 0, 10, NoJitter{}, nil)
	assert.ErrorIs(t, err, ErrNotPositive)
}

func TestTimedTrack_DoTakesExactlyTraversalTimePlusJitter(t *testing.T) {
	c, err := NewTimedTrack(ComponentKey{U: "a", V: "b", Key: "0"}, 1, 10, NoJitter{}, nil)
	require.NoError(t, err)

	sched := NewScheduler()
	train := &Train{UID: "t1"}
	sched.Spawn(func(task *Task) {
		c.Do(sched, task, train)
	})
	sched.Run(nil)
	assert.Equal(t, int64(10), sched.Now())
}

func TestTimedTrack_CapacityGatesConcurrentOccupants(t *testing.T) {
	c, err := NewTimedTrack(ComponentKey{U: "a", V: "b", Key: "0"}, 1, 10, NoJitter{}, nil)
	require.NoError(t, err)
	res := c.Resource()

	sched := NewScheduler()
	first := &Train{UID: "first"}
	second := &Train{UID: "second"}
	var secondAdmitted bool

	sched.Spawn(func(task *Task) {
		res.Request(sched, task, first, nil)
	})
	sched.Spawn(func(task *Task) {
		res.Request(sched, task, second, nil)
		secondAdmitted = true
	})
	assert.False(t, secondAdmitted)
	assert.Equal(t, 1, c.Occupants())

	res.Release(first, nil)
	sched.Run(nil)
	assert.True(t, secondAdmitted)
}

func TestTimedTrack_AsRecordRoundTrips(t *testing.T) {
	c, err := NewTimedTrack(ComponentKey{U: "a", V: "b", Key: "0"}, 3, 7, NoJitter{}, nil)
	require.NoError(t, err)
	rec := c.AsRecord()
	assert.Equal(t, "TimedTrack", rec.Type)
	assert.Equal(t, "a", rec.U)
	assert.Equal(t, "b", rec.V)
	assert.Equal(t, "0", rec.Key)
	assert.Equal(t, 3, rec.Args["capacity"])
	assert.Equal(t, 7, rec.Args["traversal_time"])
}
