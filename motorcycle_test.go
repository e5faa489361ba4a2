package motograph

import (
	"testing"

	"github.com/esimov/motograph/halfedge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMotorcycle_StepAndNext(t *testing.T) {
	assert := assert.New(t)

	m := halfedge.Grid(4, 4)
	h := m.FindHalfEdge(gridVertex(0, 2), gridVertex(1, 2))
	require.GreaterOrEqual(t, h, 0)

	mc := NewMotorcycle(h)
	assert.Equal(h, mc.Origin)
	assert.Equal(h, mc.Next(m), "first step traverses the seed")
	assert.Equal(h, mc.Step(m))
	assert.Equal(gridVertex(1, 2), mc.Position(m))

	want := m.FindHalfEdge(gridVertex(1, 2), gridVertex(2, 2))
	assert.Equal(want, mc.Next(m))
	assert.Equal(h, mc.Curr(), "Next must not move the motorcycle")

	mc.Step(m)
	mc.Step(m)
	assert.Equal(gridVertex(3, 2), mc.Position(m))
	assert.Equal(h, mc.Origin)
}

func TestFleet_Lifecycle(t *testing.T) {
	assert := assert.New(t)

	fl := NewFleet(16)
	for _, o := range []int{9, 2, 5, 12} {
		assert.NoError(fl.Add(NewMotorcycle(o)))
	}
	assert.Equal(4, fl.Len())

	var origins []int
	for _, mc := range fl.Live() {
		origins = append(origins, mc.Origin)
	}
	assert.Equal([]int{2, 5, 9, 12}, origins)

	fl.Crash(5)
	fl.Crash(5)
	assert.Equal(3, fl.Len())
	_, ok := fl.Get(5)
	assert.False(ok)

	assert.ErrorIs(fl.Add(NewMotorcycle(9)), ErrDuplicateOrigin)
	assert.ErrorIs(fl.Add(NewMotorcycle(5)), ErrDuplicateOrigin, "crashed origins stay reserved")
	assert.ErrorIs(fl.Add(NewMotorcycle(16)), ErrDuplicateOrigin)

	origins = origins[:0]
	for _, mc := range fl.Live() {
		origins = append(origins, mc.Origin)
	}
	assert.Equal([]int{2, 9, 12}, origins)
}
