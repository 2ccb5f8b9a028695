package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id     int
	parent int
}

func (i item) ParentKey() int { return i.parent }

func sample() []item {
	return []item{
		{id: 1, parent: 10},
		{id: 2, parent: 20},
		{id: 3, parent: 10},
		{id: 4, parent: 30},
		{id: 5, parent: 10},
	}
}

func TestFilterChildren_NoParentReturnsFullList(t *testing.T) {
	list := sample()

	got := FilterChildren(list, nil)

	assert.Equal(t, list, got)
}

func TestFilterChildren_NoParentReturnsCopy(t *testing.T) {
	list := sample()

	got := FilterChildren(list, nil)
	got[0] = item{id: 99, parent: 99}

	assert.Equal(t, 1, list[0].id, "input must not be mutated")
}

func TestFilterChildren_StableFilter(t *testing.T) {
	got := FilterChildren(sample(), IDRef(10))

	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{got[0].id, got[1].id, got[2].id})
	for _, child := range got {
		assert.Equal(t, 10, child.ParentKey())
	}
}

func TestFilterChildren_UnknownParentIsEmpty(t *testing.T) {
	got := FilterChildren(sample(), IDRef(404))

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterChildren_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterChildren([]item(nil), nil))
	assert.Empty(t, FilterChildren([]item{}, IDRef(1)))
}

func TestFilterChildren_Idempotent(t *testing.T) {
	for _, parent := range []int{10, 20, 30, 404} {
		once := FilterChildren(sample(), IDRef(parent))
		twice := FilterChildren(once, IDRef(parent))
		assert.Equal(t, once, twice, "parent %d", parent)
	}
}

func TestFilterChildren_SubsetOfInput(t *testing.T) {
	list := sample()
	got := FilterChildren(list, IDRef(20))

	for _, child := range got {
		assert.Contains(t, list, child)
	}
}

func TestSameID(t *testing.T) {
	assert.True(t, SameID(nil, nil))
	assert.True(t, SameID(IDRef(3), IDRef(3)))
	assert.False(t, SameID(IDRef(3), nil))
	assert.False(t, SameID(nil, IDRef(3)))
	assert.False(t, SameID(IDRef(3), IDRef(4)))
}
