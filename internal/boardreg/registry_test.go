package boardreg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateGetDelete(t *testing.T) {
	reg := New()

	id, b := reg.Create(1, 2, []string{"A", "A"})
	require.NotEmpty(t, id)
	require.NotNil(t, b)

	got, ok := reg.Get(id)
	require.True(t, ok)
	require.Same(t, b, got)

	reg.Delete(id)
	_, ok = reg.Get(id)
	require.False(t, ok)
}

func TestGetUnknownID(t *testing.T) {
	reg := New()
	_, ok := reg.Get("does-not-exist")
	require.False(t, ok)
}

func TestCreateMintsDistinctIDs(t *testing.T) {
	reg := New()
	id1, _ := reg.Create(1, 2, []string{"A", "A"})
	id2, _ := reg.Create(1, 2, []string{"A", "A"})
	require.NotEqual(t, id1, id2)
	require.ElementsMatch(t, []string{id1, id2}, reg.IDs())
}
