package deed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allRetrievable(Deed) bool { return true }

func TestSelectNextAscendingOrder(t *testing.T) {
	catalog := []Deed{{ID: 3}, {ID: 1}, {ID: 2}}
	d, ok := SelectNext(catalog, nil, allRetrievable)
	require.True(t, ok)
	assert.Equal(t, int64(1), d.ID)
}

func TestSelectNextSkipsAttempted(t *testing.T) {
	catalog := []Deed{{ID: 1}, {ID: 2}, {ID: 3}}
	attempted := map[int64]bool{1: true, 2: true}
	d, ok := SelectNext(catalog, attempted, allRetrievable)
	require.True(t, ok)
	assert.Equal(t, int64(3), d.ID)
}

func TestSelectNextSkipsUnretrievable(t *testing.T) {
	catalog := []Deed{
		{ID: 1, FileKey: ""},
		{ID: 2, FileKey: "deeds/2.pdf"},
	}
	probe := func(d Deed) bool { return d.FileKey != "" }
	d, ok := SelectNext(catalog, nil, probe)
	require.True(t, ok)
	assert.Equal(t, int64(2), d.ID)
}

func TestSelectNextNotFound(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		_, ok := SelectNext(nil, nil, allRetrievable)
		assert.False(t, ok)
	})
	t.Run("fully attempted", func(t *testing.T) {
		catalog := []Deed{{ID: 1}, {ID: 2}}
		attempted := map[int64]bool{1: true, 2: true}
		_, ok := SelectNext(catalog, attempted, allRetrievable)
		assert.False(t, ok)
	})
	t.Run("fully unretrievable", func(t *testing.T) {
		catalog := []Deed{{ID: 1}, {ID: 2}}
		_, ok := SelectNext(catalog, nil, func(Deed) bool { return false })
		assert.False(t, ok)
	})
}

func TestSelectNextNeverReturnsAttempted(t *testing.T) {
	catalog := []Deed{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	for skip := int64(1); skip <= 4; skip++ {
		attempted := map[int64]bool{skip: true}
		d, ok := SelectNext(catalog, attempted, allRetrievable)
		require.True(t, ok)
		assert.NotEqual(t, skip, d.ID)
	}
}

func TestSelectNextDoesNotMutateCatalog(t *testing.T) {
	catalog := []Deed{{ID: 3}, {ID: 1}, {ID: 2}}
	_, _ = SelectNext(catalog, nil, allRetrievable)
	assert.Equal(t, []int64{3, 1, 2}, []int64{catalog[0].ID, catalog[1].ID, catalog[2].ID})
}
