package raw

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerLoadAndRelease(t *testing.T) {
	dec := &mockDecoder{factory: func() *mockSession {
		return &mockSession{
			meta:  Metadata{Width: 4000, Height: 3000, Make: "Nikon", Model: "Z8"},
			thumb: []byte{0xff, 0xd8, 0xff, 0xd9},
		}
	}}
	m := NewManager(dec)
	defer m.Close()

	id, err := m.Load("shot.nef")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	meta, err := m.Metadata(id)
	require.NoError(t, err)
	assert.Equal(t, "Nikon", meta.Make)
	assert.Equal(t, 3000, meta.Height)

	thumb, err := m.Thumbnail(id)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff, 0xd9}, thumb)

	m.Release(id)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 1, dec.totalCloses(), "release must close the underlying session once")

	// Releasing an already-released id is a no-op, not a double close.
	m.Release(id)
	assert.Equal(t, 1, dec.totalCloses())
}

func TestManagerDistinctIDs(t *testing.T) {
	dec := &mockDecoder{factory: fixture2x2}
	m := NewManager(dec)
	defer m.Close()

	a, err := m.Load("a.cr2")
	require.NoError(t, err)
	b, err := m.Load("b.cr2")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "every load must get its own id")
	assert.Equal(t, 2, m.Len())
}

func TestManagerUnknownID(t *testing.T) {
	m := NewManager(&mockDecoder{factory: fixture2x2})
	defer m.Close()

	_, err := m.Metadata(99)
	assert.ErrorIs(t, err, ErrUnknownImage)

	_, err = m.Thumbnail(99)
	assert.ErrorIs(t, err, ErrUnknownImage)
}

func TestManagerOpenFailure(t *testing.T) {
	dec := &mockDecoder{openErr: errors.New("unsupported format")}
	m := NewManager(dec)
	defer m.Close()

	_, err := m.Load("weird.bin")
	assert.ErrorIs(t, err, ErrOpenFailed)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, dec.totalCloses())
}

func TestManagerInvalidPath(t *testing.T) {
	dec := &mockDecoder{factory: fixture2x2}
	m := NewManager(dec)
	defer m.Close()

	_, err := m.Load("bad\x00.cr2")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Equal(t, 0, dec.opens)
}

func TestManagerCloseReleasesEverything(t *testing.T) {
	dec := &mockDecoder{factory: fixture2x2}
	m := NewManager(dec)

	for i := 0; i < 5; i++ {
		_, err := m.Load("shot.cr2")
		require.NoError(t, err)
	}
	require.Equal(t, 5, m.Len())

	m.Close()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 5, dec.totalCloses())
	for _, s := range dec.sessions {
		assert.Equal(t, 1, s.closes)
	}
}

func TestManagerConcurrentLoads(t *testing.T) {
	dec := &mockDecoder{factory: fixture2x2}
	m := NewManager(dec)
	defer m.Close()

	const workers = 16
	ids := make([]uint64, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			id, err := m.Load("shot.cr2")
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "ids must be unique under concurrency")
		seen[id] = true
	}
	assert.Equal(t, workers, m.Len())
}
