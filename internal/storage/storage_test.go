package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerftRoundTrip(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	const fp, key = 0xABCD, 0x1234

	_, err = s.GetPerft(fp, key, 3)
	require.ErrorIs(t, err, ErrNotFound)

	e := PerftEntry{FEN: "startpos", Depth: 3, Nodes: 8902}
	require.NoError(t, s.PutPerft(fp, key, e))

	got, err := s.GetPerft(fp, key, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(8902), got.Nodes)
	require.Equal(t, "startpos", got.FEN)
	require.False(t, got.Recorded.IsZero())

	// Different depth, key or fingerprint misses.
	_, err = s.GetPerft(fp, key, 4)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetPerft(fp, key+1, 3)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetPerft(fp+1, key, 3)
	require.ErrorIs(t, err, ErrNotFound)

	n, err := s.CountPerft(fp)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestPerftDepthRange(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	require.Error(t, s.PutPerft(1, 1, PerftEntry{Depth: 256}))
	require.Error(t, s.PutPerft(1, 1, PerftEntry{Depth: -1}))
	_, err = s.GetPerft(1, 1, -1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPositionIndex(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.LookupPosition(7, 42)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.PutPosition(7, 42, "4k3/8/8/8/8/8/8/4K3 w - - 0 1"))
	p, err := s.LookupPosition(7, 42)
	require.NoError(t, err)
	require.Equal(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1", p.FEN)
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.PutPerft(1, 2, PerftEntry{Depth: 1, Nodes: 20}))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	e, err := s.GetPerft(1, 2, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(20), e.Nodes)
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dataDir, err := DataDir()
	require.NoError(t, err)
	require.NotEmpty(t, dataDir)

	dbDir, err := DatabaseDir()
	require.NoError(t, err)
	_, err = os.Stat(dbDir)
	require.NoError(t, err)
}
