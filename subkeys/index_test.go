package subkeys

import (
	"testing"

	"github.com/forensicmatt/hivewalk/format"
	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/stretchr/testify/require"
)

// fakeResolver resolves offsets from a canned map, mimicking hive.Hive's
// ResolveCell without needing a real hive file.
type fakeResolver map[uint32]format.Variant

func (r fakeResolver) ResolveCell(off uint32) (format.Variant, error) {
	v, ok := r[off]
	if !ok {
		return format.Variant{}, hiveerr.New(hiveerr.Validation, "no such cell")
	}
	return v, nil
}

func drain(t *testing.T, idx Index, r Resolver) []uint32 {
	t.Helper()
	var got []uint32
	for {
		next, off, ok, err := idx.Next(r)
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, off)
		idx = next
	}
	// Exhaustion must be idempotent.
	_, _, ok, err := idx.Next(r)
	require.NoError(t, err)
	require.False(t, ok)
	return got
}

func TestLeafIndexOrder(t *testing.T) {
	v := format.Variant{Kind: format.KindLI, Index: format.IndexList{
		Entries: []format.IndexEntry{{CellOffset: 0x10}, {CellOffset: 0x20}, {CellOffset: 0x30}},
	}}
	idx, err := New(v)
	require.NoError(t, err)
	got := drain(t, idx, fakeResolver{})
	require.Equal(t, []uint32{0x10, 0x20, 0x30}, got)
}

func TestLeafIndexEmpty(t *testing.T) {
	v := format.Variant{Kind: format.KindLF, Index: format.IndexList{}}
	idx, err := New(v)
	require.NoError(t, err)
	require.Empty(t, drain(t, idx, fakeResolver{}))
}

func TestRootIndexComposesSubLeaves(t *testing.T) {
	r := fakeResolver{
		0x100: {Kind: format.KindLI, Index: format.IndexList{
			Entries: []format.IndexEntry{{CellOffset: 0x1}, {CellOffset: 0x2}},
		}},
		0x200: {Kind: format.KindLF, Index: format.IndexList{
			Entries: []format.IndexEntry{{CellOffset: 0x3}},
		}},
	}
	v := format.Variant{Kind: format.KindRI, Index: format.IndexList{
		Entries: []format.IndexEntry{{CellOffset: 0x100}, {CellOffset: 0x200}},
	}}
	idx, err := New(v)
	require.NoError(t, err)
	got := drain(t, idx, r)
	require.Equal(t, []uint32{0x1, 0x2, 0x3}, got)
}

func TestRootIndexSkipsEmptySubLeaf(t *testing.T) {
	r := fakeResolver{
		0x100: {Kind: format.KindLI, Index: format.IndexList{}},
		0x200: {Kind: format.KindLF, Index: format.IndexList{
			Entries: []format.IndexEntry{{CellOffset: 0x3}},
		}},
	}
	v := format.Variant{Kind: format.KindRI, Index: format.IndexList{
		Entries: []format.IndexEntry{{CellOffset: 0x100}, {CellOffset: 0x200}},
	}}
	idx, err := New(v)
	require.NoError(t, err)
	got := drain(t, idx, r)
	require.Equal(t, []uint32{0x3}, got, "expected the empty sub-leaf to be skipped")
}

func TestNewRejectsNonIndexKind(t *testing.T) {
	_, err := New(format.Variant{Kind: format.KindNK})
	require.Error(t, err)
}
