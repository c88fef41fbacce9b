// Package subkeys implements the polymorphic subkey index cursor described
// in spec.md §4.5: a single Next method that walks an lf, lh, li, or ri
// cell one child node-key offset at a time, hiding the four on-disk shapes
// behind one contract. It is grounded on the teacher's hive/lf.go,
// hive/li.go, and hive/ri.go views, generalized from three separate
// concrete types into one interface so a NodeKey's subkey cursor never has
// to know which variant it is driving.
//
// Every Index is a plain value (no pointer receivers, no shared mutable
// state), so copying a NodeKey that embeds one gives the copy an
// independent cursor automatically: Next returns the advanced cursor
// alongside its result rather than mutating through a pointer.
package subkeys

import (
	"github.com/forensicmatt/hivewalk/format"
	"github.com/forensicmatt/hivewalk/hiveerr"
)

// Resolver fetches the Variant stored at a cell offset relative to the
// first hive bin. hive.Hive implements this; subkeys depends only on the
// narrow slice of behavior it needs, not on the hive package itself.
type Resolver interface {
	ResolveCell(offsetRel uint32) (format.Variant, error)
}

// Index is a one-shot forward cursor over a subkey list's child offsets.
// Next returns the cursor's next state (itself, advanced, or unchanged at
// exhaustion), the child's cell offset, and ok=false once exhausted. Once
// exhausted an Index keeps returning ok=false forever rather than wrapping
// around or erroring.
type Index interface {
	Next(r Resolver) (next Index, childOffset uint32, ok bool, err error)
}

// New builds the Index matching v's kind. v must be one of KindLF, KindLH,
// KindLI, or KindRI; any other kind (for instance a subkey-list or ri entry
// offset in a malformed hive that points at some other cell) is reported
// the same way the rest of subkeys reports structural problems: a
// Validation error.
func New(v format.Variant) (Index, error) {
	switch v.Kind {
	case format.KindLF, format.KindLH, format.KindLI:
		return leaf{entries: v.Index.Entries}, nil
	case format.KindRI:
		return composite{subLists: v.Index.Entries}, nil
	default:
		return nil, hiveerr.New(hiveerr.Validation, "cell is not a subkey index variant")
	}
}

// leaf walks lf, lh, or li directly: every entry already names an nk cell.
type leaf struct {
	entries []format.IndexEntry
	pos     int
}

func (l leaf) Next(_ Resolver) (Index, uint32, bool, error) {
	if l.pos >= len(l.entries) {
		return l, 0, false, nil
	}
	off := l.entries[l.pos].CellOffset
	l.pos++
	return l, off, true, nil
}

// composite walks ri: each entry names another lf/lh/li cell, which itself
// must be resolved and walked to exhaustion before composite advances to
// the next sub-list. An empty sub-list is tolerated by skipping straight
// to the following one rather than treating it as exhaustion.
type composite struct {
	subLists []format.IndexEntry
	pos      int
	current  Index
}

func (c composite) Next(r Resolver) (Index, uint32, bool, error) {
	if c.current != nil {
		next, off, ok, err := c.current.Next(r)
		if err != nil {
			return c, 0, false, err
		}
		if ok {
			c.current = next
			return c, off, true, nil
		}
		c.current = nil
	}

	for c.pos < len(c.subLists) {
		sub := c.subLists[c.pos]
		c.pos++
		v, err := r.ResolveCell(sub.CellOffset)
		if err != nil {
			return c, 0, false, err
		}
		idx, err := New(v)
		if err != nil {
			return c, 0, false, err
		}
		next, off, ok, err := idx.Next(r)
		if err != nil {
			return c, 0, false, err
		}
		if ok {
			c.current = next
			return c, off, true, nil
		}
	}
	return c, 0, false, nil
}
