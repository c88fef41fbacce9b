// Package walk performs the depth-first traversal described in spec.md
// §4.9: every node key's values are emitted before its subkeys are
// descended into, using a stack of (NodeKey, path) frames rather than
// recursion, so a hive far deeper than the goroutine stack's comfort zone
// never matters. It is grounded on the teacher's hive/walker package for
// the general shape of an iterative stack-based walk, but uses the
// simpler, independently-cloneable NodeKey cursors from the hive package
// instead of the teacher's bitmap-based cycle guard: spec.md's traversal
// has no shared-cell revisit problem to guard against, since every subkey
// cursor only ever advances forward through its own list.
package walk

import (
	"time"

	"github.com/forensicmatt/hivewalk/hive"
	"github.com/forensicmatt/hivewalk/secdesc"
)

// Record is one emitted value: the fully qualified path of the value
// itself (owning key path plus the value's own name, per spec.md §4.9's
// "fullpath = \A\B\V" example), the owning key's last-written time, the
// value, and the key's security descriptor when one is present and
// parses cleanly.
type Record struct {
	FullPath        string
	NodeLastWritten time.Time
	Value           hive.ValueKey
	Security        *secdesc.SecurityDescriptor
	SecurityErr     error
}

type frame struct {
	node hive.NodeKey
	path string
}

// Walker is a single forward iterator over every value in a hive, depth-
// first. Once Next returns ok=false (end of hive) or an error, every later
// call returns the same terminal result.
type Walker struct {
	stack []frame
	err   error
	done  bool
}

// New starts a walker at the hive's root key. The root's own name seeds the
// path: spec.md §4.9 describes paths as "root-inclusive", and the teacher's
// path resolver (internal/reader/path.go's Find) confirms the root key's
// name is the first path segment, not an implicit, unnamed origin.
func New(h *hive.Hive) (*Walker, error) {
	root, err := h.Root()
	if err != nil {
		return nil, err
	}
	return &Walker{stack: []frame{{node: root, path: `\` + root.Name()}}}, nil
}

// Next returns the next value record in depth-first, values-before-
// subkeys order. ok is false once the hive is exhausted; err is non-nil
// only on a structural failure that prevented the walk from continuing,
// after which the Walker is permanently done.
func (w *Walker) Next() (Record, bool, error) {
	if w.done {
		return Record{}, false, w.err
	}

	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]

		vk, ok, err := top.node.NextValue()
		if err != nil {
			w.fail(err)
			return Record{}, false, err
		}
		if ok {
			sec, secErr := resolveSecurity(top.node)
			return Record{
				FullPath:        joinPath(top.path, vk.Name()),
				NodeLastWritten: top.node.LastWritten(),
				Value:           vk,
				Security:        sec,
				SecurityErr:     secErr,
			}, true, nil
		}

		child, ok, err := top.node.NextSubkey()
		if err != nil {
			w.fail(err)
			return Record{}, false, err
		}
		if ok {
			w.stack = append(w.stack, frame{node: child, path: joinPath(top.path, child.Name())})
			continue
		}

		w.stack = w.stack[:len(w.stack)-1]
	}

	w.done = true
	return Record{}, false, nil
}

func (w *Walker) fail(err error) {
	w.err = err
	w.done = true
	w.stack = nil
}

// resolveSecurity resolves a key's descriptor. A parse failure here never
// aborts the walk: the record simply reports no security descriptor,
// alongside the error that explains why, per spec.md §4.8.
func resolveSecurity(n hive.NodeKey) (*secdesc.SecurityDescriptor, error) {
	sk, ok, err := n.Security()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	desc, err := sk.Descriptor()
	if err != nil {
		return nil, err
	}
	return &desc, nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + `\` + name
}
