package hive

import "github.com/forensicmatt/hivewalk/hiveerr"

// windowSize is the buffered read window a Hive keeps resident, per
// spec.md §5/§6. Requests for more than this many bytes at once (an
// oversized value-data cell or db segment) bypass the window and read
// directly into a freshly allocated buffer instead of growing it.
const windowSize = 1 << 20

// window is the single resident buffer a Hive refills as reads land outside
// its current range. It is not a general LRU cache: hive cell access during
// a depth-first walk is local enough (most reads land in the same bin or an
// adjacent one) that one sliding window is enough to avoid a syscall per
// cell without the complexity of a real page cache.
type window struct {
	src   Source
	start int64
	buf   []byte
	valid int
}

func newWindow(src Source) *window {
	return &window{src: src}
}

// read returns the n bytes at absolute offset off, refilling the window if
// the request falls outside what's currently resident.
func (w *window) read(off int64, n int) ([]byte, error) {
	if n < 0 || off < 0 {
		return nil, hiveerr.New(hiveerr.Validation, "negative read offset or length")
	}
	if n > windowSize {
		buf := make([]byte, n)
		if err := readAt(w.src, off, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}

	if w.buf == nil || off < w.start || off+int64(n) > w.start+int64(w.valid) {
		if w.buf == nil {
			w.buf = make([]byte, windowSize)
		}
		got, err := readAtTolerant(w.src, off, w.buf)
		if err != nil {
			return nil, err
		}
		w.start = off
		w.valid = got
		if int64(w.valid) < int64(n) {
			return nil, hiveerr.New(hiveerr.Io, "short read resolving hive bytes")
		}
	}

	rel := off - w.start
	return w.buf[rel : rel+int64(n)], nil
}
