// Package hive ties the format and subkeys packages together into a
// navigable tree: Hive resolves relative cell offsets into decoded
// variants, and NodeKey/ValueKey/SecurityKey give each cell kind a typed,
// lazily-materializing view grounded on the teacher's hive/nk.go, hive/vk.go,
// and hive/sk.go views. Unlike the teacher, which mmaps the whole file into
// one byte slice, Hive reads through a Source: a minimal random-access byte
// interface so hivewalk never assumes the backing store is a local,
// fully-mapped file.
package hive

import (
	"io"

	"github.com/forensicmatt/hivewalk/hiveerr"
)

// Source is the random-access byte interface a Hive reads through: Read
// advances an internal cursor, Seek repositions it to an absolute offset,
// and Pos reports where it currently sits. A Source backed by an *os.File
// is the common case; anything satisfying io.ReadSeeker also does, via
// FromReadSeeker.
type Source interface {
	Read(p []byte) (n int, err error)
	Seek(offset int64) error
	Pos() int64
}

// FromReadSeeker adapts any io.ReadSeeker (an *os.File, a bytes.Reader over
// an in-memory copy of a hive, and so on) into a Source.
func FromReadSeeker(rs io.ReadSeeker) Source {
	return &seekerSource{rs: rs}
}

type seekerSource struct {
	rs  io.ReadSeeker
	pos int64
}

func (s *seekerSource) Read(p []byte) (int, error) {
	n, err := s.rs.Read(p)
	s.pos += int64(n)
	return n, err
}

func (s *seekerSource) Seek(offset int64) error {
	pos, err := s.rs.Seek(offset, io.SeekStart)
	if err != nil {
		return err
	}
	s.pos = pos
	return nil
}

func (s *seekerSource) Pos() int64 { return s.pos }

// readExact fills buf completely from src starting at its current position,
// treating a short read as a failure rather than returning a partial buffer.
func readExact(src Source, buf []byte) error {
	read := 0
	for read < len(buf) {
		n, err := src.Read(buf[read:])
		read += n
		if err != nil {
			if err == io.EOF && read == len(buf) {
				break
			}
			return hiveerr.Wrap(hiveerr.Io, "short read", err)
		}
		if n == 0 {
			return hiveerr.New(hiveerr.Io, "short read: source made no progress")
		}
	}
	return nil
}

// readAt seeks to an absolute offset and reads exactly len(buf) bytes.
func readAt(src Source, off int64, buf []byte) error {
	if err := src.Seek(off); err != nil {
		return hiveerr.Wrap(hiveerr.Io, "seek failed", err)
	}
	return readExact(src, buf)
}

// readAtTolerant behaves like readAt but returns however many bytes it got
// (which may be fewer than len(buf)) on EOF instead of failing, so the
// window cache can prefetch up to its capacity near the end of a file
// without treating a short final page as an error.
func readAtTolerant(src Source, off int64, buf []byte) (int, error) {
	if err := src.Seek(off); err != nil {
		return 0, hiveerr.Wrap(hiveerr.Io, "seek failed", err)
	}
	read := 0
	for read < len(buf) {
		n, err := src.Read(buf[read:])
		read += n
		if err != nil {
			if err == io.EOF {
				return read, nil
			}
			return read, hiveerr.Wrap(hiveerr.Io, "read failed", err)
		}
		if n == 0 {
			return read, nil
		}
	}
	return read, nil
}
