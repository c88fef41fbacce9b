package format

import "time"

// filetimeEpochDelta100ns is the number of 100ns intervals between the
// FILETIME epoch (1601-01-01) and the Unix epoch (1970-01-01).
const filetimeEpochDelta100ns = 116444736000000000

// FiletimeToTime converts a raw Windows FILETIME (100ns intervals since
// 1601-01-01 UTC) to a time.Time. Values at or before the Unix epoch clamp
// to the epoch rather than going negative.
func FiletimeToTime(v uint64) time.Time {
	if v <= filetimeEpochDelta100ns {
		return time.Unix(0, 0).UTC()
	}
	hundredNs := int64(v - filetimeEpochDelta100ns)
	return time.Unix(0, hundredNs*100).UTC()
}
