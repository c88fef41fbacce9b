package leutil

const hexDigits = "0123456789ABCDEF"

// HexUpper renders b as an uppercase hex string. No non-test code in this
// module calls it: hive's Decode returns REG_BINARY, the resource-descriptor types
// and unrecognized types as raw bytes, not in this hex form.
func HexUpper(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0F]
	}
	return string(out)
}
