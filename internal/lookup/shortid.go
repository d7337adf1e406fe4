// Package lookup maps full identifiers (property ids, option values) to
// short base36 ids, scoped per collection. The chat channel addresses
// fields and options by these ids, so registration must be stable: the
// same value in the same scope always maps back to the same short id.
package lookup

// ShortIDLength is the minimum width of generated short ids.
const ShortIDLength = 4

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// encodeShortID renders a sequence number as a base36 id, zero-padded to
// ShortIDLength. Sequences that outgrow the four-character space widen
// the id rather than wrap onto earlier ones.
func encodeShortID(n uint64) string {
	buf := make([]byte, 0, ShortIDLength)
	for n > 0 {
		buf = append(buf, base36[n%36])
		n /= 36
	}
	for len(buf) < ShortIDLength {
		buf = append(buf, '0')
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}
