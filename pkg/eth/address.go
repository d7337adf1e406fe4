// Package eth validates Ethereum address strings and ENS names.
package eth

import (
	"strings"

	"golang.org/x/crypto/sha3"
)

// IsValidAddress reports whether s is a well-formed Ethereum address
// (hex with a passing EIP-55 checksum when mixed case) or an ENS name.
func IsValidAddress(s string) bool {
	return IsHexAddress(s) || IsENSName(s)
}

// IsHexAddress reports whether s is a 0x-prefixed 20-byte hex address.
// All-lowercase and all-uppercase forms are accepted without a checksum;
// mixed-case forms must pass the EIP-55 checksum.
func IsHexAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	hex := s[2:]
	if len(hex) != 40 {
		return false
	}
	hasUpper, hasLower := false, false
	for _, c := range hex {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
			hasLower = true
		case c >= 'A' && c <= 'F':
			hasUpper = true
		default:
			return false
		}
	}
	if !hasUpper || !hasLower {
		return true
	}
	return checksumAddress(hex) == hex
}

// IsENSName reports whether s is a *.eth name with at least three
// characters before the suffix.
func IsENSName(s string) bool {
	name, ok := strings.CutSuffix(s, ".eth")
	if !ok {
		return false
	}
	return len(name) >= 3
}

// checksumAddress returns the EIP-55 casing of a 40-char hex string.
func checksumAddress(hex string) string {
	lower := strings.ToLower(hex)
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(lower))
	digest := hash.Sum(nil)

	out := []byte(lower)
	for i := range out {
		c := out[i]
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - ('a' - 'A')
		}
	}
	return string(out)
}
