package eth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHexAddress(t *testing.T) {
	t.Run("lowercase address is accepted without checksum", func(t *testing.T) {
		assert.True(t, IsHexAddress("0x52908400098527886e0f7030069857d2e4169ee7"))
	})

	t.Run("checksummed address is accepted", func(t *testing.T) {
		// Reference vectors from EIP-55.
		assert.True(t, IsHexAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
		assert.True(t, IsHexAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"))
		assert.True(t, IsHexAddress("0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"))
	})

	t.Run("bad checksum casing is rejected", func(t *testing.T) {
		assert.False(t, IsHexAddress("0x5Aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	})

	t.Run("wrong length or prefix is rejected", func(t *testing.T) {
		assert.False(t, IsHexAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAe"))
		assert.False(t, IsHexAddress("5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
		assert.False(t, IsHexAddress("0xzz6916095ca1df60bB79Ce92cE3Ea74c37c5d359"))
	})
}

func TestIsENSName(t *testing.T) {
	assert.True(t, IsENSName("vitalik.eth"))
	assert.True(t, IsENSName("abc.eth"))
	assert.False(t, IsENSName("ab.eth"))
	assert.False(t, IsENSName("vitalik.com"))
	assert.False(t, IsENSName(".eth"))
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"))
	assert.True(t, IsValidAddress("treasury.eth"))
	assert.False(t, IsValidAddress("not-an-address"))
}
