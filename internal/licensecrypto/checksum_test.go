package licensecrypto

import (
	"crypto/sha1"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldDigestLanes(t *testing.T) {
	var sum [sha1.Size]byte
	sum[0], sum[5], sum[10], sum[15] = 0x01, 0x02, 0x04, 0x08
	sum[4], sum[19] = 0xF0, 0x0F
	sum[7] = 0xAA

	got := foldDigest(sum)
	assert.Equal(t, uint64(0x0F), got&0xFF)
	assert.Equal(t, uint64(0xAA), (got>>16)&0xFF)
	assert.Equal(t, uint64(0xFF), (got>>32)&0xFF)
	assert.Less(t, got, uint64(1)<<40)
}

func TestHashSeedUnsigned(t *testing.T) {
	// -57, -128 and -65 in the signed notation of the reference tool
	assert.Equal(t, byte(199), hashSeed[1])
	assert.Equal(t, byte(128), hashSeed[21])
	assert.Equal(t, byte(191), hashSeed[31])
}

func TestChecksumGolden(t *testing.T) {
	r := packFields(fields{unitID: 0x1ABCDEF, batchID: 0x5A5A, version: 8, count: 1234, addons: DefaultAddons()})
	assert.Equal(t, uint64(0xdb63462104), checksum(r, "clave"))
	assert.Equal(t, uint64(0xd306d909cf), checksum(r, "other"))
}

func TestChecksumIgnoresChecksumField(t *testing.T) {
	r := packFields(fields{unitID: 1, batchID: 2, version: 9, count: 3, addons: DefaultAddons()})
	before := checksum(r, "clave")
	r.setField(fieldChecksum, 0xFFFFFFFFFF)
	assert.Equal(t, before, checksum(r, "clave"))
}

func TestChecksumSensitivity(t *testing.T) {
	base := packFields(fields{unitID: 0x0F0F0F0, batchID: 0x3C3C, version: 8, count: 4242, addons: DefaultAddons()})
	want := checksum(base, "clave")

	regions := map[string]field{
		"addons":       fieldAddons,
		"count":        fieldCount,
		"support":      fieldSupport,
		"subscription": fieldSubscription,
		"expiration":   fieldExpiration,
		"issue":        fieldIssue,
		"unit id":      fieldUnitID,
		"version":      fieldVersion,
		"batch id":     fieldBatchID,
	}
	for name, f := range regions {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < f.width; i++ {
				r := *base
				r[f.offset+i] ^= 1
				require.NotEqual(t, want, checksum(&r, "clave"), "bit %d", f.offset+i)
			}
		})
	}
}
