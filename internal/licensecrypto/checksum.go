package licensecrypto

import "crypto/sha1"

const (
	checksumWindowOffset = 40
	checksumWindowBytes  = 11
)

// hashSeed is salted into every checksum after the product secret.
var hashSeed = [32]byte{
	125, 199, 137, 249, 105, 93, 113, 144,
	250, 132, 34, 202, 191, 29, 192, 192,
	136, 66, 55, 213, 112, 128, 46, 131,
	199, 146, 163, 89, 198, 149, 36, 191,
}

// checksum digests the record's byte window starting at cell 40 together with
// the product secret and returns the 40-bit folded result. The window's last
// byte runs past the record and is padded with zero bits.
func checksum(r *BitRecord, secret string) uint64 {
	h := sha1.New()
	for i := 0; i < checksumWindowBytes; i++ {
		h.Write([]byte{byte(r.Get(checksumWindowOffset+i*8, 8))})
	}
	h.Write([]byte(secret))
	h.Write(hashSeed[:])

	var sum [sha1.Size]byte
	copy(sum[:], h.Sum(nil))
	return foldDigest(sum)
}

// foldDigest XORs the digest bytes in strides of five and packs each of the
// five results into its own byte lane. Existing verifiers expect this exact
// reduction, so it must not be swapped for a different one.
func foldDigest(sum [sha1.Size]byte) uint64 {
	var out uint64
	for lane := 0; lane < 5; lane++ {
		g := sum[lane] ^ sum[lane+5] ^ sum[lane+10] ^ sum[lane+15]
		out |= uint64(g) << (8 * uint(lane))
	}
	return out
}
