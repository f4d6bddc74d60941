package licensecrypto

const (
	permuteBlocks    = 5
	permuteBlockSize = 21
	permutedSpan     = permuteBlocks * permuteBlockSize
)

// permute interleaves cells 0..104 from three read cursors starting at 0, 40
// and 80. Cells 105..124 (version and batch id) are copied through.
func permute(src *BitRecord) *BitRecord {
	var dst BitRecord
	a, b, c := 0, 40, 80
	for blk := 0; blk < permuteBlocks; blk++ {
		for col := 0; col < permuteBlockSize; col++ {
			pos := blk*permuteBlockSize + col
			switch {
			case col%3 == 0 || col == 20:
				dst[pos] = src[a]
				a++
			case col%2 == 1 || col == 16:
				dst[pos] = src[b]
				b++
			default:
				dst[pos] = src[c]
				c++
			}
		}
	}
	copy(dst[permutedSpan:], src[permutedSpan:])
	return &dst
}
