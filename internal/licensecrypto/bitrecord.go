package licensecrypto

// RecordBits is the number of cells in a packed serial record.
const RecordBits = 125

// BitRecord holds one bit per cell. Cell 0 is the least significant bit of
// the checksum field.
type BitRecord [RecordBits]uint8

// Get reads width cells starting at start as a little-endian unsigned value.
// Cells past the end of the record read as zero.
func (r *BitRecord) Get(start, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		pos := start + i
		if pos < RecordBits && r[pos] != 0 {
			v |= 1 << uint(i)
		}
	}
	return v
}

// Set writes the low width bits of value at start, little-endian.
func (r *BitRecord) Set(start, width int, value uint64) {
	for i := 0; i < width; i++ {
		r[start+i] = uint8((value >> uint(i)) & 1)
	}
}
