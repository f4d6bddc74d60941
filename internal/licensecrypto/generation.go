package licensecrypto

const (
	// SerialLength is the length of a formatted serial including separators.
	SerialLength = 29
	groupCount   = 25
	groupBits    = 5
	separator    = '-'
)

// alphabet omits I, O, S and B so serials survive being read aloud or retyped.
const alphabet = "0123456789ACDEFGHJKLMNPQRTUVWXYZ"

// symbolSlots places the i-th 5-bit group of the permuted record into the
// serial. Slots 5, 11, 17 and 23 are separators.
var symbolSlots = [groupCount]int{
	25, 21, 1, 16, 19, 0, 20, 8, 22, 24, 27, 2, 9,
	10, 6, 14, 26, 28, 3, 4, 12, 13, 7, 15, 18,
}

var separatorSlots = [...]int{5, 11, 17, 23}

// encodeRecord renders a permuted record as a dash-grouped serial.
func encodeRecord(r *BitRecord) string {
	var out [SerialLength]byte
	for _, pos := range separatorSlots {
		out[pos] = separator
	}
	for i := 0; i < groupCount; i++ {
		out[symbolSlots[i]] = alphabet[r.Get(i*groupBits, groupBits)]
	}
	return string(out[:])
}
