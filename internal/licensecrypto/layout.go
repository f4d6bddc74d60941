package licensecrypto

// field is a contiguous span of cells within a BitRecord.
type field struct {
	offset int
	width  int
}

var (
	fieldChecksum     = field{0, 40}
	fieldAddons       = field{40, AddonCount}
	fieldCount        = field{45, 16}
	fieldSupport      = field{61, 2}
	fieldSubscription = field{63, 3}
	fieldExpiration   = field{66, 2}
	fieldIssue        = field{68, 12}
	fieldUnitID       = field{80, 25}
	fieldVersion      = field{105, 5}
	fieldBatchID      = field{110, 15}
)

const (
	// AddonCount is the number of feature flags carried by a serial.
	AddonCount = 5

	// MaxVersion is the largest protocol version that fits the version field.
	MaxVersion = 1<<5 - 1
	// MaxCount is the largest usage count that fits the count field.
	MaxCount = 1<<16 - 1

	// versions at or above these carry the count block and the addon flags
	countMinVersion = 6
	addonMinVersion = 8
)

func (r *BitRecord) field(f field) uint64 { return r.Get(f.offset, f.width) }

func (r *BitRecord) setField(f field, v uint64) { r.Set(f.offset, f.width, v) }
