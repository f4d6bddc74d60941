package licensecrypto

import (
	"errors"
	"fmt"
)

// FailureSentinel is what GenerateSerial returns in place of a serial when
// generation fails for any reason.
const FailureSentinel = "Something has gone horribly wrong."

var (
	ErrInvalidAddonCount = errors.New("addon array length is not 5")
	ErrVersionOutOfRange = errors.New("version must be within 0 to 31")
	ErrCountOutOfRange   = errors.New("count must be within 0 to 65535")
)

// DefaultAddons enables every feature flag.
func DefaultAddons() []bool {
	return []bool{true, true, true, true, true}
}

// Request carries the caller-controlled serial fields. A nil Addons means
// DefaultAddons.
type Request struct {
	Count   int
	Version int
	Addons  []bool
}

// Serial is a generated key along with the values it was built from.
type Serial struct {
	Key      string
	UnitID   uint32
	BatchID  uint32
	Checksum uint64
}

// Generator produces serials bound to one product secret. It holds no mutable
// state and may be used from multiple goroutines if its RandomSource allows.
type Generator struct {
	secret string
	source RandomSource
}

type Option func(*Generator)

// WithSource replaces the default crypto/rand identifier source.
func WithSource(src RandomSource) Option {
	return func(g *Generator) { g.source = src }
}

func NewGenerator(secret string, opts ...Option) *Generator {
	g := &Generator{secret: secret, source: CryptoSource{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Validate reports the first field outside its encodable range.
func (req Request) Validate() error {
	if req.Addons != nil && len(req.Addons) != AddonCount {
		return fmt.Errorf("%w: got %d", ErrInvalidAddonCount, len(req.Addons))
	}
	if req.Version < 0 || req.Version > MaxVersion {
		return fmt.Errorf("%w: got %d", ErrVersionOutOfRange, req.Version)
	}
	if req.Count < 0 || req.Count > MaxCount {
		return fmt.Errorf("%w: got %d", ErrCountOutOfRange, req.Count)
	}
	return nil
}

// Generate validates req, packs the record, seals it with the checksum and
// renders the serial.
func (g *Generator) Generate(req Request) (Serial, error) {
	if err := req.Validate(); err != nil {
		return Serial{}, err
	}
	addons := req.Addons
	if addons == nil {
		addons = DefaultAddons()
	}

	unitID, err := g.source.Bits(fieldUnitID.width)
	if err != nil {
		return Serial{}, fmt.Errorf("draw unit id: %w", err)
	}
	batchID, err := g.source.Bits(fieldBatchID.width)
	if err != nil {
		return Serial{}, fmt.Errorf("draw batch id: %w", err)
	}

	rec := packFields(fields{
		unitID:  unitID,
		batchID: batchID,
		version: req.Version,
		count:   req.Count,
		addons:  addons,
	})
	sum := checksum(rec, g.secret)
	rec.setField(fieldChecksum, sum)

	return Serial{
		Key:      encodeRecord(permute(rec)),
		UnitID:   uint32(rec.field(fieldUnitID)),
		BatchID:  uint32(rec.field(fieldBatchID)),
		Checksum: sum,
	}, nil
}

// GenerateSerial matches the behaviour of the original keygen tool: the
// serial on success, FailureSentinel otherwise. A nil addons slice means
// DefaultAddons.
func (g *Generator) GenerateSerial(count, version int, addons []bool) string {
	s, err := g.Generate(Request{Count: count, Version: version, Addons: addons})
	if err != nil {
		return FailureSentinel
	}
	return s.Key
}
