package licensecrypto

// fields are the logical inputs written into a record before the checksum.
type fields struct {
	unitID  uint64
	batchID uint64
	version int
	count   int
	addons  []bool
}

// packFields writes everything except the checksum. Blocks gated on the
// protocol version are left zero when the version does not carry them.
func packFields(f fields) *BitRecord {
	var r BitRecord
	r.setField(fieldUnitID, f.unitID)
	r.setField(fieldVersion, uint64(f.version))
	r.setField(fieldBatchID, f.batchID)

	if f.version >= countMinVersion {
		r.setField(fieldCount, uint64(f.count))
		// reserved, always zero
		r.setField(fieldSupport, 0)
		r.setField(fieldSubscription, 0)
		r.setField(fieldExpiration, 0)
		r.setField(fieldIssue, 0)
	}

	if f.version >= addonMinVersion {
		for i, on := range f.addons {
			var bit uint64
			if on {
				bit = 1
			}
			r.Set(fieldAddons.offset+i, 1, bit)
		}
	}
	return &r
}
