package quectel

// EnrichCarrierInfo fills in missing signal readings on NR carrier
// components from the NR serving cell with the same physical cell id.
//
// Some firmware revisions report NR secondary carriers in the short
// +QCAINFO shape that carries no RSRP/SINR; the NR5G-NSA serving cell line
// of the same poll cycle does carry them for the same cell. The join is a
// separate step on purpose: the decoders stay pure and the caller decides
// whether borrowed readings are acceptable for presentation.
//
// The input slice is not modified; enriched copies are returned.
func EnrichCarrierInfo(components []CarrierComponent, nr *Nr5gServingCell) []CarrierComponent {
	if len(components) == 0 {
		return nil
	}

	enriched := make([]CarrierComponent, len(components))
	copy(enriched, components)
	if nr == nil {
		return enriched
	}

	for i := range enriched {
		c := &enriched[i]
		if !c.Is5G() || c.PCI != nr.PCI {
			continue
		}
		if c.RSRP == nil {
			rsrp := nr.RSRP
			c.RSRP = &rsrp
		}
		if c.SINR == nil {
			sinr := nr.SINR
			c.SINR = &sinr
		}
	}

	return enriched
}
