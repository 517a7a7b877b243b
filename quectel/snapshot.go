package quectel

import "context"

// Snapshot is the full radio picture collected in one poll cycle. Records
// are built fresh on every poll and never mutated afterwards.
type Snapshot struct {
	LTE        *LteServingCell
	NR         *Nr5gServingCell
	Carriers   []CarrierComponent
	Neighbours []NeighbourCell
}

// Poll collects serving cell, carrier aggregation and neighbour cell data
// in one pass. Carrier components are enriched with serving-cell readings
// (see EnrichCarrierInfo). A modem with no registered cell yields a
// snapshot with nil records, not an error.
func (m *Modem) Poll(ctx context.Context) (*Snapshot, error) {
	lte, nr, err := m.ServingCell(ctx)
	if err != nil {
		return nil, err
	}
	carriers, err := m.CarrierInfo(ctx)
	if err != nil {
		return nil, err
	}
	neighbours, err := m.NeighbourCells(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		LTE:        lte,
		NR:         nr,
		Carriers:   EnrichCarrierInfo(carriers, nr),
		Neighbours: neighbours,
	}, nil
}
