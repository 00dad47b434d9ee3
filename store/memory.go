package store

import "github.com/cg14823/outage-wait/outage"

type memoryStore struct {
	outages  map[int64]*outage.Outage
	activeID int64
}

// NewMemoryStore builds an in-memory schedule from the given records.
// activeID names the record FindActiveOutage returns; 0 means none.
func NewMemoryStore(activeID int64, outages ...*outage.Outage) OutageStore {
	byID := make(map[int64]*outage.Outage, len(outages))
	for _, o := range outages {
		byID[o.ID] = o
	}

	return &memoryStore{outages: byID, activeID: activeID}
}

func (s *memoryStore) FindActiveOutage() (*outage.Outage, error) {
	return s.copyOf(s.activeID), nil
}

func (s *memoryStore) FindOutageByID(id int64) (*outage.Outage, error) {
	return s.copyOf(id), nil
}

// copyOf hands out a copy so callers cannot mutate the stored record.
func (s *memoryStore) copyOf(id int64) *outage.Outage {
	o, ok := s.outages[id]
	if !ok {
		return nil
	}

	cp := *o
	if o.End != nil {
		end := *o.End
		cp.End = &end
	}

	return &cp
}

func (s *memoryStore) Close() error {
	return nil
}
