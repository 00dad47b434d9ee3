package store

import "github.com/cg14823/outage-wait/outage"

// OutageStore is a read-only view on wherever the outage schedule lives.
// Lookups return nil with a nil error when no record matches.
type OutageStore interface {
	FindActiveOutage() (*outage.Outage, error)
	FindOutageByID(id int64) (*outage.Outage, error)
	Close() error
}
