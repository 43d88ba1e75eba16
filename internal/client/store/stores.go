package store

import "newsdesk/internal/client/repositories/kv"

// Stores bundles the four typed stores sharing one kv repository.
type Stores struct {
	Overrides  Overrides
	Tombstones Tombstones
	Featured   Featured
	Snapshots  Snapshots
}

func New(repo kv.Repository) Stores {
	return Stores{
		Overrides:  NewOverrides(repo),
		Tombstones: NewTombstones(repo),
		Featured:   NewFeatured(repo),
		Snapshots:  NewSnapshots(repo),
	}
}
