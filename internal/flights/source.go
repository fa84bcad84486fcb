package flights

import "context"

// Source yields a fresh copy of the dataset. Implementations load from a
// local file or a remote export; Name identifies the origin for logs and
// snapshot metadata.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Record, LoadStats, error)
}

// Store holds the current dataset snapshot. Swap must atomically replace
// the snapshot visible to Current.
type Store interface {
	Current() (*Dataset, error)
	Swap(ds *Dataset)
}
