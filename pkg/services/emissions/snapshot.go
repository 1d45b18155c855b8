package emissions

import (
	"sync/atomic"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// Snapshot owns the dataset queries run against. The dataset is replaced as a
// whole; it is never modified in place.
type Snapshot struct {
	current atomic.Pointer[domain.Dataset]
}

func NewSnapshot(ds *domain.Dataset) *Snapshot {
	s := &Snapshot{}
	if ds == nil {
		ds = &domain.Dataset{}
	}
	s.current.Store(ds)
	return s
}

func (s *Snapshot) Current() *domain.Dataset {
	return s.current.Load()
}

// Swap installs ds and returns the dataset it replaced.
func (s *Snapshot) Swap(ds *domain.Dataset) *domain.Dataset {
	if ds == nil {
		ds = &domain.Dataset{}
	}
	return s.current.Swap(ds)
}
