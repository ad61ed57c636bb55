// Package session holds per-user analysis state.
package session

import (
	"sync/atomic"

	"github.com/spacesedan/sentiscope/internal/models"
)

// ResultStore is a single slot holding the latest analyzed table. It starts
// empty, is overwritten by each successful analysis and is never cleared.
type ResultStore struct {
	table atomic.Pointer[models.LabeledTable]
}

func (s *ResultStore) Set(table *models.LabeledTable) {
	s.table.Store(table)
}

func (s *ResultStore) Get() (*models.LabeledTable, bool) {
	t := s.table.Load()
	return t, t != nil
}
