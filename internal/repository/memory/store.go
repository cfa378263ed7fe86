// Package memory provides an in-process RowStore with the same contract
// as the spreadsheet-backed one. It backs the test suites; nothing in the
// serving path uses it.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/asthmacare/clinic-api/internal/repository"
	"github.com/asthmacare/clinic-api/pkg/errors"
)

type Store struct {
	mu   sync.Mutex
	tabs map[string][][]string

	// FailAppendTab makes AppendRow fail for the named tab, for
	// exercising partial-write paths.
	FailAppendTab string
}

func NewStore() *Store {
	return &Store{tabs: make(map[string][][]string)}
}

var _ repository.RowStore = (*Store)(nil)

// Seed replaces a tab's contents. The first row is the header.
func (s *Store) Seed(tab string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs[tab] = rows
}

// Rows returns a copy of a tab for assertions.
func (s *Store) Rows(tab string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.tabs[tab]))
	copy(out, s.tabs[tab])
	return out
}

func (s *Store) GetRows(ctx context.Context, tab string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tabs[tab]
	if !ok {
		return nil, errors.Write("read", fmt.Errorf("unknown tab %q", tab))
	}
	out := make([][]string, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *Store) AppendRow(ctx context.Context, tab string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppendTab == tab {
		return errors.Write("append", fmt.Errorf("simulated append failure"))
	}
	if _, ok := s.tabs[tab]; !ok {
		return errors.Write("append", fmt.Errorf("unknown tab %q", tab))
	}
	s.tabs[tab] = append(s.tabs[tab], values)
	return nil
}

func (s *Store) UpdateCell(ctx context.Context, tab, key string, columnOffset int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.findRow(tab, key)
	if err != nil {
		return err
	}
	row := s.tabs[tab][idx]
	for len(row) <= columnOffset {
		row = append(row, "")
	}
	row[columnOffset] = value
	s.tabs[tab][idx] = row
	return nil
}

func (s *Store) UpdateRow(ctx context.Context, tab, key string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.findRow(tab, key)
	if err != nil {
		return err
	}
	s.tabs[tab][idx] = values
	return nil
}

func (s *Store) DeleteRow(ctx context.Context, tab, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.findRow(tab, key)
	if err != nil {
		return err
	}
	if idx == 0 {
		return errors.ProtectedRow(tab)
	}
	s.tabs[tab] = append(s.tabs[tab][:idx], s.tabs[tab][idx+1:]...)
	return nil
}

func (s *Store) findRow(tab, key string) (int, error) {
	rows, ok := s.tabs[tab]
	if !ok {
		return 0, errors.Write("read", fmt.Errorf("unknown tab %q", tab))
	}
	for i, row := range rows {
		if len(row) > 0 && row[0] == key {
			return i, nil
		}
	}
	return 0, errors.NotFound(fmt.Sprintf("row %q in tab %q", key, tab), nil)
}
