package sheets

import (
	"context"
	"fmt"

	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/internal/repository"
)

type techniqueRepository struct {
	store repository.RowStore
	tab   string
}

func NewTechniqueRepository(store repository.RowStore, tab string) repository.TechniqueRepository {
	return &techniqueRepository{store: store, tab: tab}
}

func (r *techniqueRepository) ListByHN(ctx context.Context, hn string) ([]model.TechniqueCheck, error) {
	rows, err := r.store.GetRows(ctx, r.tab)
	if err != nil {
		return nil, fmt.Errorf("failed to list technique checks: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	var checks []model.TechniqueCheck
	for _, row := range rows[1:] {
		check := decodeTechnique(header, row)
		if model.SameHN(check.HN, hn) {
			checks = append(checks, check)
		}
	}
	return checks, nil
}

func (r *techniqueRepository) Create(ctx context.Context, check *model.TechniqueCheck) error {
	if err := r.store.AppendRow(ctx, r.tab, encodeTechnique(check)); err != nil {
		return fmt.Errorf("failed to record technique check: %w", err)
	}
	return nil
}
