package sheets

import (
	"context"
	"fmt"

	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/internal/repository"
)

type visitRepository struct {
	store repository.RowStore
	tab   string
}

func NewVisitRepository(store repository.RowStore, tab string) repository.VisitRepository {
	return &visitRepository{store: store, tab: tab}
}

func (r *visitRepository) ListByHN(ctx context.Context, hn string) ([]model.Visit, error) {
	rows, err := r.store.GetRows(ctx, r.tab)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	var visits []model.Visit
	for _, row := range rows[1:] {
		visit := decodeVisit(header, row)
		if model.SameHN(visit.HN, hn) {
			visits = append(visits, visit)
		}
	}
	return visits, nil
}

func (r *visitRepository) Create(ctx context.Context, visit *model.Visit) error {
	if err := r.store.AppendRow(ctx, r.tab, encodeVisit(visit)); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}
