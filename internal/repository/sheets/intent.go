package sheets

import (
	"context"
	"fmt"

	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/internal/repository"
)

// statusOffset of the write_intents tab; see intentColumns.
const intentStatusOffset = 3

type intentRepository struct {
	store repository.RowStore
	tab   string
}

func NewIntentRepository(store repository.RowStore, tab string) repository.IntentRepository {
	return &intentRepository{store: store, tab: tab}
}

func (r *intentRepository) Create(ctx context.Context, intent *model.WriteIntent) error {
	if err := r.store.AppendRow(ctx, r.tab, encodeIntent(intent)); err != nil {
		return fmt.Errorf("failed to create write intent: %w", err)
	}
	return nil
}

func (r *intentRepository) MarkCommitted(ctx context.Context, id string) error {
	return r.store.UpdateCell(ctx, r.tab, id, intentStatusOffset, string(model.IntentCommitted))
}

func (r *intentRepository) ListPending(ctx context.Context) ([]model.WriteIntent, error) {
	rows, err := r.store.GetRows(ctx, r.tab)
	if err != nil {
		return nil, fmt.Errorf("failed to list write intents: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	var pending []model.WriteIntent
	for _, row := range rows[1:] {
		intent := decodeIntent(header, row)
		if intent.Status == model.IntentPending {
			pending = append(pending, intent)
		}
	}
	return pending, nil
}
