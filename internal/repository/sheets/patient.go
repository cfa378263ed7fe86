package sheets

import (
	"context"
	"fmt"

	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/internal/repository"
	"github.com/asthmacare/clinic-api/pkg/errors"
)

type patientRepository struct {
	store repository.RowStore
	tab   string
}

func NewPatientRepository(store repository.RowStore, tab string) repository.PatientRepository {
	return &patientRepository{store: store, tab: tab}
}

func (r *patientRepository) List(ctx context.Context) ([]model.Patient, error) {
	rows, err := r.store.GetRows(ctx, r.tab)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	patients := make([]model.Patient, 0, len(rows)-1)
	for _, row := range rows[1:] {
		patients = append(patients, decodePatient(header, row))
	}
	return patients, nil
}

func (r *patientRepository) GetByHN(ctx context.Context, hn string) (*model.Patient, error) {
	patients, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if model.SameHN(patients[i].HN, hn) {
			return &patients[i], nil
		}
	}
	return nil, errors.NotFound(fmt.Sprintf("patient %s", model.NormalizeHN(hn)), nil)
}

func (r *patientRepository) GetByToken(ctx context.Context, token string) (*model.Patient, error) {
	patients, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].PublicToken != "" && patients[i].PublicToken == token {
			return &patients[i], nil
		}
	}
	return nil, errors.NotFound("patient", nil)
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	if err := r.store.AppendRow(ctx, r.tab, encodePatient(patient)); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) UpdateStatus(ctx context.Context, hn string, status model.PatientStatus) error {
	return r.store.UpdateCell(ctx, r.tab, model.NormalizeHN(hn), statusColumnOffset, string(status))
}

func (r *patientRepository) Delete(ctx context.Context, hn string) error {
	return r.store.DeleteRow(ctx, r.tab, model.NormalizeHN(hn))
}
