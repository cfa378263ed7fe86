package visit

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/asthmacare/clinic-api/internal/clinical"
	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/internal/repository"
	"github.com/asthmacare/clinic-api/pkg/errors"
	"github.com/asthmacare/clinic-api/pkg/metrics"
)

const dateLayout = "2006-01-02"

type VisitService interface {
	Record(ctx context.Context, hn string, req *model.RecordVisitRequest) (*model.Visit, error)
	History(ctx context.Context, hn string) ([]model.Visit, error)
	ReviewStatus(ctx context.Context, hn string) (clinical.ReviewStatus, error)
	PendingIntents(ctx context.Context) ([]model.WriteIntent, error)
}

type Service struct {
	repo          repository.VisitRepository
	techniqueRepo repository.TechniqueRepository
	patientRepo   repository.PatientRepository
	intentRepo    repository.IntentRepository
	metrics       *metrics.Metrics
	now           func() time.Time
}

func NewService(
	repo repository.VisitRepository,
	techniqueRepo repository.TechniqueRepository,
	patientRepo repository.PatientRepository,
	intentRepo repository.IntentRepository,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:          repo,
		techniqueRepo: techniqueRepo,
		patientRepo:   patientRepo,
		intentRepo:    intentRepo,
		metrics:       m,
		now:           time.Now,
	}
}

// Record persists one visit and, when the inhaler technique was checked,
// one technique-check row. The two appends are independent writes with no
// transaction; a write intent brackets them so a partial failure leaves a
// pending marker instead of silent divergence. Nothing is rolled back.
func (s *Service) Record(ctx context.Context, hn string, req *model.RecordVisitRequest) (*model.Visit, error) {
	patient, err := s.patientRepo.GetByHN(ctx, hn)
	if err != nil {
		return nil, err
	}

	today := s.now().Format(dateLayout)

	visit := &model.Visit{
		HN:             patient.HN,
		Date:           today,
		PEFR:           orSentinel(req.PEFR),
		ControlLevel:   req.ControlLevel,
		Controller:     req.Controller,
		Reliever:       req.Reliever,
		Adherence:      formatAdherence(req.Adherence),
		DRP:            orDash(req.DRP),
		Advice:         orDash(req.Advice),
		TechniqueCheck: req.TechniqueCheck,
		NextAppt:       req.NextAppt,
		Note:           orDash(req.Note),
		IsNewCase:      req.IsNewCase,
		InhalerEval:    model.NotMeasured,
	}

	var check *model.TechniqueCheck
	if req.TechniqueCheck == model.TechniqueChecked {
		if req.Technique == nil {
			return nil, errors.Validation("technique checklist is required when technique_check is ทำ", nil)
		}
		score := clinical.ScoreTechnique(req.Technique.Steps)
		visit.InhalerEval = strconv.Itoa(score)
		check = &model.TechniqueCheck{
			HN:         patient.HN,
			Date:       today,
			Steps:      req.Technique.Steps,
			TotalScore: score,
			Note:       req.Technique.Note,
		}
	}

	if check == nil {
		// Single write, no intent needed.
		if err := s.repo.Create(ctx, visit); err != nil {
			return nil, err
		}
	} else {
		if err := s.recordWithTechnique(ctx, visit, check); err != nil {
			return nil, err
		}
	}

	if s.metrics != nil {
		s.metrics.VisitsRecorded.Inc()
	}
	return visit, nil
}

func (s *Service) recordWithTechnique(ctx context.Context, visit *model.Visit, check *model.TechniqueCheck) error {
	intent := &model.WriteIntent{
		ID:     uuid.New().String(),
		HN:     visit.HN,
		Date:   visit.Date,
		Status: model.IntentPending,
	}
	if err := s.intentRepo.Create(ctx, intent); err != nil {
		return fmt.Errorf("failed to open write intent: %w", err)
	}

	if err := s.techniqueRepo.Create(ctx, check); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, visit); err != nil {
		// Technique row landed, visit row did not; the pending intent
		// keeps the gap visible.
		return err
	}

	if err := s.intentRepo.MarkCommitted(ctx, intent.ID); err != nil {
		// Both rows landed; a stuck pending marker is a false alarm, not
		// data loss.
		log.Warn().Err(err).Str("intent_id", intent.ID).Str("hn", visit.HN).
			Msg("failed to mark write intent committed")
	}
	return nil
}

func (s *Service) History(ctx context.Context, hn string) ([]model.Visit, error) {
	visits, err := s.repo.ListByHN(ctx, hn)
	if err != nil {
		return nil, err
	}
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].Date > visits[j].Date
	})
	return visits, nil
}

func (s *Service) ReviewStatus(ctx context.Context, hn string) (clinical.ReviewStatus, error) {
	visits, err := s.repo.ListByHN(ctx, hn)
	if err != nil {
		return clinical.ReviewStatus{}, err
	}
	return clinical.InhalerReviewStatus(visits, s.now()), nil
}

func (s *Service) PendingIntents(ctx context.Context) ([]model.WriteIntent, error) {
	pending, err := s.intentRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.PendingIntents.Set(float64(len(pending)))
	}
	return pending, nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func orSentinel(pefr string) string {
	if strings.TrimSpace(pefr) == "" {
		return model.NotMeasured
	}
	return strings.TrimSpace(pefr)
}

// formatAdherence stores the percent sign the dashboard expects.
func formatAdherence(adherence string) string {
	adherence = strings.TrimSpace(adherence)
	if adherence == "" {
		return model.NotMeasured
	}
	if strings.HasSuffix(adherence, "%") {
		return adherence
	}
	return adherence + "%"
}
