package patient

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asthmacare/clinic-api/internal/clinical"
	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/internal/repository"
	"github.com/asthmacare/clinic-api/pkg/errors"
	"github.com/asthmacare/clinic-api/pkg/metrics"
)

type PatientService interface {
	Register(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	List(ctx context.Context, filters *model.PatientFilters) ([]model.Patient, error)
	Detail(ctx context.Context, hn string) (*Detail, error)
	UpdateStatus(ctx context.Context, hn string, status model.PatientStatus) error
	Delete(ctx context.Context, hn string) error
	PublicSummary(ctx context.Context, token string) (*Summary, error)
}

// TrendPoint is one PEFR reading on the history chart, oldest first.
type TrendPoint struct {
	Date string `json:"date"`
	PEFR int    `json:"pefr"`
}

// Detail is the staff view of one patient.
type Detail struct {
	Patient       model.Patient         `json:"patient"`
	Age           int                   `json:"age"`
	PredictedPEFR int                   `json:"predicted_pefr"`
	Visits        []model.Visit         `json:"visits"`
	Trend         []TrendPoint          `json:"trend"`
	Review        clinical.ReviewStatus `json:"inhaler_review"`
}

// Summary is the patient-facing view behind the public token. It carries
// no phone number and no token; the token is the URL the reader already
// holds.
type Summary struct {
	Prefix        string        `json:"prefix"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	HN            string        `json:"hn"`
	PredictedPEFR int           `json:"predicted_pefr"`
	LastVisit     *model.Visit  `json:"last_visit,omitempty"`
	Zone          clinical.Zone `json:"zone"`
	Trend         []TrendPoint  `json:"trend"`
	NextAppt      string        `json:"next_appt,omitempty"`
}

type Service struct {
	repo      repository.PatientRepository
	visitRepo repository.VisitRepository
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewService(repo repository.PatientRepository, visitRepo repository.VisitRepository, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		visitRepo: visitRepo,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	hn := model.NormalizeHN(req.HN)

	height, err := strconv.ParseFloat(strings.TrimSpace(req.Height), 64)
	if err != nil || height <= 0 {
		return nil, errors.Validation("height must be a positive number of centimeters", err)
	}

	// Duplicate check reads before the append commits; two racing
	// registrations of the same HN can both pass. The backing store has
	// no unique constraint, so the race is accepted and documented.
	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate HN: %w", err)
	}
	for i := range existing {
		if model.SameHN(existing[i].HN, hn) {
			return nil, errors.Duplicate(fmt.Sprintf("HN %s is already registered", hn))
		}
	}

	status := req.Status
	if status == "" {
		status = string(model.PatientStatusActive)
	}

	age := clinical.Age(req.DOB, s.now())
	predicted := clinical.PredictedPEFR(req.Prefix, height, age)

	patient := &model.Patient{
		HN:            hn,
		Prefix:        req.Prefix,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		DOB:           req.DOB,
		PredictedPEFR: strconv.Itoa(predicted),
		Height:        strings.TrimSpace(req.Height),
		Status:        status,
		PublicToken:   uuid.New().String(),
		Phone:         strings.TrimSpace(req.Phone),
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PatientsRegistered.Inc()
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context, filters *model.PatientFilters) ([]model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if filters != nil {
		filtered := patients[:0:0]
		for _, p := range patients {
			if filters.Status != "" && p.Status != filters.Status {
				continue
			}
			if filters.Query != "" && !matchesQuery(&p, filters.Query) {
				continue
			}
			filtered = append(filtered, p)
		}
		patients = filtered
	}

	// Newest registrations first.
	sort.Slice(patients, func(i, j int) bool {
		return patients[i].HN > patients[j].HN
	})
	return patients, nil
}

func matchesQuery(p *model.Patient, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if strings.Contains(strings.ToLower(p.HN), q) ||
		strings.Contains(strings.ToLower(p.FirstName), q) ||
		strings.Contains(strings.ToLower(p.LastName), q) {
		return true
	}
	// Lenient HN search: "123" finds "0000123".
	return model.HNKey(q) != "" && strings.Contains(model.HNKey(p.HN), model.HNKey(q))
}

func (s *Service) Detail(ctx context.Context, hn string) (*Detail, error) {
	patient, err := s.repo.GetByHN(ctx, hn)
	if err != nil {
		return nil, err
	}

	visits, err := s.visitRepo.ListByHN(ctx, patient.HN)
	if err != nil {
		return nil, err
	}
	sortVisitsDesc(visits)

	age := clinical.Age(patient.DOB, s.now())
	height, _ := strconv.ParseFloat(patient.Height, 64)

	return &Detail{
		Patient:       *patient,
		Age:           age,
		PredictedPEFR: clinical.PredictedPEFR(patient.Prefix, height, age),
		Visits:        visits,
		Trend:         trendPoints(visits),
		Review:        clinical.InhalerReviewStatus(visits, s.now()),
	}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, hn string, status model.PatientStatus) error {
	return s.repo.UpdateStatus(ctx, hn, status)
}

func (s *Service) Delete(ctx context.Context, hn string) error {
	return s.repo.Delete(ctx, hn)
}

func (s *Service) PublicSummary(ctx context.Context, token string) (*Summary, error) {
	patient, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	visits, err := s.visitRepo.ListByHN(ctx, patient.HN)
	if err != nil {
		return nil, err
	}
	sortVisitsDesc(visits)

	age := clinical.Age(patient.DOB, s.now())
	height, _ := strconv.ParseFloat(patient.Height, 64)
	predicted := clinical.PredictedPEFR(patient.Prefix, height, age)

	summary := &Summary{
		Prefix:        patient.Prefix,
		FirstName:     patient.FirstName,
		LastName:      patient.LastName,
		HN:            patient.HN,
		PredictedPEFR: predicted,
		Zone:          clinical.ZoneUnknown,
		Trend:         trendPoints(visits),
	}

	if len(visits) > 0 {
		last := visits[0]
		summary.LastVisit = &last
		summary.NextAppt = last.NextAppt
		if measured, ok := last.MeasuredPEFR(); ok {
			summary.Zone = clinical.ClassifyZone(measured, predicted)
		}
	}
	return summary, nil
}

// sortVisitsDesc orders newest first; ISO dates sort lexically.
func sortVisitsDesc(visits []model.Visit) {
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].Date > visits[j].Date
	})
}

// trendPoints converts newest-first visits into an oldest-first chart
// series, skipping unmeasured entries.
func trendPoints(visits []model.Visit) []TrendPoint {
	points := make([]TrendPoint, 0, len(visits))
	for i := len(visits) - 1; i >= 0; i-- {
		if measured, ok := visits[i].MeasuredPEFR(); ok {
			points = append(points, TrendPoint{Date: visits[i].Date, PEFR: measured})
		}
	}
	return points
}
