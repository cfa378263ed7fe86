package stats

import (
	"context"
	"time"

	"github.com/asthmacare/clinic-api/internal/clinical"
	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/internal/repository"
)

// Age bucket boundaries for the dashboard charts.
const (
	adultAge   = 15
	elderlyAge = 60
)

type StatsService interface {
	Overview(ctx context.Context) (*model.Stats, error)
}

type Service struct {
	repo repository.PatientRepository
	now  func() time.Time
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Overview(ctx context.Context) (*model.Stats, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.Stats{
		TotalPatients: len(patients),
		StatusCounts:  make(map[string]int),
	}

	today := s.now()
	for i := range patients {
		stats.StatusCounts[patients[i].Status]++

		switch age := clinical.Age(patients[i].DOB, today); {
		case age < adultAge:
			stats.AgeGroups.Children++
		case age < elderlyAge:
			stats.AgeGroups.Adults++
		default:
			stats.AgeGroups.Elderly++
		}
	}
	return stats, nil
}
