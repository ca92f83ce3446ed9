package service

import (
	"github.com/charmbracelet/log"

	"stillpoint/internal/modules/breathing/domain"
)

type BreathingService struct {
	catalog domain.Catalog
	logger  *log.Logger
}

func NewBreathingService(catalog domain.Catalog, logger *log.Logger) *BreathingService {
	return &BreathingService{catalog: catalog, logger: logger.WithPrefix("breathing")}
}

func (s *BreathingService) Patterns() []domain.Pattern {
	return s.catalog.All()
}

func (s *BreathingService) Pattern(id string) (domain.Pattern, error) {
	return s.catalog.Get(id)
}

func (s *BreathingService) Cue(id string, elapsed int) (domain.Pattern, domain.State, error) {
	p, err := s.catalog.Get(id)
	if err != nil {
		s.logger.Debug("unknown pattern", "id", id)
		return domain.Pattern{}, domain.State{}, err
	}
	return p, domain.At(p, elapsed), nil
}

func (s *BreathingService) Script(id string) ([]domain.Step, error) {
	p, err := s.catalog.Get(id)
	if err != nil {
		return nil, err
	}
	return domain.Script(p), nil
}
