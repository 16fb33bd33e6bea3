package services

import (
	"database/sql"
	"errors"
	"strings"

	"motortrade/internal/domain"
	"motortrade/internal/repos"
)

type CatalogService struct {
	Inv *repos.InventoryRepo
}

func NewCatalogService(inv *repos.InventoryRepo) *CatalogService {
	return &CatalogService{Inv: inv}
}

func (s *CatalogService) ListAll() ([]domain.Vehicle, error) {
	return s.Inv.ListAll()
}

func (s *CatalogService) ListByClassification(classificationID string) ([]domain.Vehicle, error) {
	return s.Inv.ListByClassification(classificationID)
}

func (s *CatalogService) Classifications() ([]domain.Classification, error) {
	return s.Inv.Classifications()
}

func (s *CatalogService) Detail(invID string) (*domain.Vehicle, error) {
	v, err := s.Inv.Get(invID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// AddClassification creates a classification with a slug id derived
// from the name.
func (s *CatalogService) AddClassification(name string) (*domain.Classification, error) {
	if existing, err := s.Inv.ClassificationByName(name); err == nil && existing != nil {
		return nil, ErrClassificationExists
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	id := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	return s.Inv.AddClassification(id, strings.TrimSpace(name))
}

// AddVehicle inserts a vehicle after confirming its classification
// exists.
func (s *CatalogService) AddVehicle(v *domain.Vehicle) error {
	found := false
	classes, err := s.Inv.Classifications()
	if err != nil {
		return err
	}
	for _, c := range classes {
		if c.ID == v.ClassificationID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	return s.Inv.AddVehicle(v)
}
