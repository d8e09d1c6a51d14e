package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition-service/apperr"
	"competition-service/models"
)

// LocationService manages the venues matches reference.
type LocationService struct {
	DB *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{DB: db}
}

type LocationInput struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	PlayAreas int    `json:"playAreas"`
}

func (s *LocationService) CreateLocation(in LocationInput) (*models.Location, error) {
	if in.Name == "" {
		return nil, apperr.Invalid(apperr.CodeLocationRequired, "name is required")
	}
	playAreas := in.PlayAreas
	if playAreas < 1 {
		playAreas = 1
	}

	location := models.Location{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		PlayAreas: playAreas,
		IsActive:  true,
	}
	if err := s.DB.Create(&location).Error; err != nil {
		return nil, storeFailure("create location", err)
	}
	return &location, nil
}

func (s *LocationService) ListLocations(city string) ([]models.Location, error) {
	q := s.DB.Where("is_active = ?", true).Order("name ASC")
	if city != "" {
		q = q.Where("city = ?", city)
	}

	var locations []models.Location
	if err := q.Find(&locations).Error; err != nil {
		return nil, storeFailure("list locations", err)
	}
	return locations, nil
}

func (s *LocationService) GetLocation(id string) (*models.Location, error) {
	var location models.Location
	if err := s.DB.First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeLocationNotFound, "location %s not found", id)
		}
		return nil, storeFailure("load location", err)
	}
	return &location, nil
}

func (s *LocationService) UpdateLocation(id string, in LocationInput) (*models.Location, error) {
	if _, err := s.GetLocation(id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != "" {
		updates["name"] = in.Name
	}
	if in.Address != "" {
		updates["address"] = in.Address
	}
	if in.City != "" {
		updates["city"] = in.City
	}
	if in.PlayAreas > 0 {
		updates["play_areas"] = in.PlayAreas
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&models.Location{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, storeFailure("update location", err)
		}
	}
	return s.GetLocation(id)
}

// DeleteLocation deactivates rather than deletes: matches keep their
// venue reference for history.
func (s *LocationService) DeleteLocation(id string) error {
	if _, err := s.GetLocation(id); err != nil {
		return err
	}
	if err := s.DB.Model(&models.Location{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
		return storeFailure("deactivate location", err)
	}
	return nil
}
