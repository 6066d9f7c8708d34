package storage

import (
	"context"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"complaintdesk/backend/internal/models"
)

var ErrNotFound = errors.New("not found")

// Storage is the narrow query surface the rest of the service depends on.
// Category vocabulary and user assignments are read-only here; callers must
// not assume what stores them.
type Storage interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	SaveUser(user *models.User) error

	ListCategories() ([]string, error)
	ListCategoryRows() ([]models.Category, error)
	SaveCategory(category *models.Category) error

	AssignedCategories(userID string) ([]string, error)

	SaveResponse(response *models.Response) error
	ListResponses(complaintID string) ([]models.Response, error)
}

// Service backs Storage with PostgreSQL; the Redis client is shared with
// the snapshot cache.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to look up user %s: %v", email, err)
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// ListCategories returns the canonical vocabulary as an ordered name list,
// the form the normalizer consumes.
func (s *Service) ListCategories() ([]string, error) {
	var names []string
	if err := s.DB.Model(&models.Category{}).
		Order("position asc").
		Pluck("name", &names).Error; err != nil {
		log.Printf("ERROR: Failed to list categories: %v", err)
		return nil, err
	}
	return names, nil
}

func (s *Service) ListCategoryRows() ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.Order("position asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Service) SaveCategory(category *models.Category) error {
	return s.DB.Save(category).Error
}

// AssignedCategories returns the category names assigned to the user. An
// empty result means the user sees everything.
func (s *Service) AssignedCategories(userID string) ([]string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	return []string(user.AssignedCategories), nil
}

func (s *Service) SaveResponse(response *models.Response) error {
	if err := s.DB.Create(response).Error; err != nil {
		log.Printf("ERROR: Failed to save response for complaint %s: %v", response.ComplaintID, err)
		return err
	}
	return nil
}

// ListResponses returns the staff responses for one feed complaint, oldest
// first.
func (s *Service) ListResponses(complaintID string) ([]models.Response, error) {
	var responses []models.Response
	err := s.DB.Where("complaint_id = ?", complaintID).
		Order("created_at asc").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}
