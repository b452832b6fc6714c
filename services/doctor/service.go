package doctor

import (
	"context"
	"fmt"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 72 * time.Hour

// AuthResponse contains the doctor's ID, session token, and profile details.
type AuthResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
}

type DoctorService interface {
	Register(ctx context.Context, req models.DoctorRegistration) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	ListAll(ctx context.Context) ([]models.Doctor, error)
	RevokeToken(ctx context.Context, token string) error
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo doctorRepo.DoctorRepository
}

func (s *DefaultDoctorService) Register(ctx context.Context, req models.DoctorRegistration) (*AuthResponse, error) {
	if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, fmt.Errorf("a doctor account with email %s already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doc := &models.Doctor{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Specialty:    req.Specialty,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return s.authResponse(doc)
}

func (s *DefaultDoctorService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	doc, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return s.authResponse(doc)
}

func (s *DefaultDoctorService) authResponse(doc *models.Doctor) (*AuthResponse, error) {
	token, err := utils.GenerateToken(doc.ID, "doctor", doc.Email, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{
		ID:        doc.ID,
		Token:     token,
		Name:      doc.Name,
		Email:     doc.Email,
		Specialty: doc.Specialty,
	}, nil
}

func (s *DefaultDoctorService) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultDoctorService) ListAll(ctx context.Context) ([]models.Doctor, error) {
	return s.Repo.ListAll(ctx)
}

func (s *DefaultDoctorService) RevokeToken(ctx context.Context, token string) error {
	return utils.RevokeToken(ctx, token, tokenDuration)
}
