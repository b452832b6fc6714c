package patient

import (
	"context"
	"fmt"
	"time"

	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 72 * time.Hour

// AuthResponse contains the patient's ID, session token, and profile details.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PatientService interface {
	Register(ctx context.Context, req models.PatientRegistration) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	RevokeToken(ctx context.Context, token string) error
}

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Repo patientRepo.PatientRepository
}

func (s *DefaultPatientService) Register(ctx context.Context, req models.PatientRegistration) (*AuthResponse, error) {
	if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, fmt.Errorf("a patient account with email %s already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	p := &models.Patient{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.authResponse(p)
}

func (s *DefaultPatientService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	p, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return s.authResponse(p)
}

func (s *DefaultPatientService) authResponse(p *models.Patient) (*AuthResponse, error) {
	token, err := utils.GenerateToken(p.ID, "patient", p.Email, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{
		ID:    p.ID,
		Token: token,
		Name:  p.Name,
		Email: p.Email,
	}, nil
}

func (s *DefaultPatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultPatientService) RevokeToken(ctx context.Context, token string) error {
	return utils.RevokeToken(ctx, token, tokenDuration)
}
