package auth

import (
	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/pkg/auth"
	"github.com/asthmacare/clinic-api/pkg/errors"
	"github.com/asthmacare/clinic-api/pkg/security"
)

// sessionName labels sessions opened with the shared clinic credential.
// There are no individual staff accounts.
const sessionName = "clinic-staff"

type AuthService interface {
	Login(req *model.LoginRequest) (*model.TokenResponse, error)
	Validate(token string) (*auth.SessionClaims, error)
}

type Service struct {
	passwordHash string
	hasher       security.PasswordHasher
	jwt          auth.JWTService
}

func NewService(passwordHash string, hasher security.PasswordHasher, jwt auth.JWTService) *Service {
	return &Service{
		passwordHash: passwordHash,
		hasher:       hasher,
		jwt:          jwt,
	}
}

func (s *Service) Login(req *model.LoginRequest) (*model.TokenResponse, error) {
	if err := s.hasher.Compare(s.passwordHash, req.Password); err != nil {
		return nil, errors.Unauthorized(err)
	}

	token, expiresAt, err := s.jwt.GenerateSessionToken(sessionName)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return &model.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *Service) Validate(token string) (*auth.SessionClaims, error) {
	claims, err := s.jwt.ValidateSessionToken(token)
	if err != nil {
		return nil, errors.Unauthorized(err)
	}
	return claims, nil
}
