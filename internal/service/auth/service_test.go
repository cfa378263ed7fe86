package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/asthmacare/clinic-api/internal/model"
	pkgauth "github.com/asthmacare/clinic-api/pkg/auth"
	apperrors "github.com/asthmacare/clinic-api/pkg/errors"
	"github.com/asthmacare/clinic-api/pkg/security"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clinic-password"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService(
		string(hash),
		security.NewBcryptHasher(bcrypt.MinCost),
		pkgauth.NewJWTService("test-secret", 8*time.Hour),
	)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Login(&model.LoginRequest{Password: "clinic-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := svc.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "clinic-staff", claims.Name)
	assert.Equal(t, "staff", claims.Subject)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(&model.LoginRequest{Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Validate("not.a.jwt")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	svc := newTestService(t)

	other := pkgauth.NewJWTService("other-secret", time.Hour)
	token, _, err := other.GenerateSessionToken("clinic-staff")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
}
