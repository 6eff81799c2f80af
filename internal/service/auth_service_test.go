package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/internal/repository"
	"github.com/amchigale/konkani-dictionary/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- Mock ContributorRepository ---

type mockContributorRepo struct {
	mock.Mock
}

func (m *mockContributorRepo) WithTx(tx *gorm.DB) repository.ContributorRepository {
	return m
}

func (m *mockContributorRepo) FindByID(ctx context.Context, id string) (*domain.Contributor, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contributor), args.Error(1)
}

func (m *mockContributorRepo) FindByEmail(ctx context.Context, email string) (*domain.Contributor, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contributor), args.Error(1)
}

func (m *mockContributorRepo) UpsertForSubmission(ctx context.Context, email, name string) (*domain.Contributor, error) {
	args := m.Called(email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contributor), args.Error(1)
}

func (m *mockContributorRepo) IncrementApproved(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *mockContributorRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(id, at).Error(0)
}

func (m *mockContributorRepo) EnsureExpert(ctx context.Context, email, name string) (bool, error) {
	args := m.Called(email, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockContributorRepo) SetPasswordHash(ctx context.Context, email, hash string) error {
	return m.Called(email, hash).Error(0)
}

func (m *mockContributorRepo) SetActive(ctx context.Context, email string, active bool) error {
	return m.Called(email, active).Error(0)
}

func (m *mockContributorRepo) Promote(ctx context.Context, email string) error {
	return m.Called(email).Error(0)
}

// --- Helpers ---

func newTestJWTManager() *jwt.Manager {
	return jwt.NewManager("test-secret-key-for-unit-tests", 60)
}

func newExpert(t *testing.T, password string) *domain.Contributor {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)
	return &domain.Contributor{
		ID:           "expert-1",
		Email:        "expert@konkani.org",
		Name:         "Dr. Konkani Expert",
		IsExpert:     true,
		IsActive:     true,
		PasswordHash: &h,
	}
}

// --- Tests: Login ---

func TestLogin_Success(t *testing.T) {
	repo := new(mockContributorRepo)
	jwtMgr := newTestJWTManager()
	svc := NewAuthService(repo, jwtMgr)

	expert := newExpert(t, "correct-horse")
	repo.On("FindByEmail", "expert@konkani.org").Return(expert, nil)
	repo.On("UpdateLastLogin", "expert-1", mock.AnythingOfType("time.Time")).Return(nil)

	resp, err := svc.Login(context.Background(), "expert@konkani.org", "correct-horse")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "expert-1", resp.User.ID)
	assert.Equal(t, "Dr. Konkani Expert", resp.User.Name)

	claims, err := jwtMgr.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "expert-1", claims.UserID)
	assert.Equal(t, "expert@konkani.org", claims.Email)
	repo.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name  string
		setup func(repo *mockContributorRepo, expert *domain.Contributor)
	}{
		{
			name: "unknown email",
			setup: func(repo *mockContributorRepo, _ *domain.Contributor) {
				repo.On("FindByEmail", "expert@konkani.org").Return(nil, common.ErrNotFound)
			},
		},
		{
			name: "not an expert",
			setup: func(repo *mockContributorRepo, expert *domain.Contributor) {
				expert.IsExpert = false
				repo.On("FindByEmail", "expert@konkani.org").Return(expert, nil)
			},
		},
		{
			name: "inactive expert",
			setup: func(repo *mockContributorRepo, expert *domain.Contributor) {
				expert.IsActive = false
				repo.On("FindByEmail", "expert@konkani.org").Return(expert, nil)
			},
		},
		{
			name: "no password set",
			setup: func(repo *mockContributorRepo, expert *domain.Contributor) {
				expert.PasswordHash = nil
				repo.On("FindByEmail", "expert@konkani.org").Return(expert, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockContributorRepo)
			tt.setup(repo, newExpert(t, "correct-horse"))
			svc := NewAuthService(repo, newTestJWTManager())

			resp, err := svc.Login(context.Background(), "expert@konkani.org", "correct-horse")

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, common.ErrInvalidCredentials)
			repo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockContributorRepo)
	svc := NewAuthService(repo, newTestJWTManager())
	repo.On("FindByEmail", "expert@konkani.org").Return(newExpert(t, "correct-horse"), nil)

	_, err := svc.Login(context.Background(), "expert@konkani.org", "admin123")

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := NewAuthService(new(mockContributorRepo), newTestJWTManager())

	_, err := svc.Login(context.Background(), "", "x")

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLogin_RepositoryError(t *testing.T) {
	repo := new(mockContributorRepo)
	svc := NewAuthService(repo, newTestJWTManager())
	repo.On("FindByEmail", "expert@konkani.org").Return(nil, errors.New("db down"))

	_, err := svc.Login(context.Background(), "expert@konkani.org", "pw")

	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Equal(t, 500, common.StatusFor(err))
}

// --- Tests: ValidateToken ---

func TestValidateToken(t *testing.T) {
	jwtMgr := newTestJWTManager()
	token, err := jwtMgr.GenerateToken("expert-1", "expert@konkani.org")
	require.NoError(t, err)

	t.Run("active expert", func(t *testing.T) {
		repo := new(mockContributorRepo)
		repo.On("FindByID", "expert-1").Return(newExpert(t, "pw-unused"), nil)
		svc := NewAuthService(repo, jwtMgr)

		expert, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "expert-1", expert.ID)
	})

	t.Run("revoked expert", func(t *testing.T) {
		repo := new(mockContributorRepo)
		revoked := newExpert(t, "pw-unused")
		revoked.IsActive = false
		repo.On("FindByID", "expert-1").Return(revoked, nil)
		svc := NewAuthService(repo, jwtMgr)

		_, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("deleted expert", func(t *testing.T) {
		repo := new(mockContributorRepo)
		repo.On("FindByID", "expert-1").Return(nil, common.ErrNotFound)
		svc := NewAuthService(repo, jwtMgr)

		_, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(mockContributorRepo), jwtMgr)

		_, err := svc.ValidateToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, common.ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := jwt.NewManager("another-secret", 60).GenerateToken("expert-1", "expert@konkani.org")
		require.NoError(t, err)
		svc := NewAuthService(new(mockContributorRepo), jwtMgr)

		_, err = svc.ValidateToken(context.Background(), other)
		assert.ErrorIs(t, err, common.ErrInvalidToken)
	})
}

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	hash, err := HashPassword("long-enough-password")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("long-enough-password")))
}
