package application

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/domain/entity"
	repo "github.com/oksasatya/preppal/internal/domain/repository"
	"github.com/oksasatya/preppal/pkg/helpers"
)

// CredentialService registers users and checks their passwords.
type CredentialService struct {
	Repo     repo.UserRepository
	Hasher   *helpers.PasswordHasher
	Logger   *logrus.Logger
	validate *validator.Validate
}

func NewCredentialService(r repo.UserRepository, hasher *helpers.PasswordHasher, logger *logrus.Logger) *CredentialService {
	return &CredentialService{Repo: r, Hasher: hasher, Logger: logger, validate: validator.New()}
}

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

func checkPassword(verr *ValidationError, password string) {
	switch {
	case password == "":
		verr.add("password", "is required")
	case len(password) > maxPasswordBytes:
		verr.add("password", "must be at most 72 bytes")
	}
}

func (s *CredentialService) checkInput(name, email, password string) error {
	verr := &ValidationError{}
	if strings.TrimSpace(name) == "" {
		verr.add("name", "is required")
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		verr.add("email", "must be a valid email address")
	}
	checkPassword(verr, password)
	return verr.orNil()
}

// Register creates a user with a bcrypt-hashed password.
func (s *CredentialService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := s.checkInput(name, email, password); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, persistence("lookup user", err)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: name, Email: email, PasswordHash: hash, Role: entity.RoleUser}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, persistence("create user", err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return u, nil
}

// Authenticate returns ErrNotFound for unknown email and wrong password alike.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("lookup user", err)
	}
	if !s.Hasher.Compare(u.PasswordHash, password) {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *CredentialService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("get user", err)
	}
	return u, nil
}

// UpdatePassword rehashes and stores newPassword. Outstanding reset tokens
// stop verifying because their key includes the old hash.
func (s *CredentialService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	verr := &ValidationError{}
	checkPassword(verr, newPassword)
	if err := verr.orNil(); err != nil {
		return err
	}
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return persistence("update password", err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", userID).Info("password updated")
	}
	return nil
}

// ChangePassword verifies currentPassword before replacing it.
func (s *CredentialService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !s.Hasher.Compare(u.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}
	return s.UpdatePassword(ctx, userID, newPassword)
}
