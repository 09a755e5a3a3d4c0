package application

import (
	"context"
	"errors"
	"expvar"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/internal/domain/entity"
	repo "github.com/oksasatya/preppal/internal/domain/repository"
)

const (
	initialRecipeCount = 3
	recipeCountStep    = 3
	maxBrowsingClicks  = 2
)

var (
	sessionLogins  = expvar.NewInt("sessions_login_total")
	sessionFailed  = expvar.NewInt("sessions_login_failed_total")
	sessionSignups = expvar.NewInt("sessions_signup_total")
	sessionLogouts = expvar.NewInt("sessions_logout_total")
)

// SessionService owns the lifecycle of browser sessions and the small bits
// of per-session state the app keeps (browsing counters, search ingredients,
// date of birth).
type SessionService struct {
	Store       repo.SessionRepository
	Credentials *CredentialService
	Logger      *logrus.Logger
	TTL         time.Duration
}

func NewSessionService(store repo.SessionRepository, creds *CredentialService, logger *logrus.Logger, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{Store: store, Credentials: creds, Logger: logger, TTL: ttl}
}

func (s *SessionService) start(ctx context.Context, u *entity.User) (*entity.Session, error) {
	sess := &entity.Session{
		ID:                uuid.NewString(),
		UserID:            u.ID,
		Email:             u.Email,
		Username:          u.Name,
		Authenticated:     true,
		RecipeCount:       initialRecipeCount,
		SearchIngredients: []string{},
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.Store.Create(ctx, sess, s.TTL); err != nil {
		return nil, persistence("create session", err)
	}
	return sess, nil
}

// ExpiresAt is when sess stops being valid.
func (s *SessionService) ExpiresAt(sess *entity.Session) time.Time {
	return sess.CreatedAt.Add(s.TTL)
}

func (s *SessionService) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	u, err := s.Credentials.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			sessionFailed.Add(1)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	sess, err := s.start(ctx, u)
	if err != nil {
		return nil, err
	}
	sessionLogins.Add(1)
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user logged in")
	}
	return sess, nil
}

// Signup registers a user and logs them in.
func (s *SessionService) Signup(ctx context.Context, name, email, password string) (*entity.Session, error) {
	u, err := s.Credentials.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	sess, err := s.start(ctx, u)
	if err != nil {
		return nil, err
	}
	sessionSignups.Add(1)
	return sess, nil
}

// Logout is idempotent.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return persistence("delete session", err)
	}
	sessionLogouts.Add(1)
	return nil
}

// Require returns the authenticated session for sessionID or ErrUnauthenticated.
func (s *SessionService) Require(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "" {
		return nil, ErrUnauthenticated
	}
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, persistence("get session", err)
	}
	if !sess.Authenticated {
		return nil, ErrUnauthenticated
	}
	return sess, nil
}

func (s *SessionService) storeErr(op string, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUnauthenticated
	}
	return persistence(op, err)
}

// LoadMore records a "show more recipes" click. The first two clicks each
// add three recipes to the home page; later clicks change nothing.
func (s *SessionService) LoadMore(ctx context.Context, sess *entity.Session) error {
	clicks, err := s.Store.IncrClicks(ctx, sess.ID)
	if err != nil {
		return s.storeErr("count click", err)
	}
	sess.ClickCount = clicks
	if clicks > maxBrowsingClicks {
		return nil
	}
	count := sess.RecipeCount
	if count <= 0 {
		count = initialRecipeCount
	}
	count += recipeCountStep
	if err := s.Store.SetRecipeCount(ctx, sess.ID, count); err != nil {
		return s.storeErr("set recipe count", err)
	}
	sess.RecipeCount = count
	return nil
}

// SetDateOfBirth keeps dob (YYYY-MM-DD) on the session.
func (s *SessionService) SetDateOfBirth(ctx context.Context, sess *entity.Session, dob string) error {
	dob = strings.TrimSpace(dob)
	if dob != "" {
		if _, err := time.Parse(entity.DateLayout, dob); err != nil {
			return newValidationError("date_of_birth", "must be YYYY-MM-DD")
		}
	}
	if err := s.Store.SetDateOfBirth(ctx, sess.ID, dob); err != nil {
		return s.storeErr("set date of birth", err)
	}
	sess.DateOfBirth = dob
	return nil
}

// SearchIngredients lists the ingredient names collected on the search page.
func (s *SessionService) SearchIngredients(sess *entity.Session) []string {
	out := make([]string, len(sess.SearchIngredients))
	copy(out, sess.SearchIngredients)
	return out
}

// AddSearchIngredient appends name unless it is already listed.
func (s *SessionService) AddSearchIngredient(ctx context.Context, sess *entity.Session, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return newValidationError("ingredient_name", "is required")
	}
	if slices.Contains(sess.SearchIngredients, name) {
		return nil
	}
	next := append(s.SearchIngredients(sess), name)
	if err := s.Store.SetSearchIngredients(ctx, sess.ID, next); err != nil {
		return s.storeErr("add search ingredient", err)
	}
	sess.SearchIngredients = next
	return nil
}

// RemoveSearchIngredient reports whether name was listed.
func (s *SessionService) RemoveSearchIngredient(ctx context.Context, sess *entity.Session, name string) (bool, error) {
	name = strings.TrimSpace(name)
	i := slices.Index(sess.SearchIngredients, name)
	if i < 0 {
		return false, nil
	}
	next := slices.Delete(s.SearchIngredients(sess), i, i+1)
	if err := s.Store.SetSearchIngredients(ctx, sess.ID, next); err != nil {
		return false, s.storeErr("remove search ingredient", err)
	}
	sess.SearchIngredients = next
	return true, nil
}
