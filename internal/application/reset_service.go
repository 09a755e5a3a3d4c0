package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/preppal/internal/domain/repository"
	"github.com/oksasatya/preppal/pkg/helpers"
	"github.com/oksasatya/preppal/pkg/mailer"
	mailtpl "github.com/oksasatya/preppal/pkg/mailer/templates"
)

const mailTimeout = 10 * time.Second

// ResetService issues and redeems password reset links.
type ResetService struct {
	Credentials *CredentialService
	Signer      *helpers.ResetSigner
	Mail        mailer.Sender
	Logger      *logrus.Logger
	BaseURL     string
	AppName     string
	From        string
}

func NewResetService(creds *CredentialService, signer *helpers.ResetSigner, mail mailer.Sender, logger *logrus.Logger, baseURL, appName, from string) *ResetService {
	return &ResetService{
		Credentials: creds,
		Signer:      signer,
		Mail:        mail,
		Logger:      logger,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		AppName:     appName,
		From:        from,
	}
}

// Issue signs a token for userID against the user's current password hash.
func (s *ResetService) Issue(ctx context.Context, userID string) (string, error) {
	tok, _, err := s.issue(ctx, userID)
	return tok, err
}

func (s *ResetService) issue(ctx context.Context, userID string) (string, time.Time, error) {
	u, err := s.Credentials.GetUser(ctx, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.Signer.Sign(u.ID, u.Email, u.PasswordHash)
}

// Verify checks token for userID. Tokens issued before the last password
// change no longer verify.
func (s *ResetService) Verify(ctx context.Context, userID, token string) (*helpers.ResetClaims, error) {
	u, err := s.Credentials.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	claims, err := s.Signer.Parse(token, u.PasswordHash)
	if err != nil {
		if errors.Is(err, helpers.ErrResetTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.UserID != u.ID {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *ResetService) ResetLink(userID, token string) string {
	return s.BaseURL + "/reset-password/" + userID + "/" + token
}

// RequestReset emails a reset link to email. Unknown addresses and mail
// failures are logged only, so the caller always sees the same outcome.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return newValidationError("email", "is required")
	}
	u, err := s.Credentials.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Info("password reset requested for unknown email")
		}
		return nil
	}
	if err != nil {
		return persistence("lookup user", err)
	}
	tok, exp, err := s.Signer.Sign(u.ID, u.Email, u.PasswordHash)
	if err != nil {
		return err
	}

	data := mailtpl.NewResetPasswordData(s.AppName, u.Name, u.Email,
		mailtpl.WithResetURL(s.ResetLink(u.ID, tok)),
		mailtpl.WithExpiresAt(exp),
	)
	subject, text, html, err := mailtpl.Render(mailtpl.ResetPassword, data)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()
	msg := mailer.Message{From: s.From, To: u.Email, Subject: subject, Text: text, HTML: html}
	if err := s.Mail.Send(c, msg); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("send reset email failed")
		}
		return nil
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("reset email sent")
	}
	return nil
}

// Reset redeems token and sets the new password.
func (s *ResetService) Reset(ctx context.Context, userID, token, password, confirm string) error {
	if _, err := s.Verify(ctx, userID, token); err != nil {
		return err
	}
	password = strings.TrimSpace(password)
	if password == "" {
		return newValidationError("password", "is required")
	}
	if password != strings.TrimSpace(confirm) {
		return newValidationError("confirm_password", "passwords do not match")
	}
	return s.Credentials.UpdatePassword(ctx, userID, password)
}
