package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrResetTokenExpired = errors.New("reset token expired")
	ErrResetTokenInvalid = errors.New("reset token invalid")
)

// ResetSigner issues password reset tokens. The signing key is the shared
// secret followed by the user's current password hash, so a token stops
// verifying once the password changes.
type ResetSigner struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewResetSigner(secret string, ttl time.Duration) *ResetSigner {
	return &ResetSigner{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

type ResetClaims struct {
	Email  string `json:"email"`
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (s *ResetSigner) key(passwordHash string) []byte {
	k := make([]byte, 0, len(s.Secret)+len(passwordHash))
	k = append(k, s.Secret...)
	return append(k, passwordHash...)
}

func (s *ResetSigner) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Sign returns a token for the user together with its expiry.
func (s *ResetSigner) Sign(userID, email, passwordHash string) (string, time.Time, error) {
	iat := s.clock()
	exp := iat.Add(s.TTL)
	claims := &ResetClaims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(iat),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.key(passwordHash))
	return signed, exp, err
}

// Parse verifies tokenStr against the user's current hash.
// It only ever returns ErrResetTokenExpired or ErrResetTokenInvalid.
func (s *ResetSigner) Parse(tokenStr, passwordHash string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key(passwordHash), nil
	}, jwt.WithTimeFunc(s.clock), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrResetTokenExpired
		}
		return nil, ErrResetTokenInvalid
	}
	if !tkn.Valid {
		return nil, ErrResetTokenInvalid
	}
	return claims, nil
}
