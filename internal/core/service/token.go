package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medisys/hospital-api/internal/core/domain"
)

// Token kinds. Session tokens and password-reset tokens share the signing
// mechanism but are verified by separate functions, so one can never be
// accepted where the other is expected.
const (
	tokenKindSession = "session"
	tokenKindReset   = "password-reset"
)

const (
	defaultSessionTTL = 30 * 24 * time.Hour
	defaultResetTTL   = time.Hour
)

// TokenIssuer signs and verifies the two token kinds used by the API.
type TokenIssuer struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

func NewTokenIssuer(secret string, sessionTTL, resetTTL time.Duration) *TokenIssuer {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	if resetTTL <= 0 {
		resetTTL = defaultResetTTL
	}
	return &TokenIssuer{secret: []byte(secret), sessionTTL: sessionTTL, resetTTL: resetTTL}
}

// IssueSession returns a signed session token bound to the user id.
func (t *TokenIssuer) IssueSession(userID string) (string, error) {
	return t.issue(userID, tokenKindSession, t.sessionTTL)
}

// IssueReset returns a short-lived password-reset token bound to the user id.
func (t *TokenIssuer) IssueReset(userID string) (string, error) {
	return t.issue(userID, tokenKindReset, t.resetTTL)
}

// VerifySession validates a session token and returns the embedded user id.
func (t *TokenIssuer) VerifySession(token string) (string, error) {
	return t.verify(token, tokenKindSession)
}

// VerifyReset validates a password-reset token and returns the embedded user id.
func (t *TokenIssuer) VerifyReset(token string) (string, error) {
	return t.verify(token, tokenKindReset)
}

func (t *TokenIssuer) issue(userID, kind string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"kind": kind,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenIssuer) verify(token, kind string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return "", domain.ErrTokenInvalid
	}
	if k, _ := claims["kind"].(string); k != kind {
		return "", domain.ErrTokenInvalid
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrTokenInvalid
	}
	return sub, nil
}
