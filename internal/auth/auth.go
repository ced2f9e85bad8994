// Package auth issues and validates participant session tokens.
// Participant codes are the sole identity key; tokens are stateless JWTs.
package auth

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL matches the study setup: one week per login.
const DefaultSessionTTL = 7 * 24 * time.Hour

var codePattern = regexp.MustCompile(`^[A-Z]{2}\d{4}$`)

// ValidParticipantCode reports whether code is an accepted participant
// code: two letters + four digits, or one of the reserved test codes.
func ValidParticipantCode(code string) bool {
	code = strings.ToUpper(code)
	if code == "TEST" || code == "DEMO" {
		return true
	}
	return codePattern.MatchString(code)
}

type claims struct {
	ParticipantCode string `json:"participant_code"`
	jwt.RegisteredClaims
}

// Service issues and validates session tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates an auth service. A ttl of 0 uses DefaultSessionTTL.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Login validates the participant code and returns a bearer token (and the
// normalized code). Invalid codes return an error.
func (s *Service) Login(participantCode string) (string, string, error) {
	code := strings.ToUpper(participantCode)
	if !ValidParticipantCode(code) {
		return "", "", fmt.Errorf("invalid participant code")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ParticipantCode: code,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, code, nil
}

// Validate parses a bearer token and returns the participant code.
// Expired or malformed tokens return an error.
func (s *Service) Validate(tokenString string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if c.ParticipantCode == "" {
		return "", fmt.Errorf("session token missing participant code")
	}
	return c.ParticipantCode, nil
}
