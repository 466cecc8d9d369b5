package stubapi

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errBadToken = errors.New("invalid token")

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (s *Server) mintAccessToken(userID string) (string, error) {
	now := s.now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(s.secret))
}

func (s *Server) parseAccessToken(raw string) (*claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errBadToken
		}
		return []byte(s.secret), nil
	}, jwt.WithLeeway(5*time.Second))
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*claims)
	if !ok || !tok.Valid {
		return nil, errBadToken
	}
	return c, nil
}

func generateRefreshToken() (raw, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(b)
	return raw, hashRefreshToken(raw), nil
}

func hashRefreshToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

// issueTokens mints a new access/refresh pair and records the refresh
// token. Caller must hold s.mu.
func (s *Server) issueTokens(userID string) (access, refresh string, err error) {
	access, err = s.mintAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	raw, hash, err := generateRefreshToken()
	if err != nil {
		return "", "", err
	}
	s.refresh[hash] = &refreshRecord{
		userID:    userID,
		expiresAt: s.now().Add(refreshTokenTTL),
	}
	return access, raw, nil
}
