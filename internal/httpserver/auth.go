// internal/httpserver/auth.go
//
// Per-game bearer tokens.
// POST /game/new and POST /daily/new hand out an HS256 JWT whose subject
// is the game ID; every guess must present it. The token also carries the
// player name and, for daily games, the date, so the finished game can be
// recorded without server-side session state.
//
// The signing key is derived from HANGMAN_SECRET with HKDF-SHA256, so the
// raw secret is never used as a MAC key directly.

package httpserver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const tokenInfo = "hangman/game-token/v1"

var errNoToken = errors.New("missing bearer token")

// gameClaims are the claims of a game token. Subject is the game ID.
type gameClaims struct {
	Player string `json:"player"`
	Daily  string `json:"daily,omitempty"`
	jwt.RegisteredClaims
}

type tokenIssuer struct {
	key []byte
	ttl time.Duration
}

func newTokenIssuer(secret string, ttl time.Duration) (*tokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(tokenInfo)), key); err != nil {
		return nil, fmt.Errorf("derive token key: %w", err)
	}
	return &tokenIssuer{key: key, ttl: ttl}, nil
}

// sign issues a token for gameID.
func (t *tokenIssuer) sign(gameID, player, daily string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		Player: player,
		Daily:  daily,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := token.SignedString(t.key)
	return ss, exp, err
}

// verify parses and validates a token, returning its claims.
func (t *tokenIssuer) verify(tok string) (*gameClaims, error) {
	claims := &gameClaims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no game")
	}
	return claims, nil
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) (string, error) {
	a := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return "", errNoToken
	}
	tok := strings.TrimSpace(a[7:])
	if tok == "" {
		return "", errNoToken
	}
	return tok, nil
}
