package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService emite y valida los tokens de acceso de los clientes de la API.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// TokenClaims identifica al cliente que pide análisis.
type TokenClaims struct {
	ClientID  string `json:"cid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

const accessTokenType = "access"

func NewTokenService(secret string, ttl time.Duration, issuer string) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = "bazi-engine"
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

// Enabled indica si hay secreto configurado; sin secreto la API queda abierta.
func (s *TokenService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Issue firma un token de acceso para clientID y devuelve su vencimiento.
func (s *TokenService) Issue(clientID string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrTokenInvalid
	}
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return "", time.Time{}, ErrTokenInvalid
	}
	now := time.Now().UTC()
	expires := now.Add(s.ttl)
	claims := TokenClaims{
		ClientID:  clientID,
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse valida firma, vencimiento, emisor y tipo.
func (s *TokenService) Parse(tokenString string) (TokenClaims, error) {
	if !s.Enabled() {
		return TokenClaims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return TokenClaims{}, ErrTokenInvalid
	}
	var claims TokenClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, ErrTokenExpired
		}
		return TokenClaims{}, ErrTokenInvalid
	}
	if !s.isValidClaims(claims) {
		return TokenClaims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) isValidClaims(claims TokenClaims) bool {
	if claims.TokenType != accessTokenType {
		return false
	}
	if strings.TrimSpace(claims.ClientID) == "" {
		return false
	}
	if claims.Subject != claims.ClientID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
