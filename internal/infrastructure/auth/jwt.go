// Package auth issues and verifies the bearer tokens carried by staff,
// partner and admin callers.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hhgcare/hhg/internal/shared/authorization"
	"github.com/hhgcare/hhg/internal/shared/biztime"
)

const DefaultIssuer = "hhg"

type Claims struct {
	Role authorization.UserRole `json:"role"`
	// PartnerName scopes a partner token to one clinic's bookings.
	PartnerName string `json:"partner_name,omitempty"`
	jwt.RegisteredClaims
}

// ActorID is the token subject.
func (c *Claims) ActorID() string {
	return c.Subject
}

type TokenResult struct {
	AccessToken string
	ExpiresAt   time.Time
	ExpiresIn   int64
}

type JWTService struct {
	secret           []byte
	issuer           string
	accessExpMinutes int
	now              func() time.Time
}

func NewJWTService(secret string, issuer string, accessExpMinutes int) *JWTService {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &JWTService{
		secret:           []byte(secret),
		issuer:           issuer,
		accessExpMinutes: accessExpMinutes,
		now:              biztime.NowUTC,
	}
}

// Generate signs an access token for subject. Partner tokens must name the
// partner they act for.
func (s *JWTService) Generate(subject string, role authorization.UserRole, partnerName string) (*TokenResult, error) {
	if subject == "" {
		return nil, fmt.Errorf("token subject is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	if role == authorization.RolePartner && partnerName == "" {
		return nil, fmt.Errorf("partner tokens require a partner name")
	}

	now := s.now()
	exp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)
	claims := &Claims{
		Role:        role,
		PartnerName: partnerName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &TokenResult{
		AccessToken: signed,
		ExpiresAt:   exp,
		ExpiresIn:   int64(s.accessExpMinutes * 60),
	}, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("token carries unknown role %q", claims.Role)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}

// AccessExpMinutes returns the access token lifetime in minutes.
func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}
