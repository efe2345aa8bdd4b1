package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"lomba-poster/internal/config"
	"lomba-poster/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid role or password")
	ErrRoleDisabled       = errors.New("panel role is not configured")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const issuer = "lomba-poster"

type Service interface {
	Login(ctx context.Context, input domain.LoginInput) (*domain.PanelToken, error)
	ValidateToken(token string) (*Claims, error)
}

type Claims struct {
	Role domain.PanelRole `json:"role"`
	Name string           `json:"name"`
	jwt.RegisteredClaims
}

type service struct {
	hashes map[domain.PanelRole]string
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewService(cfg *config.Config) Service {
	return &service{
		hashes: map[domain.PanelRole]string{
			domain.RoleAdmin: cfg.AdminPasswordHash,
			domain.RoleJudge: cfg.JudgePasswordHash,
		},
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry,
		now:    time.Now,
	}
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.PanelToken, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash := s.hashes[input.Role]
	if hash == "" {
		return nil, ErrRoleDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		logrus.WithFields(logrus.Fields{
			"role": input.Role,
			"name": input.Name,
		}).Warn("panel login failed")
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := &Claims{
		Role: input.Role,
		Name: input.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   input.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &domain.PanelToken{
		AccessToken: signed,
		Role:        input.Role,
		Name:        input.Name,
		ExpiresIn:   int64(s.expiry.Seconds()),
	}, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != domain.RoleAdmin && claims.Role != domain.RoleJudge {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
