package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/dgrijalva/jwt-go"
	"github.com/smallbiznis/whateat/internal/auth/domain"
	"github.com/smallbiznis/whateat/internal/config"
	"go.uber.org/zap"
)

type Service struct {
	log    *zap.Logger
	repo   domain.Repository
	secret []byte
}

func New(log *zap.Logger, cfg config.Config, repo domain.Repository) domain.Service {
	log = log.Named("auth.service")
	if cfg.AuthJWTSecret == "" {
		log.Warn("AUTH_JWT_SECRET is empty; every bearer token will be rejected")
	}
	return &Service{
		log:    log,
		repo:   repo,
		secret: []byte(cfg.AuthJWTSecret),
	}
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, domain.ErrMissingToken
	}

	userID, err := s.subject(rawToken)
	if err != nil {
		s.log.Debug("token rejected", zap.Error(err))
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) subject(rawToken string) (snowflake.ID, error) {
	if len(s.secret) == 0 {
		return 0, errors.New("signing secret not configured")
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrSignatureInvalid
	}

	id, err := snowflake.ParseString(strings.TrimSpace(claims.Subject))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid subject %q", claims.Subject)
	}
	return id, nil
}
