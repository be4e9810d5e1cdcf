package service

import (
	"context"
	"strings"
	"time"

	"github.com/pustaka-ai/pustaka/internal/model"
	appErr "github.com/pustaka-ai/pustaka/internal/pkg/errors"
	"github.com/pustaka-ai/pustaka/internal/pkg/jwt"
	"github.com/pustaka-ai/pustaka/internal/pkg/password"
	"github.com/pustaka-ai/pustaka/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, jwtSecret []byte, jwtTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

func (s *AuthService) Register(ctx context.Context, email, plainPassword string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(plainPassword) < 8 {
		return nil, appErr.ErrInvalid
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         "member",
		Ctime:        time.Now().Unix(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return "", nil, appErr.ErrUnauthorized
		}
		return "", nil, err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return "", nil, appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
