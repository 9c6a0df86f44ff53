package usecase

import (
	"context"
	"log"

	"jobboard/internal/pkg/jwt"
	ucauth "jobboard/internal/usecase/auth"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (int64, error)
	Login(ctx context.Context, in ucauth.LoginInput) (ucauth.Account, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	jwt     jwt.Service
	logger  *log.Logger
}

func NewAuthUsecase(authSvc *ucauth.Service, jwtSvc jwt.Service, logger *log.Logger) *Auth {
	return &Auth{authSvc: authSvc, jwt: jwtSvc, logger: logger}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (int64, error) {
	return u.authSvc.Register(ctx, in)
}

// Login returns the account projection and a signed session token.
func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (ucauth.Account, string, error) {
	acc, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return ucauth.Account{}, "", err
	}

	token, err := u.jwt.Generate(acc.ID, acc.Role)
	if err != nil {
		return ucauth.Account{}, "", internalError(u.logger, "Auth", err)
	}
	return acc, token, nil
}
