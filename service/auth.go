package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/backtracking-maze/domain"
	"github.com/beka-birhanu/backtracking-maze/service/i"
	"github.com/google/uuid"
)

var _ i.Authenticator = &Auth{}

// Auth registers users and signs them in with tokens.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	tokenTTL  time.Duration
	logger    i.Logger
}

// NewAuthService creates an Auth service issuing tokens valid for tokenTTL.
func NewAuthService(ur i.UserRepo, t i.Tokenizer, tokenTTL time.Duration, logger i.Logger) (*Auth, error) {
	if ur == nil || t == nil || logger == nil {
		return nil, ErrMissingDependency
	}
	return &Auth{
		userRepo:  ur,
		tokenizer: t,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}, nil
}

// Register creates a user after checking the username is free.
func (a *Auth) Register(ctx context.Context, username, password string) (*dmn.User, error) {
	_, err := a.userRepo.ByUsername(ctx, username)
	if err == nil {
		return nil, dmn.ErrUsernameTaken
	}
	if !errors.Is(err, dmn.ErrUserNotFound) {
		return nil, err
	}

	user, err := dmn.NewUser(uuid.New(), dmn.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	if err := a.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("Registered user %s", user.ID))
	return user, nil
}

// SignIn checks the credentials and returns the user with a fresh token.
func (a *Auth) SignIn(ctx context.Context, username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, "", dmn.ErrInvalidCredentials
	}

	if !user.Authenticate(password) {
		return nil, "", dmn.ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, a.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
