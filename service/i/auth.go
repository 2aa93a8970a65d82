package i

import (
	"context"

	dmn "github.com/beka-birhanu/backtracking-maze/domain"
)

type Authenticator interface {
	Register(ctx context.Context, username, password string) (*dmn.User, error)
	SignIn(ctx context.Context, username, password string) (*dmn.User, string, error)
}
