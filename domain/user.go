package domain

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTooShort   = errors.New("username too short")
	ErrUsernameTooLong    = errors.New("username too long")
	ErrInvalidUsername    = errors.New("invalid username format")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
)

// Account rules. Zxcvbn scores run 0-4.
const (
	UsernameMinLen   = 3
	UsernameMaxLen   = 20
	PasswordMinScore = 3

	bcryptCost = 12
)

// User is an account allowed to save mazes.
type User struct {
	ID           uuid.UUID `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
}

// Credentials is a username with its plain password as submitted by a client.
type Credentials struct {
	Username string
	Password string
}

// Validate checks the username rules first, then scores the password against the username.
func (c Credentials) Validate() error {
	switch n := len(c.Username); {
	case n < UsernameMinLen:
		return ErrUsernameTooShort
	case n > UsernameMaxLen:
		return ErrUsernameTooLong
	}
	for _, r := range c.Username {
		if r > unicode.MaxASCII || !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return fmt.Errorf("%w: %q", ErrInvalidUsername, r)
		}
	}

	if zxcvbn.PasswordStrength(c.Password, []string{c.Username}).Score < PasswordMinScore {
		return ErrWeakPassword
	}
	return nil
}

// NewUser validates the credentials and stores only the bcrypt hash of the password.
func NewUser(id uuid.UUID, c Credentials) (*User, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &User{ID: id, Username: c.Username, PasswordHash: string(hash)}, nil
}

// Authenticate reports whether password matches the stored hash.
func (u *User) Authenticate(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
