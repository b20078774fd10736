package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guardforce/workforce-management/internal/core/roles"
	"github.com/guardforce/workforce-management/internal/hierarchy"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByID(personID int64) (*User, error)
	HashPassword(password string) (string, error)
}

type RepositoryAPI interface {
	GetCredentialsByEmail(email string) (passwordHash string, personID int64, err error)
	GetUserByID(personID int64) (*User, error)
	TouchLastLogin(personID int64) error
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(personID int64, email string, role roles.Role) (token string, err error)
	GenerateRefreshToken(personID int64, email string, role roles.Role) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// User is the authenticated person attached to a request context.
type User struct {
	ID    int64      `json:"id"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  roles.Role `json:"role"`
}

func (u *User) Can(op roles.Operation) bool {
	return roles.Can(u.Role, op)
}

// Actor converts the authenticated user into the form the hierarchy resolver
// and lifecycle engine consume.
func (u *User) Actor() hierarchy.Actor {
	return hierarchy.Actor{
		PersonID: u.ID,
		Role:     u.Role,
		Name:     u.Name,
	}
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	PersonID int64  `json:"person_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

type userCtxKey string

const contextUserKey userCtxKey = "authUser"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}
