package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

var ErrInvalidClaims = errors.New("invalid token claims")

type Service interface {
	GenerateAccessToken(session user.Session) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpiration)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpiration: expiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}, nil
}

// GenerateAccessToken signs the session, capability set included.
func (j *JWTService) GenerateAccessToken(session user.Session) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":      session.UserID,
		"email":        session.Email,
		"employee_id":  returnValueOrNil(session.EmployeeID),
		"role":         string(session.Role),
		"capabilities": capabilityStrings(session.Capabilities),
		"type":         tokenTypeAccess,
		"exp":          expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// SessionFromClaims rebuilds the caller from verified access token claims.
func SessionFromClaims(claims map[string]interface{}) (user.Session, error) {
	if t, _ := claims["type"].(string); t != tokenTypeAccess {
		return user.Session{}, ErrInvalidClaims
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || !user.Role(role).IsValid() {
		return user.Session{}, ErrInvalidClaims
	}
	email, _ := claims["email"].(string)
	employeeID, _ := claims["employee_id"].(string)

	var caps []user.Capability
	switch raw := claims["capabilities"].(type) {
	case []interface{}:
		for _, v := range raw {
			if s, ok := v.(string); ok {
				caps = append(caps, user.Capability(s))
			}
		}
	case []string:
		for _, s := range raw {
			caps = append(caps, user.Capability(s))
		}
	}

	return user.Session{
		UserID:       userID,
		EmployeeID:   employeeID,
		Email:        email,
		Role:         user.Role(role),
		Capabilities: user.NewCapabilitySet(caps...),
	}, nil
}

func capabilityStrings(set user.CapabilitySet) []string {
	caps := set.List()
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}

func returnValueOrNil(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
