package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
	ErrNoSecret     = errors.New("jwt secret is not configured")
)

type Config struct {
	Secret string `mapstructure:"jwt_secret"`
	// Issuer, when set, must match the iss claim.
	Issuer string `mapstructure:"issuer"`
}

type (
	Manager interface {
		DecodeToken(tokenString string) (*Claims, error)
	}
	manager struct {
		secret []byte
		parser *jwt.Parser
	}
)

func NewJwtManager(config Config) (Manager, error) {
	if config.Secret == "" {
		return nil, ErrNoSecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		}),
	}
	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}
	return &manager{
		secret: []byte(config.Secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

// Claims carries the registered claims plus the login claim issued by the UAA.
type Claims struct {
	PreferredUsername string `json:"preferred_username,omitempty"`
	jwt.RegisteredClaims
}

// Login is preferred_username, falling back to the subject.
func (c *Claims) Login() string {
	if c.PreferredUsername != "" {
		return c.PreferredUsername
	}
	return c.Subject
}

// DecodeToken verifies the signature and time claims of tokenString.
func (m *manager) DecodeToken(tokenString string) (*Claims, error) {
	token, err := m.parser.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return m.secret, nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
