// Package auth implements the demo sign-in: a single configured account, checked after a simulated latency.
// Issued tokens are informational; nothing requires them.
package auth

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/masomo-admin/core"
)

const audience = "Dashboard"

// ErrInvalidCredentials is the only failure reported to the sign-in form.
var ErrInvalidCredentials = core.NewValidationError(errors.New("Invalid email or password"))

// hashCost is a var so tests can lower it.
var hashCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of pwd.
func HashPassword(pwd string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), hashCost)
	return hash, errors.Wrap(err, "hashing password")
}

// Claims represents the claims transmitted via a sign-in JWT.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
}

type Service struct {
	email        string
	passwordHash []byte
	secretKey    []byte
	issuer       string
	expiration   time.Duration
	delay        time.Duration
	clock        clock.Clock
}

// NewService returns the sign-in service of the account described by conf.Demo.
func NewService(conf *core.Config, clk clock.Clock) (*Service, error) {
	if clk == nil {
		clk = clock.New()
	}
	hash := []byte(conf.Demo.PasswordHash)
	if len(hash) == 0 {
		var err error
		if hash, err = HashPassword(conf.Demo.Password); err != nil {
			return nil, err
		}
	}
	return &Service{
		email:        core.CleanString(conf.Demo.Email, true /* lower */),
		passwordHash: hash,
		secretKey:    []byte(conf.SecretKey),
		issuer:       conf.AppName,
		expiration:   conf.Server.JWTExpirationDelta,
		delay:        conf.UI.SignInDelay,
		clock:        clk,
	}, nil
}

// SignIn checks the credentials once the simulated latency elapses, and returns a signed token.
// It returns early with ctx's error if ctx is done first.
func (svc *Service) SignIn(ctx context.Context, email, pwd string) (string, error) {
	timer := svc.clock.Timer(svc.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), "signing in")
	case <-timer.C:
	}

	if core.CleanString(email, true) != svc.email {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(svc.passwordHash, []byte(pwd)); err != nil {
		return "", ErrInvalidCredentials
	}
	return svc.GenerateToken()
}

// GenerateToken generates a signed HS256 token for the demo account.
func (svc *Service) GenerateToken() (string, error) {
	now := svc.clock.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    svc.issuer,
			Subject:   svc.email,
			Audience:  audience,
			ExpiresAt: now.Add(svc.expiration).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: svc.email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(svc.secretKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// ParseToken verifies ss and returns its claims.
func (svc *Service) ParseToken(ss string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(ss, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return svc.secretKey, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parsing token")
	}
	return claims, nil
}
