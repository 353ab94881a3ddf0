package helpers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

// TokenValidator verifies session tokens. When a JWKS URL is configured the
// keys are fetched remotely, otherwise the HMAC secret is used. Construction
// takes the config explicitly so tests never depend on process-wide state.
type TokenValidator struct {
	jwksURL string
	secret  []byte
}

func NewTokenValidator(jwksURL, secret string) *TokenValidator {
	return &TokenValidator{jwksURL: jwksURL, secret: []byte(secret)}
}

func (v *TokenValidator) Validate(tokenStr string) (*SessionClaims, error) {
	var token *jwt.Token
	var err error

	if v.jwksURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		jwks, jwksErr := keyfunc.Get(v.jwksURL, keyfunc.Options{Ctx: ctx})
		if jwksErr != nil {
			return nil, fmt.Errorf("fetch JWKS: %w", jwksErr)
		}
		defer jwks.EndBackground()

		token, err = jwt.ParseWithClaims(tokenStr, &SessionClaims{}, jwks.Keyfunc)
	} else {
		token, err = jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return v.secret, nil
		})
	}
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	return hasLower && hasUpper && hasNumber
}

// Slugify normalizes a display name into a URL-safe username.
func Slugify(name string) string {
	return slug.Make(name)
}
