// Package auth valida los JWT emitidos por Supabase y expone el usuario
// autenticado al resto de la aplicación a través del contexto.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAudience es el "aud" que Supabase pone en los tokens de usuarios logueados.
const DefaultAudience = "authenticated"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

var signingMethod = jwt.SigningMethodHS256

// TokenVerifier es lo que el middleware necesita para resolver el usuario.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Verifier valida tokens HS256 contra un secreto compartido.
type Verifier struct {
	secret   []byte
	audience string
	parser   *jwt.Parser
}

// NewVerifier crea un verifier. Un audience vacío usa DefaultAudience.
func NewVerifier(secret, audience string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if strings.TrimSpace(audience) == "" {
		audience = DefaultAudience
	}

	return &Verifier{
		secret:   []byte(secret),
		audience: audience,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{signingMethod.Alg()}),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Verify devuelve el subject del token. Cualquier falla se reporta como
// ErrInvalidToken envolviendo la causa original (sólo para logs).
func (verifier *Verifier) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := verifier.parser.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		return verifier.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	// user_id es uuid en la tabla: otro formato rompería el cast en Postgres.
	parsed, err := uuid.Parse(subject)
	if err != nil {
		return "", fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}

	return parsed.String(), nil
}

// BearerToken extrae el token de un header "Authorization: Bearer <token>".
func BearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrMissingToken
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
