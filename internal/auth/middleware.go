package auth

import (
	"errors"
	"net/http"

	"github.com/Lelo88/lista-desejos-api/internal/httpx"
	"github.com/Lelo88/lista-desejos-api/internal/logger"
)

const (
	messageMissingToken = "Token de autenticação ausente"
	messageInvalidToken = "Token inválido ou expirado"
)

// Middleware exige un bearer token válido antes de llegar al handler.
// El detalle del error se loguea; al cliente sólo le llega un 401 genérico.
func Middleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			token, err := BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				log.Warn().Err(err).Msg("authorization header missing or malformed")
				httpx.Fail(w, r, http.StatusUnauthorized, "unauthorized", messageMissingToken)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				log.Warn().Err(err).Msg("token rejected")
				if errors.Is(err, ErrMissingToken) {
					httpx.Fail(w, r, http.StatusUnauthorized, "unauthorized", messageMissingToken)
					return
				}
				httpx.Fail(w, r, http.StatusUnauthorized, "unauthorized", messageInvalidToken)
				return
			}

			ctx := r.Context()
			logger.AddField(ctx, "user_id", userID)

			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
		})
	}
}
