package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxOperadorID ctxKey = "operadorID"
	CtxIsAdmin    ctxKey = "isAdmin"
)

// MiddlewareAutenticacao exige um Bearer token válido e injeta o operador
// no contexto da requisição.
func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxOperadorID, claims.OperadorID)
		ctx = context.WithValue(ctx, CtxIsAdmin, claims.IsAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin bloqueia a rota para operadores sem perfil de administrador.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Context().Value(CtxIsAdmin)
		if ok, _ := v.(bool); !ok {
			http.Error(w, "Acesso restrito a administradores", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OperadorDoContexto devolve o id do operador autenticado, ou 0 se ausente.
func OperadorDoContexto(ctx context.Context) uint {
	id, _ := ctx.Value(CtxOperadorID).(uint)
	return id
}
