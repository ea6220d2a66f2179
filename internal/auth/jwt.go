package auth

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET não definida, usando segredo de desenvolvimento")
		secret = "impacto-x-dev"
	}
	jwtSecret = []byte(secret)
}

type Claims struct {
	OperadorID uint `json:"operadorId"`
	IsAdmin    bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// GerarToken gera um JWT com validade de 24h para o operador.
func GerarToken(operadorID uint, isAdmin bool) (string, error) {
	claims := &Claims{
		OperadorID: operadorID,
		IsAdmin:    isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseAndValidate valida o token e devolve as claims.
func ParseAndValidate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("não foi possível extrair claims")
	}
	return claims, nil
}
