package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios del portal.
// Silos lleva las membresías de silo del usuario: el middleware de acceso
// decide sin consultar la DB a qué silos puede entrar cada request.
type Claims struct {
	jwt.RegisteredClaims
	UserID string   `json:"user_id"`
	Role   string   `json:"role"`  // "admin" | "underwriter" | "agent"
	Silos  []string `json:"silos"` // claves de silo autorizadas: BF, SLF, BI
}

// Generate genera un token JWT firmado que incluye userID, role y las membresías de silo.
func Generate(secret, userID, role string, silos []string, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Role:   role,
		Silos:  silos,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve userID, role y membresías de silo.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (userID, role string, silos []string, err error) {
	if secret == "" {
		return "", "", nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", nil, fmt.Errorf("claims inválidos")
	}
	return claims.UserID, claims.Role, claims.Silos, nil
}
