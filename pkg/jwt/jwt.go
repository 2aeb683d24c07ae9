package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token emitidos. Un refresh token nunca autoriza peticiones
// y un access token nunca puede renovarse a sí mismo.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añaden Email y Role para que el middleware pueda tomar decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Type   string `json:"type"` // "access" | "refresh"
}

// Manager emite y valida tokens HS256 con un secreto compartido.
type Manager struct {
	secret     string
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager crea el emisor de tokens. Las expiraciones vienen en minutos.
func NewManager(secret, issuer string, accessMinutes, refreshMinutes int) *Manager {
	return &Manager{
		secret:     secret,
		issuer:     issuer,
		accessTTL:  time.Duration(accessMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshMinutes) * time.Minute,
	}
}

// AccessTTL devuelve la vida configurada del access token, para exponer
// expires_in en las respuestas de login y refresh.
func (m *Manager) AccessTTL() time.Duration {
	return m.accessTTL
}

// GenerateAccess genera el access token con email y role embebidos.
func (m *Manager) GenerateAccess(userID, email, role string) (string, error) {
	return m.generate(userID, email, role, TypeAccess, m.accessTTL)
}

// GenerateRefresh genera el refresh token. Solo lleva el userID; el resto
// de claims se resuelve contra la DB al renovar.
func (m *Manager) GenerateRefresh(userID string) (string, error) {
	return m.generate(userID, "", "", TypeRefresh, m.refreshTTL)
}

func (m *Manager) generate(userID, email, role, tokenType string, ttl time.Duration) (string, error) {
	if m.secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
		Type:   tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Parse valida el token y comprueba que sea del tipo esperado.
// Retorna error si el token es inválido, expirado, de otro tipo o con firma incorrecta.
func (m *Manager) Parse(tokenString, expectedType string) (*Claims, error) {
	if m.secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Type != expectedType {
		return nil, fmt.Errorf("tipo de token inesperado: %s", claims.Type)
	}
	return claims, nil
}
