// Package apikey genera y verifica API keys de larga duración.
//
// Formato: "sk_" + 64 caracteres hex (32 bytes aleatorios). Solo se persiste
// el hash SHA-256 de la key completa más un prefijo de búsqueda; la key en
// claro se muestra una única vez al generarla.
package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	keyPrefix = "sk_"
	// PrefixLen caracteres de la key usados como índice de búsqueda en DB.
	PrefixLen = 8
)

// Generate crea una API key nueva. Devuelve la key en claro, su hash
// hex(SHA-256) y el prefijo de búsqueda.
func Generate() (key, hash, prefix string, err error) {
	raw := make([]byte, 32)
	if _, err = rand.Read(raw); err != nil {
		return "", "", "", fmt.Errorf("apikey: generando aleatorio: %w", err)
	}
	key = keyPrefix + hex.EncodeToString(raw)
	return key, Hash(key), Prefix(key), nil
}

// Hash devuelve hex(SHA-256) de la key completa.
func Hash(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Prefix devuelve los primeros PrefixLen caracteres de la key.
func Prefix(key string) string {
	if len(key) < PrefixLen {
		return key
	}
	return key[:PrefixLen]
}

// Valid comprueba el formato sk_ + 64 hex.
func Valid(key string) bool {
	if !strings.HasPrefix(key, keyPrefix) {
		return false
	}
	body := key[len(keyPrefix):]
	if len(body) != 64 {
		return false
	}
	_, err := hex.DecodeString(body)
	return err == nil
}

// Verify compara en tiempo constante el hash almacenado contra la key presentada.
func Verify(storedHash, presentedKey string) bool {
	presented := Hash(presentedKey)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(presented)) == 1
}
