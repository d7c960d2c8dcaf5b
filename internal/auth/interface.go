package auth

import "adalyze/internal/domain/models"

// JWTVerifier validates bearer tokens and extracts Supabase claims.
type JWTVerifier interface {
	// VerifyToken validates a JWT and returns its claims, or an error
	// wrapping domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases resources held by the verifier.
	Close() error
}
