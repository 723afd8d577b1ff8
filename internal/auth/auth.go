package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/golang-jwt/jwt/v5"
)

// Claims полезная нагрузка access токена. sub содержит числовой id пользователя.
type Claims struct {
	Sub     int64  `json:"sub"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	StoreID *int64 `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify проверяет подпись и срок действия токена и возвращает личность вызывающего.
func (v *Verifier) Verify(token string) (entities.Identity, error) {
	var claims Claims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return entities.Identity{}, fmt.Errorf("%w: %w", entities.ErrUnauthenticated, err)
	}

	if claims.Sub <= 0 {
		return entities.Identity{}, fmt.Errorf("%w: missing subject", entities.ErrUnauthenticated)
	}

	role := entities.Role(strings.ToLower(claims.Role))
	if !role.Valid() {
		return entities.Identity{}, fmt.Errorf("%w: unknown role %q", entities.ErrUnauthenticated, claims.Role)
	}

	return entities.Identity{
		UserID:  claims.Sub,
		Role:    role,
		StoreID: claims.StoreID,
	}, nil
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity entities.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (entities.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(entities.Identity)
	return identity, ok
}
