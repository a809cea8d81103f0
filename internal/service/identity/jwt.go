package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

var signingMethod = jwt.SigningMethodHS256

// TokenParser resolves the already-authenticated learner from an access
// token. The engine never issues credentials; the auth layer that signed the
// token is outside this service.
type TokenParser struct {
	secretKey string
	issuer    string
}

func NewTokenParser(secretKey, issuer string) *TokenParser {
	return &TokenParser{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

type AccessTokenClaims struct {
	TokenType   string    `json:"token_type"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Roles       []string  `json:"roles"`
	jwt.RegisteredClaims
}

func (p *TokenParser) AccessClaims(tokenStr string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.secretKey), nil
	}, jwt.WithIssuer(p.issuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}

	if claims.TokenType != accessTokenType {
		return nil, fmt.Errorf("wrong token type: expected %q, got %q", accessTokenType, claims.TokenType)
	}

	return claims, nil
}
