package util

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

var ErrMissingSubject = errors.New("token has no subject")

type (
	// JWTClaims is the wire form of the token; field names are kept short.
	JWTClaims struct {
		UserID uint       `json:"ui"`
		Role   model.Role `json:"ro"`
		jwt.RegisteredClaims
	}
	// JWTMessage is the decoded identity carried through the request context.
	JWTMessage struct {
		UserID   uint       `json:"userID"`
		Username string     `json:"username"` // subject
		Role     model.Role `json:"role"`
	}
)

// TokenManager signs and verifies the HS256 access tokens. It is constructed
// once from the injected config.
type TokenManager struct {
	secretKey       string
	accessTokenTTL  int
	refreshTokenTTL int
}

func NewTokenManager(secretKey string, accessTokenTTLHour, refreshTokenTTLHour int) *TokenManager {
	return &TokenManager{
		secretKey:       secretKey,
		accessTokenTTL:  accessTokenTTLHour,
		refreshTokenTTL: refreshTokenTTLHour,
	}
}

func (tm *TokenManager) createToken(msg *JWTMessage, ttlHour int) (string, error) {
	expiresAt := time.Now().Add(time.Hour * time.Duration(ttlHour))

	claims := &JWTClaims{
		UserID: msg.UserID,
		Role:   msg.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   msg.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tm.secretKey))
}

// CreateTokens creates a new access token and a new refresh token.
func (tm *TokenManager) CreateTokens(msg *JWTMessage) (accessToken, refreshToken string, err error) {
	accessToken, err = tm.createToken(msg, tm.accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = tm.createToken(msg, tm.refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// CheckToken verifies signature and expiry and requires a subject.
func (tm *TokenManager) CheckToken(requestToken string) (JWTMessage, error) {
	claims := JWTClaims{}
	_, err := jwt.ParseWithClaims(requestToken, &claims, func(_ *jwt.Token) (any, error) {
		return []byte(tm.secretKey), nil
	})
	if err != nil {
		return JWTMessage{}, err
	}
	if claims.Subject == "" {
		return JWTMessage{}, ErrMissingSubject
	}
	return JWTMessage{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Role:     claims.Role,
	}, nil
}
