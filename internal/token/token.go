// Package token 负责会话令牌的签发与校验
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims 是令牌中携带的身份信息
type Claims struct {
	ID     int64       `json:"id"`
	Role   domain.Role `json:"role"`
	UserID string      `json:"user_id"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, expiration time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

func (i *Issuer) Issue(user *domain.User) (string, *Claims, error) {
	now := i.now()

	claims := &Claims{
		ID:     user.ID,
		Role:   user.Role,
		UserID: user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, err
	}

	return ss, claims, nil
}

// Parse 校验签名、算法与有效期，任何失败都统一返回 ErrInvalidToken
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	return claims, nil
}
