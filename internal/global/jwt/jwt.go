package jwt

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenRevoked = errors.New("token revoked")
)

// Identity 是写进 token 的用户信息
type Identity struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	StudentID string `json:"student_id"`
}

type Claims struct {
	Identity
	jwt.StandardClaims
}

// Manager 负责签发、解析和吊销 token
type Manager struct {
	secret  []byte
	expire  time.Duration
	revoker Revoker
}

func NewManager(secret string, expire time.Duration, revoker Revoker) *Manager {
	if revoker == nil {
		revoker = NewMemoryRevoker()
	}
	return &Manager{secret: []byte(secret), expire: expire, revoker: revoker}
}

// CreateToken 签发 HS256 token，每个 token 带唯一的 jti 以便吊销
func (m *Manager) CreateToken(identity Identity) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		Identity: identity,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.expire).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, errors.Wrap(err, "sign token")
	}
	return token, claims, nil
}

// ParseToken 校验签名、过期时间和吊销状态
func (m *Manager) ParseToken(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.Wrap(ErrTokenInvalid, errString(err))
	}

	revoked, err := m.revoker.IsRevoked(ctx, claims.Id)
	if err != nil {
		return nil, errors.Wrap(err, "check revocation")
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke 把 token 拉黑到它原本的过期时间
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		return nil
	}
	return m.revoker.Revoke(ctx, claims.Id, ttl)
}

func errString(err error) string {
	if err == nil {
		return "invalid"
	}
	return err.Error()
}
