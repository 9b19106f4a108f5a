package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/config"
)

var (
	ErrTokenExpired = errors.New("token đã hết hạn")
	ErrTokenInvalid = errors.New("token không hợp lệ")
)

// Claims thông tin định danh trong JWT
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"` // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// Manager quản lý phát hành và xác thực JWT
type Manager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager tạo Manager từ cấu hình
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken phát hành Access Token
func (m *Manager) GenerateAccessToken(userID, role string) (string, error) {
	return m.generate(userID, role, "access", m.accessTokenTTL)
}

// GenerateRefreshToken phát hành Refresh Token
func (m *Manager) GenerateRefreshToken(userID, role string) (string, error) {
	return m.generate(userID, role, "refresh", m.refreshTokenTTL)
}

func (m *Manager) generate(userID, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "diem-danh",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken xác thực và giải mã token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// AccessTokenTTL thời hạn Access Token (giây)
func (m *Manager) AccessTokenTTL() int {
	return int(m.accessTokenTTL.Seconds())
}
