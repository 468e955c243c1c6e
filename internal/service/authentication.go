// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"user-admin/internal/cache"
	"user-admin/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	// refreshGracePeriod 內同時發生的刷新請求可共用剛換發的 refresh token
	refreshGracePeriod = 3 * time.Second
)

var (
	timeNow         = time.Now
	newTokenID      = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
)

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	UserID      int               `json:"user_id"`
	LoginID     string            `json:"login_id"`
	Name        string            `json:"name"`
	Role        model.UserType    `json:"role"`
	Authorities []model.Authority `json:"authorities"`
	TokenType   string            `json:"token_type"`
	jwt.RegisteredClaims
}

// HasAuthority 判斷令牌是否持有指定權限
func (c *CustomClaims) HasAuthority(a model.Authority) bool {
	for _, have := range c.Authorities {
		if have == a {
			return true
		}
	}
	return false
}

// TokenService 負責簽發與驗證 JWT
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) issue(user model.User, tokenType string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("JWT secret not set")
	}
	now := timeNow()
	claims := CustomClaims{
		UserID:      user.ID,
		LoginID:     user.LoginID,
		Name:        user.Name,
		Role:        user.Role,
		Authorities: user.Authorities,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// IssueAccessToken 依使用者資訊產生存取令牌
func (s *TokenService) IssueAccessToken(user model.User) (string, error) {
	return s.issue(user, TokenTypeAccess, s.accessTTL)
}

// IssueRefreshToken 依使用者資訊產生刷新令牌
func (s *TokenService) IssueRefreshToken(user model.User) (string, error) {
	return s.issue(user, TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) parse(tokenString string, opts ...jwt.ParserOption) (*CustomClaims, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("JWT secret not set")
	}
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Verify 驗證令牌並確認類型
func (s *TokenService) Verify(tokenString, tokenType string) (*CustomClaims, error) {
	claims, err := s.parse(tokenString, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("unexpected token type: %s", claims.TokenType)
	}
	return claims, nil
}

// issuedWithin 判斷令牌簽發時間是否在 d 之內，不檢查過期
func (s *TokenService) issuedWithin(tokenString string, d time.Duration) bool {
	claims, err := s.parse(tokenString, jwt.WithoutClaimsValidation())
	if err != nil || claims.IssuedAt == nil {
		return false
	}
	return timeNow().Sub(claims.IssuedAt.Time) <= d
}

func refreshTokenKey(userID int) string {
	return "refresh_token:" + strconv.Itoa(userID)
}

// StoreRefreshToken 將使用者目前有效的刷新令牌寫入快取
func StoreRefreshToken(ctx context.Context, c cache.Cache, userID int, token string, ttl time.Duration) error {
	if err := c.Set(ctx, refreshTokenKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("StoreRefreshToken: %w", err)
	}
	return nil
}

// LoadRefreshToken 讀取快取中的刷新令牌，不存在時回傳 ErrUnauthorized
func LoadRefreshToken(ctx context.Context, c cache.Cache, userID int) (string, error) {
	val, err := c.Get(ctx, refreshTokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("LoadRefreshToken: %w", err)
	}
	return val, nil
}

// RevokeRefreshToken 刪除刷新令牌
func RevokeRefreshToken(ctx context.Context, c cache.Cache, userID int) error {
	if err := c.Del(ctx, refreshTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("RevokeRefreshToken: %w", err)
	}
	return nil
}

// AuthenticateUser 比對使用者密碼，未設定密碼的帳號一律拒絕
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if user.PasswordHash == nil {
		return ErrInvalidPassword
	}
	if err := ComparePassword(*user.PasswordHash, password); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
