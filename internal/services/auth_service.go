package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/SketchShifter/portfolio_backend/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken トークンが不正
var ErrInvalidToken = errors.New("無効なトークンです")

// AuthService 認証に関するサービスインターフェース
// トークンの発行元は外部の認証サービスで、ここでは検証のみ行う
type AuthService interface {
	ValidateToken(tokenString string) (*models.CurrentUser, error)
	GenerateToken(user models.CurrentUser, expiry time.Duration) (string, error)
}

// authService AuthServiceの実装
type authService struct {
	secret []byte
}

// NewAuthService AuthServiceを作成
func NewAuthService(secret string) AuthService {
	return &authService{secret: []byte(secret)}
}

// Claims JWTのペイロード
type Claims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	jwt.StandardClaims
}

// ValidateToken トークンを検証してログインユーザーを返す
func (s *authService) ValidateToken(tokenString string) (*models.CurrentUser, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("予期しない署名方式です: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return &models.CurrentUser{ID: claims.ID, Name: claims.Name}, nil
}

// GenerateToken トークンを発行 (開発用のデータ投入とテストで使う)
func (s *authService) GenerateToken(user models.CurrentUser, expiry time.Duration) (string, error) {
	claims := &Claims{
		ID:   user.ID,
		Name: user.Name,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(expiry).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
