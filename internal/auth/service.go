package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expenseflow/expenseflow/internal"
	"github.com/expenseflow/expenseflow/internal/company"
	"github.com/expenseflow/expenseflow/internal/user"
	"github.com/golang-jwt/jwt/v5"
)

// UserVerifier is the slice of the user service auth needs.
type UserVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) (*user.User, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	Create(ctx context.Context, dto user.CreateUserDTO, companyID string) (*user.User, error)
}

// CompanyGetter resolves the deployment's company record so self-service
// signups land in it.
type CompanyGetter interface {
	Get(ctx context.Context) (*company.Company, error)
}

type Service struct {
	users          UserVerifier
	companies      CompanyGetter
	tokenGenerator TokenGenerator
}

func NewService(users UserVerifier, companies CompanyGetter, tokenGen TokenGenerator) *Service {
	return &Service{users: users, companies: companies, tokenGenerator: tokenGen}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    24 * 7 * time.Hour,
	}
}

// Authenticate validates credentials and returns tokens plus the user.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, *user.User, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.users.VerifyPassword(ctx, dto.Email, dto.Password)
	if err != nil {
		return AuthTokens{}, nil, internal.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return AuthTokens{}, nil, err
	}
	return tokens, u, nil
}

// Signup registers a self-service employee account and logs it in.
func (s *Service) Signup(ctx context.Context, dto SignupDTO) (AuthTokens, *user.User, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	companyID := ""
	if s.companies != nil {
		if c, err := s.companies.Get(ctx); err == nil {
			companyID = c.ID
		}
	}

	u, err := s.users.Create(ctx, user.CreateUserDTO{
		Email:    dto.Email,
		Name:     dto.Name,
		Password: dto.Password,
		Role:     user.RoleEmployee,
	}, companyID)
	if err != nil {
		return AuthTokens{}, nil, err
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return AuthTokens{}, nil, err
	}
	return tokens, u, nil
}

// SessionFromToken resolves a bearer token into a session.
func (s *Service) SessionFromToken(ctx context.Context, tokenString string) (*internal.Session, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	return &internal.Session{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}, nil
}

func (s *Service) issueTokens(u *user.User) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate access token", err)
	}
	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate refresh token", err)
	}
	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID, email string) (string, error) {
	return j.sign(userID, email, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID, email string) (string, error) {
	return j.sign(userID, email, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) sign(userID, email string, ttl time.Duration, secret []byte) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates an access token and returns its claims.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.AccessTokenSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, internal.ErrInvalidToken
}
