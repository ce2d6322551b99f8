package services

import (
	"context"
	"errors"
	"time"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService is the stub login flow: it resolves the account against the
// remote content API and issues a session token. Passwords are accepted
// as-is; real credential verification is out of scope.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GenerateToken(user *domain.User) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims carry enough of the user record to rebuild a UserContext per
// request without another API round trip.
type Claims struct {
	UserID          domain.UserID   `json:"user_id"`
	Email           string          `json:"email"`
	ClubPermissions []domain.ClubID `json:"club_permissions,omitempty"`
	PricePlans      []string        `json:"price_plans,omitempty"`
	jwt.RegisteredClaims
}

// Context returns the viewer these claims describe.
func (c *Claims) Context() domain.UserContext {
	return domain.UserContext{
		IsAuthenticated:   true,
		Email:             c.Email,
		ClubPermissions:   c.ClubPermissions,
		SubscriptionPlans: c.PricePlans,
	}
}

type authService struct {
	api       ports.ContentAPI
	clubs     ports.ClubRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.SugaredLogger
}

func NewAuthService(
	api ports.ContentAPI,
	clubs ports.ClubRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *zap.SugaredLogger,
) AuthService {
	return &authService{
		api:       api,
		clubs:     clubs,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.api.GetUser(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if user.ID == "" {
		user.ID = domain.UserID(uuid.New().String())
	}
	user.ClubPermissions = s.clubPermissions(ctx, user.PricePlans)

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Infow("user logged in", "email", email, "clubs", len(user.ClubPermissions))
	return user, token, nil
}

// clubPermissions maps the user's owned price plans onto catalog clubs:
// holding a plan whose identifier matches a club grants that club.
func (s *authService) clubPermissions(ctx context.Context, pricePlans []string) []domain.ClubID {
	if len(pricePlans) == 0 {
		return nil
	}
	clubs, err := s.clubs.List(ctx)
	if err != nil {
		s.logger.Warnw("failed to list clubs for permission mapping", "error", err)
		return nil
	}

	plans := make(map[string]struct{}, len(pricePlans))
	for _, p := range pricePlans {
		plans[p] = struct{}{}
	}

	var perms []domain.ClubID
	for _, club := range clubs {
		if _, ok := plans[string(club.ID)]; ok {
			perms = append(perms, club.ID)
		}
	}
	return perms
}

func (s *authService) GenerateToken(user *domain.User) (string, error) {
	claims := &Claims{
		UserID:          user.ID,
		Email:           user.Email,
		ClubPermissions: user.ClubPermissions,
		PricePlans:      user.PricePlans,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
