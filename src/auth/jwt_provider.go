package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"expense-tracker/src/models"
	"expense-tracker/src/store"
	"expense-tracker/src/util"
)

const DefaultTokenTTL = 168 * time.Hour

// JWTProvider authenticates against a UserStore and issues stateless HS256
// tokens. Logout has nothing to revoke; clients discard the token.
type JWTProvider struct {
	users  store.UserStore
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

type JWTOption func(*JWTProvider)

func WithTokenTTL(ttl time.Duration) JWTOption {
	return func(p *JWTProvider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

func WithBcryptCost(cost int) JWTOption {
	return func(p *JWTProvider) { p.cost = cost }
}

func WithClock(now func() time.Time) JWTOption {
	return func(p *JWTProvider) { p.now = now }
}

func NewJWTProvider(users store.UserStore, secret string, opts ...JWTOption) *JWTProvider {
	p := &JWTProvider{
		users:  users,
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *JWTProvider) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}
	email = util.NormalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := p.users.CreateUser(ctx, strings.TrimSpace(name), email, hash)
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Successful registration - Email: %s, ID: %s", user.Email, user.ID)
	return p.issue(*user)
}

func (p *JWTProvider) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := validateLogin(email, password); err != nil {
		return nil, err
	}
	creds, err := p.users.GetUserByEmail(ctx, util.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(creds.PasswordHash, []byte(password)); err != nil {
		log.Printf("ERROR: Invalid password attempt for email %s", creds.Email)
		return nil, models.ErrInvalidCredentials
	}
	log.Printf("INFO: Successful login - Email: %s, ID: %s", creds.Email, creds.ID)
	return p.issue(creds.User)
}

func (p *JWTProvider) issue(user models.User) (*Session, error) {
	now := p.now()
	exp := now.Add(p.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: signed, User: user, ExpiresAt: exp}, nil
}

func (p *JWTProvider) CurrentSession(_ context.Context, tokenString string) (*Session, bool) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired(), jwt.WithTimeFunc(p.now))
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, false
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	s := &Session{Token: tokenString, User: models.User{ID: userID, Name: name, Email: email}}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	return s, true
}

func (p *JWTProvider) Logout(context.Context, string) error {
	return nil
}

func (p *JWTProvider) User(ctx context.Context, userID string) (*models.User, error) {
	return p.users.GetUserByID(ctx, userID)
}
