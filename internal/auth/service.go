package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"backend-soultrip/internal/apperr"
	"backend-soultrip/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session_token"

const sessionTTL = 7 * 24 * time.Hour

// ErrInvalidCredentials is returned by Login for unknown users and wrong
// passwords alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	secret   []byte
	db       db.Querier
	sessions *redis.Client
}

// Claims is the payload of a session token. The session id keys the Redis
// entry that lets logout revoke the token before its expiry.
type Claims struct {
	UserID    int64  `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func NewService(secret string, db db.Querier, sessions *redis.Client) *Service {
	return &Service{
		secret:   []byte(secret),
		db:       db,
		sessions: sessions,
	}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return User{}, apperr.Validation("username, email and password required")
	}

	var taken bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, req.Username).Scan(&taken)
	if err != nil {
		return User{}, apperr.Storage(err)
	}
	if taken {
		return User{}, apperr.Validation("username already exists")
	}

	err = s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, req.Email).Scan(&taken)
	if err != nil {
		return User{}, apperr.Storage(err)
	}
	if taken {
		return User{}, apperr.Validation("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, user.Username, user.Email, user.PasswordHash)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		return User{}, apperr.Storage(err)
	}
	return user, nil
}

// Login verifies credentials and opens a session, returning the signed token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (User, string, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = $1
	`, req.Username)

	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return User{}, "", apperr.Storage(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Logout revokes the session behind the token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.Del(ctx, sessionKey(claims.SessionID)).Err()
}

func (s *Service) Profile(ctx context.Context, userID int64) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, email, created_at
		FROM users WHERE id = $1
	`, userID)

	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("user")
	}
	if err != nil {
		return User{}, apperr.Storage(err)
	}
	return user, nil
}

// ValidateSession resolves a token to its user id. The token must both carry
// a valid signature and still have a live Redis entry.
func (s *Service) ValidateSession(ctx context.Context, token string) (int64, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return 0, apperr.ErrUnauthenticated
	}

	stored, err := s.sessions.Get(ctx, sessionKey(claims.SessionID)).Result()
	if err != nil {
		return 0, apperr.ErrUnauthenticated
	}
	userID, err := strconv.ParseInt(stored, 10, 64)
	if err != nil || userID != claims.UserID {
		return 0, apperr.ErrUnauthenticated
	}
	return userID, nil
}

func (s *Service) createSession(ctx context.Context, userID int64) (string, error) {
	sessionID := uuid.NewString()
	claims := Claims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	if err := s.sessions.Set(ctx, sessionKey(sessionID), userID, sessionTTL).Err(); err != nil {
		return "", apperr.Storage(err)
	}
	return token, nil
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
