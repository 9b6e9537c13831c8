package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

const (
	otpKeyPrefix = "otp:admin:"
	otpTTL       = 10 * time.Minute
)

// AuthService issues JWTs. Users authenticate with email + password, admins
// with a one-time code delivered out of band.
type AuthService struct {
	Users  UserDirectory
	Admins AdminDirectory
	Redis  *redis.Client
	Logger *zap.Logger

	Secret        string
	UserTokenTTL  time.Duration
	AdminTokenTTL time.Duration
}

func NewAuthService(users UserDirectory, admins AdminDirectory, rdb *redis.Client, logger *zap.Logger, secret string, userTTL, adminTTL time.Duration) *AuthService {
	return &AuthService{
		Users:         users,
		Admins:        admins,
		Redis:         rdb,
		Logger:        logger,
		Secret:        secret,
		UserTokenTTL:  userTTL,
		AdminTokenTTL: adminTTL,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user,omitempty"`
}

// Login authenticates a user account and returns a signed token.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.Users.FindByEmail(util.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if !user.IsActivated {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateUserJWT(user, s.Secret, s.UserTokenTTL)
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdateLastLogin(user.ID); err != nil {
		s.Logger.Warn("failed to stamp last login", zap.String("user_id", user.ID), zap.Error(err))
	}
	return &LoginResponse{Token: token, User: user}, nil
}

type OTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestAdminOTP generates a six-digit code for the admin and parks it in
// redis for ten minutes. Unknown emails are answered the same way as known
// ones so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) RequestAdminOTP(ctx context.Context, req *OTPRequest) error {
	email := util.NormalizeEmail(req.Email)
	admin, err := s.Admins.FindByEmail(email)
	if err != nil {
		if errors.Is(err, util.ErrAdminNotFound) {
			return nil
		}
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, otpKeyPrefix+email, code, otpTTL).Err(); err != nil {
		return err
	}

	// Delivery is handled by the notification pipeline; the log line keeps
	// local development usable without it.
	s.Logger.Info("admin otp issued",
		zap.String("admin_id", admin.ID),
		zap.String("code", code),
	)
	return nil
}

type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type AdminLoginResponse struct {
	Token string       `json:"token"`
	Admin *model.Admin `json:"admin,omitempty"`
}

// VerifyAdminOTP swaps a valid code for an admin token. Codes are single
// use; a successful verification consumes the key.
func (s *AuthService) VerifyAdminOTP(ctx context.Context, req *OTPVerifyRequest) (*AdminLoginResponse, error) {
	email := util.NormalizeEmail(req.Email)
	stored, err := s.Redis.Get(ctx, otpKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, util.ErrInvalidOTP
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(req.Code)) != 1 {
		return nil, util.ErrInvalidOTP
	}
	if err := s.Redis.Del(ctx, otpKeyPrefix+email).Err(); err != nil {
		return nil, err
	}

	admin, err := s.Admins.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	token, err := util.GenerateAdminJWT(admin, s.Secret, s.AdminTokenTTL)
	if err != nil {
		return nil, err
	}
	return &AdminLoginResponse{Token: token, Admin: admin}, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
