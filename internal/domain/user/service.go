// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/config"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/infrastructure/database/mongo"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/pkg/apperror"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/pkg/auth"
)

// Service handles identity and authentication business logic
type Service struct {
	db              *mongo.Database
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *mongo.Database, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// SignupRequest represents user registration data
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token to exchange
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ForgotPasswordRequest identifies the account to reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries the replacement password
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

func (s *Service) users() *driver.Collection {
	return s.db.Collection(mongo.CollectionUsers)
}

// Signup creates a new user account
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if user already exists
	var existing User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return nil, apperror.NewConflictError("User with this email already exists")
	}
	if !errors.Is(err, driver.ErrNoDocuments) {
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error())
	}

	now := time.Now().UTC()
	u := User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     email,
		Password:  hashedPassword,
		Role:      RoleUser,
		Avatar:    Avatar{Alt: "user avatar"},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.users().InsertOne(ctx, u); err != nil {
		if driver.IsDuplicateKeyError(err) {
			return nil, apperror.NewConflictError("User with this email already exists")
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	u.Sanitize()
	return &u, nil
}

// Login authenticates a user and issues a token pair. The refresh token is
// persisted on the user document so it can be matched and rotated later.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var u User
	err := s.users().FindOne(ctx, bson.M{"email": email, "isActive": true}).Decode(&u)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, apperror.NewAuthError("Invalid email or password")
		}
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, apperror.NewAuthError("Invalid email or password")
	}

	return s.issueTokens(ctx, &u)
}

// Refresh exchanges a valid refresh token for a new token pair. The presented
// token must match the one stored at login; both tokens rotate on success.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.NewForbiddenError("Invalid or expired refresh token")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperror.NewForbiddenError("Invalid refresh token subject")
	}

	var u User
	err = s.users().FindOne(ctx, bson.M{"_id": userID, "isActive": true}).Decode(&u)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, apperror.NewAuthError("User not found or inactive")
		}
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	if u.RefreshToken == "" || u.RefreshToken != refreshToken {
		return nil, apperror.NewForbiddenError("Refresh token has been revoked")
	}

	return s.issueTokens(ctx, &u)
}

// Logout clears the stored refresh token for the user
func (s *Service) Logout(ctx context.Context, userID string) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperror.NewValidationError("Invalid user ID")
	}

	update := bson.M{
		"$unset": bson.M{"refreshToken": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := s.users().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return apperror.NewDatabaseError("failed to log out", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFoundError("User not found")
	}
	return nil
}

// CurrentUser fetches the authenticated user's document
func (s *Service) CurrentUser(ctx context.Context, userID string) (*User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid user ID")
	}

	var u User
	err = s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("User not found")
		}
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	u.Sanitize()
	return &u, nil
}

// ForgotPassword stores a time-limited reset token on the user document and
// returns it for out-of-band delivery. The ok flag reports whether the email
// matched anything; the handler answers generically either way so the
// endpoint cannot be used to enumerate accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) (token string, ok bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	token, err = auth.GenerateResetToken()
	if err != nil {
		return "", false, apperror.NewInternalError("failed to generate reset token", err)
	}

	expires := time.Now().UTC().Add(s.config.Security.ResetTokenExpiry)
	update := bson.M{"$set": bson.M{
		"resetPasswordToken":   token,
		"resetPasswordExpires": expires,
		"updatedAt":            time.Now().UTC(),
	}}

	res, err := s.users().UpdateOne(ctx, bson.M{"email": email, "isActive": true}, update)
	if err != nil {
		return "", false, apperror.NewDatabaseError("failed to store reset token", err)
	}
	if res.MatchedCount == 0 {
		return "", false, nil
	}
	return token, true, nil
}

// ResetPassword sets a new password for the account matching an unexpired
// reset token, then revokes the token and any outstanding refresh token.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	hashed, err := s.passwordManager.HashPassword(newPassword)
	if err != nil {
		return apperror.NewValidationError(err.Error())
	}

	filter := bson.M{
		"resetPasswordToken":   token,
		"resetPasswordExpires": bson.M{"$gt": time.Now().UTC()},
	}
	update := bson.M{
		"$set":   bson.M{"password": hashed, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpires": "", "refreshToken": ""},
	}

	res, err := s.users().UpdateOne(ctx, filter, update)
	if err != nil {
		return apperror.NewDatabaseError("failed to reset password", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFoundError("Reset token is invalid or has expired")
	}
	return nil
}

func (s *Service) issueTokens(ctx context.Context, u *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate access token", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.Hex())
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate refresh token", err)
	}

	update := bson.M{"$set": bson.M{
		"refreshToken": refreshToken,
		"updatedAt":    time.Now().UTC(),
	}}
	if _, err := s.users().UpdateOne(ctx, bson.M{"_id": u.ID}, update); err != nil {
		return nil, apperror.NewDatabaseError("failed to store refresh token", err)
	}

	u.Sanitize()
	return &AuthResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}
