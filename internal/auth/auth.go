package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sl "staff_portal/internal/lib/logger/sl"
	"staff_portal/internal/lib/random"
	"staff_portal/internal/lib/verification"
	"staff_portal/internal/models"
)

var (
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrInvalidVerification = errors.New("invalid verification link")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotVerified         = errors.New("account not verified")
	ErrUnknownUser         = errors.New("no user with that email")
	ErrInvalidResetToken   = errors.New("invalid reset token")
	ErrNotificationFailure = errors.New("failed to send notification")
)

type SnapshotStore interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}

type Publisher interface {
	SendMessage(ctx context.Context, msg models.Mail) error
}

// Auth owns account registration, email verification, login checks and password resets.
//
// Every operation loads the snapshot, decides, and saves the same snapshot.
// Mail goes out before the save, so a token is never persisted without a
// successful send, and a failed send persists nothing.
type Auth struct {
	log       *slog.Logger
	store     SnapshotStore
	publisher Publisher
	publicURL string
	newToken  func() (string, error)
}

func New(
	log *slog.Logger,
	store SnapshotStore,
	publisher Publisher,
	publicURL string,
) *Auth {
	return &Auth{
		log:       log,
		store:     store,
		publisher: publisher,
		publicURL: publicURL,
		newToken:  random.Token,
	}
}

// roleStubs creates the per-role row that accompanies a new user.
var roleStubs = map[models.Role]func(snap *models.Snapshot, email string){
	models.RoleEmployee: func(snap *models.Snapshot, email string) {
		snap.Employees = append(snap.Employees, models.Employee{
			ID:    snap.NextEmployeeID(),
			Email: email,
		})
	},
	models.RoleManager: func(snap *models.Snapshot, email string) {
		snap.Managers = append(snap.Managers, models.Manager{
			ID:    snap.NextManagerID(),
			Email: email,
		})
	},
	models.RoleAdmin: func(snap *models.Snapshot, email string) {
		snap.Admins = append(snap.Admins, models.Admin{
			ID:    snap.NextAdminID(),
			Email: email,
		})
	},
}

// RegisterNewUser creates an unverified user and mails the verification link.
// It returns the issued verification token.
func (a *Auth) RegisterNewUser(
	ctx context.Context,
	email string,
	pass string,
	role models.Role,
) (string, error) {
	const op = "auth.RegisterNewUser"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Info("Registering new user")

	snap, err := a.store.Load(ctx)
	if err != nil {
		log.Error("failed to load store", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if snap.UserByEmail(email) != nil {
		log.Warn("User already exists")
		return "", fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	}

	token, err := a.newToken()
	if err != nil {
		log.Error("failed to generate verification token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := a.publisher.SendMessage(ctx, verification.VerificationMail(a.publicURL, email, token)); err != nil {
		log.Error("failed to send verification email", sl.Err(err))
		return "", fmt.Errorf("%s: %w: %w", op, ErrNotificationFailure, err)
	}

	snap.Users = append(snap.Users, models.User{
		Email:       email,
		Password:    pass,
		Role:        role,
		Verified:    false,
		VerifyToken: &token,
	})

	if stub, ok := roleStubs[role]; ok {
		stub(snap, email)
	}

	if err := a.store.Save(ctx, snap); err != nil {
		log.Error("Failed to save user", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("User registered", slog.String("role", string(role)))

	return token, nil
}

// VerifyUser marks the user verified when token matches the outstanding verification token.
func (a *Auth) VerifyUser(ctx context.Context, email, token string) error {
	const op = "auth.VerifyUser"

	log := a.log.With(
		slog.String("op", op),
	)

	snap, err := a.store.Load(ctx)
	if err != nil {
		log.Error("failed to load store", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	user := snap.UserByEmail(email)
	if user == nil || !tokenMatches(user.VerifyToken, token) {
		log.Warn("verification token does not match")
		return fmt.Errorf("%s: %w", op, ErrInvalidVerification)
	}

	user.Verified = true
	user.VerifyToken = nil

	if err := a.store.Save(ctx, snap); err != nil {
		log.Error("failed to update verification status", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("email verified")

	return nil
}

// ResendVerification issues a fresh verification token for an unverified user.
// The previous token stops working. Verified users get no mail and no error.
func (a *Auth) ResendVerification(ctx context.Context, email string) error {
	const op = "auth.ResendVerification"

	log := a.log.With(
		slog.String("op", op),
	)

	snap, err := a.store.Load(ctx)
	if err != nil {
		log.Error("failed to load store", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	user := snap.UserByEmail(email)
	if user == nil {
		log.Info("user not found")
		return fmt.Errorf("%s: %w", op, ErrUnknownUser)
	}

	if user.Verified {
		log.Info("user already verified, nothing to resend")
		return nil
	}

	token, err := a.newToken()
	if err != nil {
		log.Error("failed to generate verification token", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.publisher.SendMessage(ctx, verification.VerificationMail(a.publicURL, email, token)); err != nil {
		log.Error("failed to send verification email", sl.Err(err))
		return fmt.Errorf("%s: %w: %w", op, ErrNotificationFailure, err)
	}

	user.VerifyToken = &token

	if err := a.store.Save(ctx, snap); err != nil {
		log.Error("failed to save verification token", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Login checks the credentials and the verified flag.
func (a *Auth) Login(ctx context.Context, email, password string) (models.Identity, error) {
	const op = "auth.Login"

	log := a.log.With(slog.String("op", op))

	snap, err := a.store.Load(ctx)
	if err != nil {
		log.Error("failed to load store", sl.Err(err))
		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	var user *models.User
	for i := range snap.Users {
		if snap.Users[i].Email == email && snap.Users[i].Password == password {
			user = &snap.Users[i]
			break
		}
	}

	if user == nil {
		log.Info("invalid credentials")
		return models.Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !user.Verified {
		log.Info("email not verified")
		return models.Identity{}, fmt.Errorf("%s: %w", op, ErrNotVerified)
	}

	log.Info("user logged in successfully", slog.String("role", string(user.Role)))

	return models.Identity{Email: user.Email, Role: user.Role}, nil
}

// RequestPasswordReset stores a new reset token, replacing any outstanding one, and mails the reset link.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	const op = "auth.RequestPasswordReset"

	log := a.log.With(slog.String("op", op))

	snap, err := a.store.Load(ctx)
	if err != nil {
		log.Error("failed to load store", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	user := snap.UserByEmail(email)
	if user == nil {
		log.Info("user not found")
		return fmt.Errorf("%s: %w", op, ErrUnknownUser)
	}

	token, err := a.newToken()
	if err != nil {
		log.Error("failed to generate reset token", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.publisher.SendMessage(ctx, verification.ResetMail(a.publicURL, email, token)); err != nil {
		log.Error("failed to send reset email", sl.Err(err))
		return fmt.Errorf("%s: %w: %w", op, ErrNotificationFailure, err)
	}

	user.ResetToken = &token

	if err := a.store.Save(ctx, snap); err != nil {
		log.Error("failed to save reset token", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("password reset requested")

	return nil
}

// ResetPassword replaces the password when token matches the outstanding reset token.
func (a *Auth) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	const op = "auth.ResetPassword"

	log := a.log.With(slog.String("op", op))

	snap, err := a.store.Load(ctx)
	if err != nil {
		log.Error("failed to load store", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	user := snap.UserByEmail(email)
	if user == nil || !tokenMatches(user.ResetToken, token) {
		log.Warn("reset token does not match")
		return fmt.Errorf("%s: %w", op, ErrInvalidResetToken)
	}

	user.Password = newPassword
	user.ResetToken = nil

	if err := a.store.Save(ctx, snap); err != nil {
		log.Error("failed to save new password", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("password reset")

	return nil
}

// tokenMatches is false for a cleared token whatever is presented.
func tokenMatches(stored *string, presented string) bool {
	return stored != nil && *stored == presented
}
