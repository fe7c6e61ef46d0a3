// Package app реализует прикладные операции StudentHub.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"studenthub/internal/domain/entities"
	"studenthub/internal/domain/services"
	"studenthub/internal/ports/api"
	"studenthub/internal/ports/repositories"
	svc "studenthub/internal/ports/services"
	"studenthub/pkg/logger"
)

const (
	methodRegister       = "Register"
	methodLogin          = "Login"
	methodChangePassword = "ChangePassword"
	methodIssueSession   = "issueSession"

	msgStartRegistration   = "starting user registration"
	msgInvalidEmailFormat  = "invalid email format"
	msgInvalidPassword     = "invalid password"
	msgInvalidRole         = "invalid role provided"
	msgInvalidYearValue    = "invalid year provided"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgSessionIssued       = "authentication token issued"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgChangingPassword    = "changing user password"
	msgPasswordChanged     = "password changed successfully"

	msgErrCheckExistingUser   = "failed to check existing user"
	msgErrHashPassword        = "failed to hash password"
	msgErrCreateUser          = "failed to create user"
	msgErrIssueSession        = "failed to issue authentication token"
	msgErrFindingUser         = "error finding user by email"
	msgErrVerifyingPassword   = "error verifying password"
	msgErrUpdatePasswordHash  = "failed to update password hash"
	msgErrGenerateAccessToken = "failed to generate access token"

	errCtxValidatingEmail       = "validating email"
	errCtxValidatingPassword    = "validating password"
	errCtxValidatingRole        = "validating role"
	errCtxValidatingYear        = "validating year"
	errCtxCheckingUser          = "checking existing user"
	errCtxEmailRegistered       = "email already registered"
	errCtxHashingPassword       = "hashing password"
	errCtxCreatingUser          = "creating user"
	errCtxIssuingSession        = "issuing session"
	errCtxInvalidCredentials    = "invalid credentials"
	errCtxFindingUser           = "finding user"
	errCtxVerifyingPassword     = "verifying password"
	errCtxUpdatingPasswordHash  = "updating password hash"
	errCtxGeneratingAccessToken = "generating access token"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя с предоставленными учетными данными.
func (a *AuthUseCaseImpl) Register(ctx context.Context, input *api.RegisterInput) (*api.AuthResult, error) {
	email := entities.NormalizeEmail(input.Email)

	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if err := validateEmail(email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}
	if err := validatePassword(input.Password); err != nil {
		log.Debug(ctx, msgInvalidPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}

	role := input.Role
	if role == "" {
		role = entities.RoleStudent
	}
	if !role.IsValid() {
		log.Debug(ctx, msgInvalidRole, zap.String("role", string(role)))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRole, entities.ErrInvalidRole)
	}

	if input.Profile.Year != 0 && (input.Profile.Year < 1 || input.Profile.Year > 4) {
		log.Debug(ctx, msgInvalidYearValue, zap.Int("year", input.Profile.Year))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingYear, entities.ErrInvalidYear)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		Profile:      input.Profile,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	session, err := a.issueSession(ctx, createdUser)
	if err != nil {
		log.Error(ctx, msgErrIssueSession, zap.Error(err), zap.String("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingSession, err)
	}

	log.Info(ctx, msgSessionIssued, zap.String("userID", createdUser.ID))
	return &api.AuthResult{Session: session, User: createdUser}, nil
}

// Login аутентифицирует пользователя по email и паролю.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	email = entities.NormalizeEmail(email)

	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	session, err := a.issueSession(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrIssueSession, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingSession, err)
	}

	return &api.AuthResult{Session: session, User: user}, nil
}

// ChangePassword меняет пароль пользователя. Хэш пересчитывается только здесь
// и только после успешной проверки текущего пароля.
func (a *AuthUseCaseImpl) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	log := logger.Log(ctx).With(zap.String("method", methodChangePassword), zap.String("userID", userID))
	log.Debug(ctx, msgChangingPassword)

	if userID == "" {
		return fmt.Errorf("%s: %w", errCtxFindingUser, entities.ErrEmptyUserID)
	}
	if err := validatePassword(newPassword); err != nil {
		log.Debug(ctx, msgInvalidPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, currentPassword, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth)
		return fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, newPassword)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	if err := a.userRepo.UpdatePasswordHash(ctx, userID, hashedPassword); err != nil {
		log.Error(ctx, msgErrUpdatePasswordHash, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxUpdatingPasswordHash, err)
	}

	log.Info(ctx, msgPasswordChanged)
	return nil
}

// Вспомогательная функция для выпуска токена доступа.
func (a *AuthUseCaseImpl) issueSession(ctx context.Context, user *entities.User) (*services.AuthSession, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssueSession),
		zap.String("userID", user.ID),
	)

	accessToken, expiresAt, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID, string(user.Role))
	if err != nil {
		log.Error(ctx, msgErrGenerateAccessToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingAccessToken, services.ErrTokenGenerationFailed)
	}

	return &services.AuthSession{
		UserID:      user.ID,
		Role:        string(user.Role),
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// Валидация email.
func validateEmail(email string) error {
	if email == "" {
		return entities.ErrInvalidEmail
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}

	return nil
}

// Валидация пароля.
func validatePassword(password string) error {
	if len(password) < services.MinPasswordLength {
		return entities.ErrPasswordTooShort
	}

	return nil
}
