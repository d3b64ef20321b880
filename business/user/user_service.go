package user

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"myFoodMarket/domain"
	"myFoodMarket/pkg/logger"
	"myFoodMarket/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddPoints(ctx context.Context, id uuid.UUID, points int) (domain.User, error)
	UpdateEmailVerification(ctx context.Context, id uuid.UUID, verified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	Configured() bool
	SendEmail(toName, toEmail, subject, message string) error
}

type userService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	notifRepo               NotificationRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

const (
	verificationCodeTTLMinutes = 30
	subjectVerifyAccount       = "Verify your MyFoodMarket account"
	emailBodyVerifyAccount     = `Hola %v, verifica tu correo abriendo el siguiente enlace</br></br>%v</br>nota: el enlace expira en %v minutos`
)

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		validate:                validate,
		notifRepo:               notifRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           *string
}

type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	AvatarURL *string
}

// Register creates a new account and returns it with a fresh token. All
// validation happens before any persistence write.
func (s *userService) Register(ctx context.Context, input RegisterInput) (domain.User, string, error) {
	if err := s.validate.Var(input.Email, "required,email"); err != nil {
		return domain.User{}, "", fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}

	if input.Password != input.ConfirmPassword {
		return domain.User{}, "", fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}

	if len(input.Password) < 8 {
		return domain.User{}, "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	if input.FirstName == "" || input.LastName == "" {
		return domain.User{}, "", fmt.Errorf("%w: first name and last name are required", domain.ErrValidation)
	}

	email := strings.ToLower(input.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing.ID != uuid.Nil {
		return domain.User{}, "", fmt.Errorf("%w: a user with this email already exists", domain.ErrConflict)
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := domain.User{
		Email:           email,
		PasswordHash:    passwordHash,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		MembershipLevel: domain.MembershipSilver,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, "", err
	}

	token, err := utils.GenerateJWT(newUser.ID)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return domain.User{}, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.sendVerificationEmail(newUser)

	return newUser, token, nil
}

func (s *userService) sendVerificationEmail(user domain.User) {
	if !s.notifRepo.Configured() || s.appEmailVerificationKey == "" {
		logger.Warn("Mailer not configured, skipping verification email", "email", user.Email)
		return
	}

	expAt := time.Now().Add(verificationCodeTTLMinutes * time.Minute).Unix()
	verificationCode := fmt.Sprintf("%v|%v", user.Email, expAt)

	encrypted, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("Failed to encrypt verification code", err)
		return
	}

	code := goshortcute.StringtoBase64Encode(encrypted)
	link := s.appDeploymentUrl + "/api/users/email-verification/" + code

	err = s.notifRepo.SendEmail(user.FirstName, user.Email, subjectVerifyAccount,
		fmt.Sprintf(emailBodyVerifyAccount, user.FirstName, link, verificationCodeTTLMinutes))
	if err != nil {
		logger.Warn("Failed to send verification email", err)
	}
}

// Login checks credentials and issues a 7-day token. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", domain.User{}, fmt.Errorf("%w: incorrect email or password", domain.ErrUnauthorized)
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return "", domain.User{}, fmt.Errorf("%w: incorrect email or password", domain.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}

	if update.LastName != nil {
		user.LastName = *update.LastName
	}

	if update.Phone != nil {
		user.Phone = update.Phone
	}

	if update.AvatarURL != nil {
		user.AvatarURL = update.AvatarURL
	}

	if err := s.userRepo.Update(ctx, &user); err != nil {
		logger.Error("Failed to update user profile", err)
		return domain.User{}, err
	}

	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword, confirmPassword string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(currentPassword, user.PasswordHash) {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrUnauthorized)
	}

	if newPassword != confirmPassword {
		return fmt.Errorf("%w: new passwords do not match", domain.ErrValidation)
	}

	if len(newPassword) < 8 {
		return fmt.Errorf("%w: new password must be at least 8 characters", domain.ErrValidation)
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	return s.userRepo.Update(ctx, &user)
}

func (s *userService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}

// VerifyEmail resolves an emailed verification code back to a user and flips
// the verified flag. The code is AES-CBC "email|expiry" from registration.
func (s *userService) VerifyEmail(ctx context.Context, encryptedCode string) error {
	decoded := goshortcute.StringtoBase64Decode(encryptedCode)
	decrypted, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(s.appEmailVerificationKey))
	if err != nil {
		return fmt.Errorf("%w: invalid or expired verification link", domain.ErrValidation)
	}

	parts := strings.Split(decrypted, "|")
	if len(parts) != 2 {
		return fmt.Errorf("%w: invalid or expired verification link", domain.ErrValidation)
	}

	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Now().After(time.Unix(ts, 0)) {
		return fmt.Errorf("%w: invalid or expired verification link", domain.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(parts[0]))
	if err != nil {
		return err
	}

	if user.EmailVerified {
		return fmt.Errorf("%w: email already verified", domain.ErrConflict)
	}

	return s.userRepo.UpdateEmailVerification(ctx, user.ID, true)
}

func (s *userService) UpdateMembership(ctx context.Context, id uuid.UUID, level domain.MembershipLevel) (domain.User, error) {
	if !level.IsValid() {
		return domain.User{}, fmt.Errorf("%w: invalid membership level", domain.ErrValidation)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.MembershipLevel = level
	if err := s.userRepo.Update(ctx, &user); err != nil {
		logger.Error("Failed to update membership", err)
		return domain.User{}, err
	}

	return user, nil
}

func (s *userService) GetPoints(ctx context.Context, id uuid.UUID) (int, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	return user.Points, nil
}

func (s *userService) AddPoints(ctx context.Context, id uuid.UUID, points int) (domain.User, error) {
	if points <= 0 {
		return domain.User{}, fmt.Errorf("%w: points must be positive", domain.ErrValidation)
	}

	return s.userRepo.AddPoints(ctx, id, points)
}
