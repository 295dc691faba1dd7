package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/nutrigoal/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidPassword = errors.New("current password is incorrect")
	ErrPasswordReused  = errors.New("new password must differ from the current one")
)

type AuthUserRepository interface {
	CountUsers() (int64, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
	now   func() time.Time
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, now: time.Now}
}

// Register creates an account. The first account on an instance becomes the
// admin that curates reference data.
func (service *AuthService) Register(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	count, err := service.users.CountUsers()
	if err != nil {
		return models.User{}, err
	}
	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    service.now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate returns ErrAuthCredentialsInvalid for both unknown emails and
// wrong passwords.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if isNotFound(err) {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if isNotFound(err) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// ChangePassword replaces the password after checking the current one.
func (service *AuthService) ChangePassword(userID uint, currentPassword string, newPassword string) error {
	user, err := service.FindByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidPassword
	}
	if currentPassword == newPassword {
		return ErrPasswordReused
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(userID, string(hash))
}
