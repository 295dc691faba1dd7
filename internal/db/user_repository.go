package db

import (
	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) CountUsers() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdateRole(userID uint, role string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

// SaveProfile writes every biometric column, including nils, so a cleared
// field is persisted as NULL.
func (repo *UserRepository) SaveProfile(user *models.User) error {
	return repo.database.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"age":            user.Age,
		"weight_kg":      user.WeightKg,
		"height_cm":      user.HeightCm,
		"sex":            user.Sex,
		"is_pregnant":    user.IsPregnant,
		"is_lactating":   user.IsLactating,
		"activity_level": user.ActivityLevel,
		"diet_goal":      user.DietGoal,
	}).Error
}

// DeleteAccount relies on ON DELETE CASCADE for goals, custom items,
// combined items, favorites and consumption rows.
func (repo *UserRepository) DeleteAccount(userID uint) error {
	return repo.database.Delete(&models.User{}, userID).Error
}
