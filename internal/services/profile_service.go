package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

var (
	ErrInvalidProfileValue       = errors.New("invalid profile value")
	ErrInvalidProfileCombination = errors.New("invalid profile combination")
)

const (
	maxProfileAge      = 120
	maxProfileWeightKg = 500
	maxProfileHeightCm = 275
)

var dietGoals = map[string]struct{}{
	models.DietGoalLoseWeight:     {},
	models.DietGoalMaintainWeight: {},
	models.DietGoalGainWeight:     {},
}

type ProfileUserRepository interface {
	FindByID(userID uint) (models.User, error)
	SaveProfile(user *models.User) error
}

// ProfileUpdate changes only the non-nil fields. An empty string clears Sex,
// ActivityLevel or DietGoal.
type ProfileUpdate struct {
	Age           *int
	WeightKg      *float64
	HeightCm      *float64
	Sex           *string
	IsPregnant    *bool
	IsLactating   *bool
	ActivityLevel *string
	DietGoal      *string
}

type ProfileService struct {
	users ProfileUserRepository
}

func NewProfileService(users ProfileUserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (service *ProfileService) Get(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if isNotFound(err) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (service *ProfileService) Update(userID uint, update ProfileUpdate) (models.User, error) {
	user, err := service.Get(userID)
	if err != nil {
		return models.User{}, err
	}

	if update.Age != nil {
		if *update.Age < 0 || *update.Age > maxProfileAge {
			return models.User{}, fmt.Errorf("%w: age must be between 0 and %d", ErrValidationRange, maxProfileAge)
		}
		user.Age = update.Age
	}
	if update.WeightKg != nil {
		if !withinRange(*update.WeightKg, maxProfileWeightKg) {
			return models.User{}, fmt.Errorf("%w: weight must be between 0 and %d kg", ErrValidationRange, maxProfileWeightKg)
		}
		user.WeightKg = update.WeightKg
	}
	if update.HeightCm != nil {
		if !withinRange(*update.HeightCm, maxProfileHeightCm) {
			return models.User{}, fmt.Errorf("%w: height must be between 0 and %d cm", ErrValidationRange, maxProfileHeightCm)
		}
		user.HeightCm = update.HeightCm
	}

	if update.Sex != nil {
		sex, err := normalizeChoice(*update.Sex, "sex", func(value string) bool {
			return value == models.SexMale || value == models.SexFemale
		})
		if err != nil {
			return models.User{}, err
		}
		user.Sex = sex
	}
	if update.ActivityLevel != nil {
		activity, err := normalizeChoice(*update.ActivityLevel, "activity level", func(value string) bool {
			_, ok := activityMultipliers[value]
			return ok
		})
		if err != nil {
			return models.User{}, err
		}
		user.ActivityLevel = activity
	}
	if update.DietGoal != nil {
		goal, err := normalizeChoice(*update.DietGoal, "diet goal", func(value string) bool {
			_, ok := dietGoals[value]
			return ok
		})
		if err != nil {
			return models.User{}, err
		}
		user.DietGoal = goal
	}

	if update.IsPregnant != nil {
		user.IsPregnant = *update.IsPregnant
	}
	if update.IsLactating != nil {
		user.IsLactating = *update.IsLactating
	}
	if err := validateReproductiveStatus(user); err != nil {
		return models.User{}, err
	}

	if err := service.users.SaveProfile(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func withinRange(value float64, upper float64) bool {
	return !math.IsNaN(value) && value >= 0 && value <= upper
}

func normalizeChoice(raw string, field string, allowed func(string) bool) (*string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	if !allowed(value) {
		return nil, fmt.Errorf("%w: unknown %s %q", ErrInvalidProfileValue, field, value)
	}
	return &value, nil
}

func validateReproductiveStatus(user models.User) error {
	if user.IsPregnant && user.IsLactating {
		return fmt.Errorf("%w: cannot be both pregnant and lactating", ErrInvalidProfileCombination)
	}
	if user.Sex != nil && *user.Sex == models.SexMale && (user.IsPregnant || user.IsLactating) {
		return fmt.Errorf("%w: male profiles cannot be pregnant or lactating", ErrInvalidProfileCombination)
	}
	return nil
}
