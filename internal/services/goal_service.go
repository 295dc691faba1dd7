package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrNoActiveGoal        = errors.New("no active goal")
	ErrInvalidDeactivation = errors.New("at least one goal must be active")
	ErrInvalidGoalName     = errors.New("invalid goal name")
	ErrGoalNameTaken       = errors.New("goal name already in use")
)

const (
	defaultProfileSex    = models.SexMale
	defaultProfileAge    = 30
	maxGoalNameLength    = 100
	macroTargetPrecision = 2
)

type GoalUserRepository interface {
	FindByID(userID uint) (models.User, error)
}

type GoalRepository interface {
	ListByUser(userID uint) ([]models.UserGoal, error)
	FindByID(goalID uint) (models.UserGoal, error)
	FindActiveByUser(userID uint) (models.UserGoal, bool, error)
	NameTaken(userID uint, name string, exceptGoalID uint) (bool, error)
	SaveDraft(draft models.GoalDraft) (models.UserGoal, error)
	ApplyChanges(userID uint, goalID uint, changes models.GoalChanges) (models.UserGoal, error)
}

type TemplateMatcher interface {
	Match(criteria TemplateCriteria) (models.GoalTemplate, error)
}

// GoalPatch is a user-supplied partial update. Nil fields are left alone.
type GoalPatch struct {
	Name     *string
	Calories *int
	IsActive *bool
}

type GoalService struct {
	users   GoalUserRepository
	goals   GoalRepository
	matcher TemplateMatcher
}

func NewGoalService(users GoalUserRepository, goals GoalRepository, matcher TemplateMatcher) *GoalService {
	return &GoalService{
		users:   users,
		goals:   goals,
		matcher: matcher,
	}
}

// Generate derives a goal from the user's profile and the best matching
// template, and saves it under the template's name. Running it again with an
// unchanged profile rewrites the same values.
func (service *GoalService) Generate(userID uint) (models.UserGoal, error) {
	user, err := service.loadUser(userID)
	if err != nil {
		return models.UserGoal{}, err
	}

	criteria := TemplateCriteria{
		Sex:         defaultProfileSex,
		IsPregnant:  user.IsPregnant,
		IsLactating: user.IsLactating,
		Age:         defaultProfileAge,
	}
	if user.Sex != nil {
		criteria.Sex = *user.Sex
	}
	if user.Age != nil {
		criteria.Age = *user.Age
	}

	template, err := service.matcher.Match(criteria)
	if err != nil {
		return models.UserGoal{}, err
	}

	calories := template.DefaultCalories
	profile := ProfileFromUser(user)
	if profile.Complete() {
		calories = int(math.Round(CalculateCalories(profile)))
	}
	calories = min(calories, models.MaxGoalCalories)

	name := template.Name
	if user.Sex == nil {
		name = models.FallbackGoalName
	}

	targets := make([]models.NutrientTarget, 0, len(template.Nutrients))
	for _, recommended := range template.Nutrients {
		targets = append(targets, models.NutrientTarget{
			NutrientID: recommended.NutrientID,
			Value:      recommended.RecommendedValue,
		})
	}

	return service.goals.SaveDraft(models.GoalDraft{
		UserID:     userID,
		TemplateID: template.ID,
		Name:       name,
		Calories:   calories,
		Targets:    targets,
		MacroGrams: macroGrams(float64(calories), criteria.Age),
	})
}

// Update applies patch to a goal owned by userID. Deactivation is never
// accepted directly; a goal only becomes inactive when another one is
// activated.
func (service *GoalService) Update(userID uint, goalID uint, patch GoalPatch) (models.UserGoal, error) {
	if patch.IsActive != nil && !*patch.IsActive {
		return models.UserGoal{}, ErrInvalidDeactivation
	}

	goal, err := service.Get(userID, goalID)
	if err != nil {
		return models.UserGoal{}, err
	}

	changes := models.GoalChanges{Activate: patch.IsActive != nil && *patch.IsActive}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" || utf8.RuneCountInString(name) > maxGoalNameLength {
			return models.UserGoal{}, ErrInvalidGoalName
		}
		if name != goal.Name {
			taken, err := service.goals.NameTaken(userID, name, goal.ID)
			if err != nil {
				return models.UserGoal{}, err
			}
			if taken {
				return models.UserGoal{}, ErrGoalNameTaken
			}
		}
		changes.Name = &name
	}

	if patch.Calories != nil {
		calories := *patch.Calories
		if calories < 0 || calories > models.MaxGoalCalories {
			return models.UserGoal{}, fmt.Errorf("%w: calories must be between 0 and %d", ErrValidationRange, models.MaxGoalCalories)
		}
		changes.Calories = &calories

		owner, err := service.loadUser(userID)
		if err != nil {
			return models.UserGoal{}, err
		}
		if owner.Age != nil {
			changes.MacroGrams = macroGrams(float64(calories), *owner.Age)
		}
	}

	return service.goals.ApplyChanges(userID, goal.ID, changes)
}

func (service *GoalService) List(userID uint) ([]models.UserGoal, error) {
	return service.goals.ListByUser(userID)
}

func (service *GoalService) Active(userID uint) (models.UserGoal, error) {
	goal, found, err := service.goals.FindActiveByUser(userID)
	if err != nil {
		return models.UserGoal{}, err
	}
	if !found {
		return models.UserGoal{}, ErrNoActiveGoal
	}
	return goal, nil
}

func (service *GoalService) Get(userID uint, goalID uint) (models.UserGoal, error) {
	goal, err := service.goals.FindByID(goalID)
	if isNotFound(err) {
		return models.UserGoal{}, ErrGoalNotFound
	}
	if err != nil {
		return models.UserGoal{}, err
	}
	if goal.UserID != userID {
		return models.UserGoal{}, ErrOwnershipViolation
	}
	return goal, nil
}

func (service *GoalService) loadUser(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if isNotFound(err) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// macroGrams splits calories into Fat/Carbohydrate/Protein gram targets
// keyed by nutrient name.
func macroGrams(calories float64, age int) map[string]float64 {
	macros := CalculateMacronutrients(calories, age)
	return map[string]float64{
		models.NutrientFat:          roundTo(macros.Fat, macroTargetPrecision),
		models.NutrientCarbohydrate: roundTo(macros.Carbohydrate, macroTargetPrecision),
		models.NutrientProtein:      roundTo(macros.Protein, macroTargetPrecision),
	}
}
