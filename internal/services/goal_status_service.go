package services

import (
	"time"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

const (
	caloriesStatusName = "Calories"
	caloriesStatusUnit = "kcal"
)

// NutrientStatus compares one goal target with today's consumption. The
// calories row uses models.CaloriesNutrientID.
type NutrientStatus struct {
	NutrientID int     `json:"nutrient_id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Target     float64 `json:"target"`
	Consumed   float64 `json:"consumed"`
}

type ActiveGoalSource interface {
	Active(userID uint) (models.UserGoal, error)
}

type DailyConsumptionTotals interface {
	TotalCaloriesToday(userID uint, now time.Time) (float64, error)
	NutrientTotalsToday(userID uint, now time.Time) (map[uint]float64, error)
}

type GoalStatusService struct {
	goals       ActiveGoalSource
	consumption DailyConsumptionTotals
}

func NewGoalStatusService(goals ActiveGoalSource, consumption DailyConsumptionTotals) *GoalStatusService {
	return &GoalStatusService{goals: goals, consumption: consumption}
}

// Report lists calories first, then every nutrient of the active goal in
// stored order.
func (service *GoalStatusService) Report(userID uint, now time.Time) ([]NutrientStatus, error) {
	goal, err := service.goals.Active(userID)
	if err != nil {
		return nil, err
	}

	calories, err := service.consumption.TotalCaloriesToday(userID, now)
	if err != nil {
		return nil, err
	}
	totals, err := service.consumption.NutrientTotalsToday(userID, now)
	if err != nil {
		return nil, err
	}

	report := make([]NutrientStatus, 0, len(goal.Nutrients)+1)
	report = append(report, NutrientStatus{
		NutrientID: models.CaloriesNutrientID,
		Name:       caloriesStatusName,
		Unit:       caloriesStatusUnit,
		Target:     float64(goal.Calories),
		Consumed:   calories,
	})
	for _, target := range goal.Nutrients {
		report = append(report, NutrientStatus{
			NutrientID: int(target.NutrientID),
			Name:       target.Nutrient.Name,
			Unit:       target.Nutrient.Unit.Label(),
			Target:     target.TargetValue,
			Consumed:   totals[target.NutrientID],
		})
	}
	return report, nil
}
