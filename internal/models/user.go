package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	SexMale   = "Male"
	SexFemale = "Female"
)

const (
	ActivitySedentary        = "Sedentary"
	ActivityLightlyActive    = "Lightly Active"
	ActivityModeratelyActive = "Moderately Active"
	ActivityVeryActive       = "Very Active"
	ActivityExtremelyActive  = "Extremely Active"
)

const (
	DietGoalLoseWeight     = "Lose Weight"
	DietGoalMaintainWeight = "Maintain Weight"
	DietGoalGainWeight     = "Gain Weight"
)

// User owns the biometric profile consumed by goal generation. Every profile
// field is optional; generation substitutes defaults for the missing ones.
type User struct {
	ID            uint      `gorm:"primaryKey"`
	Email         string    `gorm:"uniqueIndex;not null"`
	PasswordHash  string    `gorm:"not null"`
	Role          string    `gorm:"not null;default:user"`
	Age           *int      `gorm:"column:age"`
	WeightKg      *float64  `gorm:"column:weight_kg"`
	HeightCm      *float64  `gorm:"column:height_cm"`
	Sex           *string   `gorm:"column:sex"`
	IsPregnant    bool      `gorm:"not null;default:false"`
	IsLactating   bool      `gorm:"not null;default:false"`
	ActivityLevel *string   `gorm:"column:activity_level"`
	DietGoal      *string   `gorm:"column:diet_goal"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (user User) IsAdmin() bool {
	return user.Role == RoleAdmin
}
