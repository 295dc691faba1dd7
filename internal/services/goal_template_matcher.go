package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

var ErrNoTemplateMatch = errors.New("no goal template matches the user profile")

type GoalTemplateSource interface {
	ListMatching(sex string, isPregnant bool, isLactating bool, age int) ([]models.GoalTemplate, error)
}

// TemplateCriteria are the demographic keys a template is selected by.
type TemplateCriteria struct {
	Sex         string
	IsPregnant  bool
	IsLactating bool
	Age         int
}

type GoalTemplateMatcher struct {
	templates GoalTemplateSource
}

func NewGoalTemplateMatcher(templates GoalTemplateSource) *GoalTemplateMatcher {
	return &GoalTemplateMatcher{templates: templates}
}

// Match picks the template for criteria. When curated ranges overlap the
// narrowest age range wins and ties go to the lowest id.
func (matcher *GoalTemplateMatcher) Match(criteria TemplateCriteria) (models.GoalTemplate, error) {
	candidates, err := matcher.templates.ListMatching(criteria.Sex, criteria.IsPregnant, criteria.IsLactating, criteria.Age)
	if err != nil {
		return models.GoalTemplate{}, err
	}
	if len(candidates) == 0 {
		return models.GoalTemplate{}, fmt.Errorf(
			"%w: sex=%s pregnant=%t lactating=%t age=%d",
			ErrNoTemplateMatch, criteria.Sex, criteria.IsPregnant, criteria.IsLactating, criteria.Age,
		)
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if narrowerTemplate(candidate, best) {
			best = candidate
		}
	}
	return best, nil
}

func narrowerTemplate(candidate models.GoalTemplate, current models.GoalTemplate) bool {
	candidateSpan := candidate.AgeMax - candidate.AgeMin
	currentSpan := current.AgeMax - current.AgeMin
	if candidateSpan != currentSpan {
		return candidateSpan < currentSpan
	}
	return candidate.ID < current.ID
}
