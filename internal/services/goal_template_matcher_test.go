package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/nutrigoal/internal/models"
)

type stubTemplateSource struct {
	templates []models.GoalTemplate
	err       error
}

func (stub *stubTemplateSource) ListMatching(sex string, isPregnant bool, isLactating bool, age int) ([]models.GoalTemplate, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	matched := make([]models.GoalTemplate, 0)
	for _, template := range stub.templates {
		if template.Sex == nil || *template.Sex != sex {
			continue
		}
		if template.IsPregnant != isPregnant || template.IsLactating != isLactating {
			continue
		}
		if age < template.AgeMin || age > template.AgeMax {
			continue
		}
		matched = append(matched, template)
	}
	return matched, nil
}

func templateFixture(id uint, name string, sex string, ageMin int, ageMax int) models.GoalTemplate {
	return models.GoalTemplate{ID: id, Name: name, Sex: stringPtr(sex), AgeMin: ageMin, AgeMax: ageMax, DefaultCalories: models.DefaultCalories}
}

func TestGoalTemplateMatcherMatchesInclusiveAgeBounds(t *testing.T) {
	matcher := NewGoalTemplateMatcher(&stubTemplateSource{templates: []models.GoalTemplate{
		templateFixture(1, "Female 19-30", models.SexFemale, 19, 30),
		templateFixture(2, "Female 31-50", models.SexFemale, 31, 50),
	}})

	for age, want := range map[int]string{19: "Female 19-30", 30: "Female 19-30", 31: "Female 31-50", 50: "Female 31-50"} {
		template, err := matcher.Match(TemplateCriteria{Sex: models.SexFemale, Age: age})
		if err != nil {
			t.Fatalf("Match(age=%d) unexpected error: %v", age, err)
		}
		if template.Name != want {
			t.Fatalf("Match(age=%d) = %q, want %q", age, template.Name, want)
		}
	}
}

func TestGoalTemplateMatcherPrefersNarrowestRangeThenLowestID(t *testing.T) {
	matcher := NewGoalTemplateMatcher(&stubTemplateSource{templates: []models.GoalTemplate{
		templateFixture(4, "Male any", models.SexMale, 0, 120),
		templateFixture(7, "Male 20-40 b", models.SexMale, 20, 40),
		templateFixture(5, "Male 20-40 a", models.SexMale, 20, 40),
	}})

	template, err := matcher.Match(TemplateCriteria{Sex: models.SexMale, Age: 30})
	if err != nil {
		t.Fatalf("Match() unexpected error: %v", err)
	}
	if template.ID != 5 {
		t.Fatalf("Match() picked template %d, want 5", template.ID)
	}
}

func TestGoalTemplateMatcherRequiresExactPregnancyFlags(t *testing.T) {
	pregnant := templateFixture(3, "Pregnant", models.SexFemale, 14, 50)
	pregnant.IsPregnant = true
	matcher := NewGoalTemplateMatcher(&stubTemplateSource{templates: []models.GoalTemplate{pregnant}})

	if _, err := matcher.Match(TemplateCriteria{Sex: models.SexFemale, Age: 30}); !errors.Is(err, ErrNoTemplateMatch) {
		t.Fatalf("expected ErrNoTemplateMatch for non-pregnant user, got %v", err)
	}

	template, err := matcher.Match(TemplateCriteria{Sex: models.SexFemale, IsPregnant: true, Age: 30})
	if err != nil {
		t.Fatalf("Match() unexpected error: %v", err)
	}
	if template.ID != 3 {
		t.Fatalf("Match() picked template %d, want 3", template.ID)
	}
}

func TestGoalTemplateMatcherPropagatesRepositoryError(t *testing.T) {
	want := errors.New("boom")
	matcher := NewGoalTemplateMatcher(&stubTemplateSource{err: want})

	if _, err := matcher.Match(TemplateCriteria{Sex: models.SexMale, Age: 30}); !errors.Is(err, want) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
