package models_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savanth/folio/pkg/models"
)

func validSkill() models.Skill {
	return models.Skill{
		ID:         models.NewSkillID(),
		OwnerID:    models.NewUserID(),
		Name:       "Go",
		Category:   models.SkillCategoryBackend,
		Percentage: 90,
	}
}

func TestValidateSkill(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, models.Validate(validSkill()))
	})

	t.Run("PercentageAboveRange", func(t *testing.T) {
		s := validSkill()
		s.Percentage = 150

		err := models.Validate(s)
		require.Error(t, err)

		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "percentage", verr.Fields[0].Field)
		assert.Equal(t, "must be at most 100", verr.Fields[0].Message)
	})

	t.Run("PercentageNegative", func(t *testing.T) {
		s := validSkill()
		s.Percentage = -1
		var verr *models.ValidationError
		require.ErrorAs(t, models.Validate(s), &verr)
		assert.Equal(t, "percentage", verr.Fields[0].Field)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		s := validSkill()
		s.Category = "devops"
		var verr *models.ValidationError
		require.ErrorAs(t, models.Validate(s), &verr)
		assert.Equal(t, "category", verr.Fields[0].Field)
	})

	t.Run("FirstViolationSurfaced", func(t *testing.T) {
		s := validSkill()
		s.Name = ""
		s.Percentage = 150

		err := models.Validate(s)
		require.Error(t, err)
		assert.Equal(t, "name is required", err.Error())

		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
	})
}

func TestValidateProject(t *testing.T) {
	t.Run("TitleRequired", func(t *testing.T) {
		p := models.Project{Description: "no title"}
		var verr *models.ValidationError
		require.ErrorAs(t, models.Validate(p), &verr)
		assert.Equal(t, "title", verr.Fields[0].Field)
	})

	t.Run("BadGithubURL", func(t *testing.T) {
		p := models.Project{Title: "Folio", GithubURL: "not a url"}
		var verr *models.ValidationError
		require.ErrorAs(t, models.Validate(p), &verr)
		assert.Equal(t, "github_url", verr.Fields[0].Field)
		assert.Equal(t, "must be a valid URL", verr.Fields[0].Message)
	})

	t.Run("OptionalURLsMayBeEmpty", func(t *testing.T) {
		assert.NoError(t, models.Validate(models.Project{Title: "Folio"}))
	})
}

func TestValidateContactMessage(t *testing.T) {
	msg := models.ContactMessage{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Hello",
	}
	assert.NoError(t, models.Validate(msg))

	msg.Email = "not-an-email"
	var verr *models.ValidationError
	require.ErrorAs(t, models.Validate(msg), &verr)
	assert.Equal(t, "email", verr.Fields[0].Field)
}

func TestValidateNonStruct(t *testing.T) {
	err := models.Validate(42)
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*models.ValidationError)))
}

func TestProfileCategoryOrderFallback(t *testing.T) {
	var p *models.Profile
	assert.Equal(t, models.DefaultCategoryOrder(), p.CategoryOrder())

	p = &models.Profile{}
	assert.Equal(t, models.DefaultCategoryOrder(), p.CategoryOrder())

	p.SkillCategoryOrder = models.CategoryList{models.SkillCategoryTools, models.SkillCategoryBackend}
	assert.Equal(t, []models.SkillCategory{models.SkillCategoryTools, models.SkillCategoryBackend}, p.CategoryOrder())
}
