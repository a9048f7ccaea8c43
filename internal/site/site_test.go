package site

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshaysalvi/portfolio/internal/content"
	"github.com/akshaysalvi/portfolio/internal/portrait"
)

func TestParseSection(t *testing.T) {
	tests := map[string]Section{
		"about":      About,
		"Experience": Experience,
		" skills ":   Skills,
		"projects":   Projects,
		"CONTACT":    Contact,
		"":           About,
		"admin":      About,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseSection(in), "input %q", in)
	}
}

func TestSection_Names(t *testing.T) {
	assert.Equal(t, "skills", Skills.Slug())
	assert.Equal(t, "Technical Skills", Skills.Title())
	assert.Equal(t, "Contact", Contact.Label())
	assert.Equal(t, "about", Section(42).Slug())

	for _, s := range Sections() {
		assert.Equal(t, s, ParseSection(s.Slug()))
	}
}

func TestNav(t *testing.T) {
	nav := Nav(Projects)
	require.Len(t, nav, 5)
	for _, item := range nav {
		assert.Equal(t, item.Section == Projects, item.Active)
	}
}

func TestValidateContact(t *testing.T) {
	t.Run("all fields present", func(t *testing.T) {
		res := ValidateContact(ContactForm{Name: "A", Email: "a@b.c", Subject: "Hi", Message: "Hello"})
		assert.True(t, res.OK)
		assert.Equal(t, ContactSuccessMessage, res.Message)
		assert.Empty(t, res.Missing)
	})

	t.Run("email format is not checked", func(t *testing.T) {
		res := ValidateContact(ContactForm{Name: "A", Email: "not-an-email", Subject: "Hi", Message: "Hello"})
		assert.True(t, res.OK)
	})

	t.Run("missing and blank fields", func(t *testing.T) {
		res := ValidateContact(ContactForm{Name: "A", Email: "  ", Message: "Hello"})
		assert.False(t, res.OK)
		assert.Equal(t, ContactErrorMessage, res.Message)
		assert.ElementsMatch(t, []string{"email", "subject"}, res.Missing)
		assert.True(t, res.IsMissing("email"))
		assert.False(t, res.IsMissing("name"))
		assert.Equal(t, "A", res.Form.Name)
	})

	t.Run("empty form", func(t *testing.T) {
		res := ValidateContact(ContactForm{})
		assert.False(t, res.OK)
		assert.Len(t, res.Missing, 4)
	})
}

func TestProficiencyChart(t *testing.T) {
	chart := ProficiencyChart([]content.Proficiency{
		{Skill: "Python", Level: 95},
		{Skill: "Docker", Level: 70},
		{Skill: "SQL", Level: 90},
	})

	assert.Equal(t, 70, chart.Min)
	assert.Equal(t, 95, chart.Max)
	require.Len(t, chart.Bars, 3)
	assert.Equal(t, []string{"Python", "Docker", "SQL"}, []string{chart.Bars[0].Skill, chart.Bars[1].Skill, chart.Bars[2].Skill})
	assert.Equal(t, 95.0, chart.Bars[0].Width)
	assert.Equal(t, "#08306b", chart.Bars[0].Color, "highest level is darkest")
	assert.Equal(t, "#f7fbff", chart.Bars[1].Color, "lowest level is lightest")
}

func TestProficiencyChart_Edges(t *testing.T) {
	assert.Empty(t, ProficiencyChart(nil).Bars)

	single := ProficiencyChart([]content.Proficiency{{Skill: "Go", Level: 80}})
	require.Len(t, single.Bars, 1)
	assert.Equal(t, scaleColor(0.5), single.Bars[0].Color)
}

func TestScaleColor(t *testing.T) {
	assert.Equal(t, "#f7fbff", scaleColor(-1))
	assert.Equal(t, "#f7fbff", scaleColor(0))
	assert.Equal(t, "#08306b", scaleColor(1))
	assert.Equal(t, "#08306b", scaleColor(2))
	assert.Equal(t, "#6baed6", scaleColor(0.5))
}

type stubSource struct {
	calls []string
	err   error
}

func (s *stubSource) Experience(context.Context) ([]content.Experience, error) {
	s.calls = append(s.calls, "experience")
	return []content.Experience{{Title: "Data Engineer"}}, s.err
}

func (s *stubSource) SkillGroups(context.Context) ([]content.SkillGroup, error) {
	s.calls = append(s.calls, "skills")
	return []content.SkillGroup{{Category: "Databases"}}, s.err
}

func (s *stubSource) Proficiency(context.Context) ([]content.Proficiency, error) {
	s.calls = append(s.calls, "proficiency")
	return []content.Proficiency{{Skill: "SQL", Level: 90}}, s.err
}

func (s *stubSource) Projects(context.Context) ([]content.Project, error) {
	s.calls = append(s.calls, "projects")
	return []content.Project{{Title: "ML Pipeline Automation"}}, s.err
}

func TestRender_OnlyLoadsSelectedSection(t *testing.T) {
	ctx := context.Background()
	profile := &content.Profile{Name: "Akshay Salvi"}
	pic := portrait.Portrait{Kind: portrait.KindInline, Initials: "AS"}

	tests := []struct {
		section Section
		calls   []string
	}{
		{About, nil},
		{Experience, []string{"experience"}},
		{Skills, []string{"skills", "proficiency"}},
		{Projects, []string{"projects"}},
		{Contact, nil},
	}
	for _, tt := range tests {
		t.Run(tt.section.Slug(), func(t *testing.T) {
			src := &stubSource{}
			page, err := Render(ctx, src, profile, tt.section, pic)
			require.NoError(t, err)
			assert.Equal(t, tt.section, page.Section)
			assert.Equal(t, tt.calls, src.calls)
			assert.Equal(t, pic, page.Portrait)
		})
	}

	page, err := Render(ctx, &stubSource{}, profile, Skills, pic)
	require.NoError(t, err)
	require.Len(t, page.Chart.Bars, 1)
	assert.Equal(t, "SQL", page.Chart.Bars[0].Skill)
}

func TestRender_SourceError(t *testing.T) {
	boom := errors.New("catalog closed")
	_, err := Render(context.Background(), &stubSource{err: boom}, &content.Profile{}, Projects, portrait.Portrait{})
	assert.ErrorIs(t, err, boom)
}
