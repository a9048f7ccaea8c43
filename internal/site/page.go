package site

import (
	"context"
	"fmt"

	"github.com/akshaysalvi/portfolio/internal/content"
	"github.com/akshaysalvi/portfolio/internal/portrait"
)

// Source supplies the list data for sections.
type Source interface {
	Experience(ctx context.Context) ([]content.Experience, error)
	SkillGroups(ctx context.Context) ([]content.SkillGroup, error)
	Proficiency(ctx context.Context) ([]content.Proficiency, error)
	Projects(ctx context.Context) ([]content.Project, error)
}

// Page is the view model for one render. Only the fields belonging to
// Section are filled.
type Page struct {
	Profile  *content.Profile
	Section  Section
	Nav      []NavItem
	Portrait portrait.Portrait

	Experience  []content.Experience
	SkillGroups []content.SkillGroup
	Chart       Chart
	Projects    []content.Project
	Contact     ContactResult
}

// Render builds the page for section. The selected section is passed in
// explicitly; nothing is remembered between renders.
func Render(ctx context.Context, src Source, profile *content.Profile, section Section, pic portrait.Portrait) (*Page, error) {
	if !section.valid() {
		section = About
	}
	page := &Page{
		Profile:  profile,
		Section:  section,
		Nav:      Nav(section),
		Portrait: pic,
	}

	var err error
	switch section {
	case Experience:
		page.Experience, err = src.Experience(ctx)
	case Skills:
		page.SkillGroups, err = src.SkillGroups(ctx)
		if err == nil {
			var rows []content.Proficiency
			rows, err = src.Proficiency(ctx)
			page.Chart = ProficiencyChart(rows)
		}
	case Projects:
		page.Projects, err = src.Projects(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", section, err)
	}
	return page, nil
}
