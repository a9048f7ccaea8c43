// Package site builds the view models for the portfolio pages.
package site

import (
	"strings"

	"github.com/samber/lo"
)

// Section is the part of the page being shown. The zero value is About.
type Section int

const (
	About Section = iota
	Experience
	Skills
	Projects
	Contact
)

var sectionNames = []string{"about", "experience", "skills", "projects", "contact"}

var sectionTitles = []string{
	"About Me",
	"Professional Experience",
	"Technical Skills",
	"Featured Projects",
	"Get In Touch",
}

var sectionLabels = []string{"About", "Experience", "Skills", "Projects", "Contact"}

// Sections lists every section in navigation order.
func Sections() []Section {
	return []Section{About, Experience, Skills, Projects, Contact}
}

// ParseSection maps a path segment to a Section, defaulting to About.
func ParseSection(name string) Section {
	_, idx, ok := lo.FindIndexOf(sectionNames, func(n string) bool {
		return n == strings.ToLower(strings.TrimSpace(name))
	})
	if !ok {
		return About
	}
	return Section(idx)
}

func (s Section) valid() bool { return s >= About && s <= Contact }

// Slug is the URL path segment, e.g. "skills".
func (s Section) Slug() string {
	if !s.valid() {
		return sectionNames[About]
	}
	return sectionNames[s]
}

// Title is the section heading.
func (s Section) Title() string {
	if !s.valid() {
		return sectionTitles[About]
	}
	return sectionTitles[s]
}

// Label is the navigation button text.
func (s Section) Label() string {
	if !s.valid() {
		return sectionLabels[About]
	}
	return sectionLabels[s]
}

func (s Section) String() string { return s.Slug() }

// NavItem is one navigation button.
type NavItem struct {
	Section Section
	Active  bool
}

// Nav returns the buttons with the current section marked.
func Nav(current Section) []NavItem {
	return lo.Map(Sections(), func(s Section, _ int) NavItem {
		return NavItem{Section: s, Active: s == current}
	})
}
