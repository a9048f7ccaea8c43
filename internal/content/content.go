// Package content holds the résumé copy shown on the site.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var embeddedProfile []byte

type Metric struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type Experience struct {
	Title      string   `yaml:"title"`
	Company    string   `yaml:"company"`
	Duration   string   `yaml:"duration"`
	Highlights []string `yaml:"highlights"`
}

type SkillGroup struct {
	Category string   `yaml:"category"`
	Skills   []string `yaml:"skills"`
}

type Proficiency struct {
	Skill string `yaml:"skill" json:"skill"`
	Level int    `yaml:"level" json:"level"`
}

type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Impact       string   `yaml:"impact"`
}

type Contact struct {
	Intro        string   `yaml:"intro"`
	Email        string   `yaml:"email"`
	LinkedIn     string   `yaml:"linkedin"`
	GitHub       string   `yaml:"github"`
	Availability []string `yaml:"availability"`
}

// Profile is everything the pages render.
type Profile struct {
	Name        string        `yaml:"name"`
	Headline    string        `yaml:"headline"`
	Initials    string        `yaml:"initials"`
	Location    string        `yaml:"location"`
	Footer      string        `yaml:"footer"`
	About       []string      `yaml:"about"`
	Metrics     []Metric      `yaml:"metrics"`
	Experience  []Experience  `yaml:"experience"`
	SkillGroups []SkillGroup  `yaml:"skill_groups"`
	Proficiency []Proficiency `yaml:"proficiency"`
	Projects    []Project     `yaml:"projects"`
	Contact     Contact       `yaml:"contact"`
}

// Default returns the profile compiled into the binary.
func Default() (*Profile, error) {
	return Parse(embeddedProfile)
}

// Load reads a profile from path, or the embedded one when path is empty.
func Load(path string) (*Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML profile and checks the fields the layout depends on.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) validate() error {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is required")
	}
	if p.Initials == "" {
		p.Initials = initialsOf(p.Name)
	}
	for i, pr := range p.Proficiency {
		if pr.Level < 0 || pr.Level > 100 {
			errs = append(errs, fmt.Sprintf("proficiency[%d] %q: level %d outside 0-100", i, pr.Skill, pr.Level))
		}
	}
	if len(errs) > 0 {
		return errors.New("invalid content: " + strings.Join(errs, "; "))
	}
	return nil
}

// initialsOf takes the first letter of the first two words.
func initialsOf(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(w))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
