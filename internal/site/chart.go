package site

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/akshaysalvi/portfolio/internal/content"
)

// blues is the sequential "Blues" scale, light to dark, evenly spaced.
var blues = [][3]uint8{
	{247, 251, 255},
	{222, 235, 247},
	{198, 219, 239},
	{158, 202, 225},
	{107, 174, 214},
	{66, 146, 198},
	{33, 113, 181},
	{8, 81, 156},
	{8, 48, 107},
}

// Bar is one horizontal bar of the proficiency chart.
type Bar struct {
	Skill string `json:"skill"`
	Level int    `json:"level"`
	// Width is the bar length as a percentage of the 0-100 axis.
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// Chart is the skills proficiency chart.
type Chart struct {
	Title string `json:"title"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Bars  []Bar  `json:"bars"`
}

// ProficiencyChart lays out one bar per skill in input order, colored on the
// Blues scale between the lowest and highest level.
func ProficiencyChart(rows []content.Proficiency) Chart {
	chart := Chart{Title: "Skills Proficiency", Bars: []Bar{}}
	if len(rows) == 0 {
		return chart
	}

	levels := lo.Map(rows, func(p content.Proficiency, _ int) int { return p.Level })
	chart.Min = lo.Min(levels)
	chart.Max = lo.Max(levels)

	chart.Bars = lo.Map(rows, func(p content.Proficiency, _ int) Bar {
		return Bar{
			Skill: p.Skill,
			Level: p.Level,
			Width: math.Max(0, math.Min(100, float64(p.Level))),
			Color: scaleColor(normalize(p.Level, chart.Min, chart.Max)),
		}
	})
	return chart
}

func normalize(v, low, high int) float64 {
	if high == low {
		return 0.5
	}
	return float64(v-low) / float64(high-low)
}

// scaleColor interpolates the Blues scale at t in [0, 1].
func scaleColor(t float64) string {
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(blues)-1)
	i := int(math.Floor(pos))
	if i >= len(blues)-1 {
		c := blues[len(blues)-1]
		return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
	}
	frac := pos - float64(i)
	a, b := blues[i], blues[i+1]
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(a[0], b[0]), mix(a[1], b[1]), mix(a[2], b[2]))
}
