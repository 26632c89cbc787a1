// server/catalog/catalog.go
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Sound struct {
	ID                 string   `yaml:"id" json:"id"`
	Name               string   `yaml:"name" json:"name"`
	Description        string   `yaml:"description" json:"description"`
	File               string   `yaml:"file" json:"file"`
	Duration           int      `yaml:"duration" json:"duration"`
	ThumbnailURL       string   `yaml:"thumbnail_url" json:"thumbnail_url"`
	BackgroundVideoURL string   `yaml:"background_video_url" json:"background_video_url"`
	Category           string   `yaml:"category" json:"category"`
	Tags               []string `yaml:"tags" json:"tags"`
}

type ThemeColors struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
	Accent    string `yaml:"accent" json:"accent"`
}

type Theme struct {
	ID              string      `yaml:"id" json:"id"`
	Name            string      `yaml:"name" json:"name"`
	Description     string      `yaml:"description" json:"description"`
	BackgroundVideo string      `yaml:"backgroundVideo" json:"backgroundVideo"`
	Colors          ThemeColors `yaml:"colors" json:"colors"`
	Particles       bool        `yaml:"particles" json:"particles"`
	Intensity       string      `yaml:"intensity" json:"intensity"`
}

type Phase struct {
	State    string `yaml:"state" json:"state"`
	Duration int    `yaml:"duration" json:"duration"`
}

type BreathingPattern struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Description   string   `yaml:"description" json:"description"`
	Pattern       []Phase  `yaml:"pattern" json:"pattern"`
	TotalDuration int      `yaml:"-" json:"totalDuration"`
	Difficulty    string   `yaml:"difficulty" json:"difficulty"`
	Benefits      []string `yaml:"benefits" json:"benefits"`
}

type Chime struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	File        string `yaml:"file" json:"file"`
	Duration    int    `yaml:"duration" json:"duration"`
	Frequency   string `yaml:"frequency" json:"frequency"`
	Category    string `yaml:"category" json:"category"`
}

type Catalog struct {
	Sounds            []Sound            `yaml:"sounds"`
	Themes            []Theme            `yaml:"themes"`
	BreathingPatterns []BreathingPattern `yaml:"breathing_patterns"`
	Chimes            []Chime            `yaml:"chimes"`
}

var phaseStates = map[string]bool{"inhale": true, "hold": true, "exhale": true, "pause": true}

// Load parses the catalog embedded in the binary.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a catalog document and fills in derived fields.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for i := range c.BreathingPatterns {
		p := &c.BreathingPatterns[i]
		if len(p.Pattern) == 0 {
			return nil, fmt.Errorf("breathing pattern %q has no phases", p.ID)
		}
		total := 0
		for _, ph := range p.Pattern {
			if !phaseStates[ph.State] {
				return nil, fmt.Errorf("breathing pattern %q: unknown phase %q", p.ID, ph.State)
			}
			if ph.Duration <= 0 {
				return nil, fmt.Errorf("breathing pattern %q: phase %q needs a positive duration", p.ID, ph.State)
			}
			total += ph.Duration
		}
		p.TotalDuration = total
	}

	return &c, nil
}
