package payload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voiceatlas/voiceatlas/pkg/catalog"
)

// Overlay is an operator-maintained YAML file layered onto the payload
// before the snapshot is built: extra solutions and support rules that are
// curated next to the deployment rather than baked into the export.
type Overlay struct {
	Solutions       []overlaySolution `yaml:"solutions"`
	RuntimeSupport  []overlayRule     `yaml:"runtime_support"`
	ProviderSupport []overlayRule     `yaml:"provider_support"`
}

type overlaySolution struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Vendor    string   `yaml:"vendor"`
	Category  string   `yaml:"category"`
	Platforms []string `yaml:"platforms"`
	Links     []string `yaml:"links"`
}

type overlayRule struct {
	SolutionID         string `yaml:"solution_id"`
	Runtime            string `yaml:"runtime"`
	Provider           string `yaml:"provider"`
	SupportLevel       string `yaml:"support_level"`
	VoiceOrigin        string `yaml:"voice_origin"`
	RequiresEnrollment bool   `yaml:"requires_enrollment"`
	RequiresUserAsset  bool   `yaml:"requires_user_asset"`
}

// LoadOverlay parses the overlay file at path.
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay %q: %w", path, err)
	}
	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse overlay %q: %w", path, err)
	}
	return &o, nil
}

// Apply appends the overlay's solutions and rules to doc. Overlay
// solutions with an ID already present in the payload replace the payload
// record so operators can correct upstream data.
func (o *Overlay) Apply(doc *catalog.Document) {
	for _, s := range o.Solutions {
		sol := catalog.Solution{
			ID:        s.ID,
			Name:      s.Name,
			Vendor:    s.Vendor,
			Category:  s.Category,
			Platforms: s.Platforms,
			Links:     s.Links,
		}
		replaced := false
		for i := range doc.Solutions {
			if doc.Solutions[i].ID == sol.ID {
				doc.Solutions[i] = sol
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Solutions = append(doc.Solutions, sol)
		}
	}
	for _, r := range o.RuntimeSupport {
		doc.RuntimeSupport = append(doc.RuntimeSupport, r.toRule())
	}
	for _, r := range o.ProviderSupport {
		doc.ProviderSupport = append(doc.ProviderSupport, r.toRule())
	}
}

func (r overlayRule) toRule() catalog.SupportRule {
	return catalog.SupportRule{
		SolutionID:         r.SolutionID,
		Runtime:            r.Runtime,
		Provider:           r.Provider,
		SupportLevel:       r.SupportLevel,
		VoiceOrigin:        r.VoiceOrigin,
		RequiresEnrollment: r.RequiresEnrollment,
		RequiresUserAsset:  r.RequiresUserAsset,
	}
}
