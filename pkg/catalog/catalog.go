package catalog

import "fmt"

// Catalog is an immutable snapshot of one payload document with the rule
// tables pre-indexed by solution. Build it once per payload with New and
// share it freely between readers; it is never mutated afterwards.
type Catalog struct {
	doc *Document

	runtimeRules  map[string][]SupportRule // solution ID -> runtime rules
	providerRules map[string][]SupportRule // solution ID -> provider rules
}

// New builds a snapshot from doc. Rules referencing unknown solutions are
// kept in the index but never reached; one bad row must not break the rest
// of the catalog.
func New(doc *Document) (*Catalog, error) {
	if doc == nil {
		return nil, fmt.Errorf("catalog: nil document")
	}

	c := &Catalog{
		doc:           doc,
		runtimeRules:  make(map[string][]SupportRule, len(doc.Solutions)),
		providerRules: make(map[string][]SupportRule, len(doc.Solutions)),
	}
	for _, r := range doc.RuntimeSupport {
		c.runtimeRules[r.SolutionID] = append(c.runtimeRules[r.SolutionID], r)
	}
	for _, r := range doc.ProviderSupport {
		c.providerRules[r.SolutionID] = append(c.providerRules[r.SolutionID], r)
	}
	return c, nil
}

// Voices returns all voices in payload order.
func (c *Catalog) Voices() []Voice { return c.doc.Voices }

// Solutions returns all solutions in payload order.
func (c *Catalog) Solutions() []Solution { return c.doc.Solutions }

// Solution returns the solution with the given ID, or nil.
func (c *Catalog) Solution(id string) *Solution {
	for i := range c.doc.Solutions {
		if c.doc.Solutions[i].ID == id {
			return &c.doc.Solutions[i]
		}
	}
	return nil
}

// GeneratedAt returns the payload's build timestamp (display only).
func (c *Catalog) GeneratedAt() string { return c.doc.GeneratedAt }

// Document returns the underlying payload document. Callers must treat it
// as read-only.
func (c *Catalog) Document() *Document { return c.doc }

// FilterVoices evaluates sel against every voice and returns the matching
// voices in payload order. The result is freshly allocated on every call.
func (c *Catalog) FilterVoices(sel Selection) []*Voice {
	var out []*Voice
	for i := range c.doc.Voices {
		if Matches(&c.doc.Voices[i], sel) {
			out = append(out, &c.doc.Voices[i])
		}
	}
	return out
}

// FilterPool evaluates the assistive-technology pool selection against
// every voice: an operating-mode gate, the platform-compatibility
// predicate, and a text query over language/script fields only.
func (c *Catalog) FilterPool(sel PoolSelection) []*Voice {
	var out []*Voice
	for i := range c.doc.Voices {
		if MatchesPool(&c.doc.Voices[i], sel) {
			out = append(out, &c.doc.Voices[i])
		}
	}
	return out
}
