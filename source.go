package texdex

import "strings"

// RuleKind selects how a TitleRule reads its value from a node.
type RuleKind string

// RuleKind constants for TitleRule.
const (
	RuleText RuleKind = "text"
	RuleAttr RuleKind = "attr"
)

// DefaultURLAttr is the attribute read by a URLRule that names none.
const DefaultURLAttr = "href"

// TitleRule maps a candidate node to a title string.
// Selector is evaluated relative to the candidate node; an empty Selector
// refers to the node itself. Kind RuleText takes the node's text, RuleAttr
// takes the value of Attr.
type TitleRule struct {
	Kind     RuleKind `json:"kind" yaml:"kind"`
	Selector string   `json:"selector,omitempty" yaml:"selector,omitempty"`
	Attr     string   `json:"attr,omitempty" yaml:"attr,omitempty"`
}

// URLRule maps a candidate node to an absolute URL string.
// The value of Attr (DefaultURLAttr when empty) is read from the node matched
// by Selector and, when Base is set, resolved against Base.
type URLRule struct {
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`
	Attr     string `json:"attr,omitempty" yaml:"attr,omitempty"`
	Base     string `json:"base,omitempty" yaml:"base,omitempty"`
}

// AttrName returns the attribute the rule reads.
func (r URLRule) AttrName() string {
	if r.Attr == "" {
		return DefaultURLAttr
	}
	return r.Attr
}

// Source describes how to fetch and parse one external catalog page.
type Source struct {
	Name     string    `json:"name" yaml:"name"`
	Endpoint string    `json:"endpoint" yaml:"endpoint"`
	Items    string    `json:"items" yaml:"items"`
	Title    TitleRule `json:"title" yaml:"title"`
	URL      URLRule   `json:"url" yaml:"url"`
}

// Validate returns an error if the source contains invalid fields.
// Selector syntax is checked by the Extractor, not here.
func (s *Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return Errorf(EINVALID, "source name required")
	}
	if !IsAbsoluteURL(s.Endpoint) {
		return Errorf(EINVALID, "source %q: endpoint must be an absolute URL", s.Name)
	}
	if strings.TrimSpace(s.Items) == "" {
		return Errorf(EINVALID, "source %q: item selector required", s.Name)
	}
	switch s.Title.Kind {
	case RuleText:
	case RuleAttr:
		if s.Title.Attr == "" {
			return Errorf(EINVALID, "source %q: attr title rule needs an attribute", s.Name)
		}
	default:
		return Errorf(EINVALID, "source %q: unknown title rule kind %q", s.Name, s.Title.Kind)
	}
	if s.URL.Base != "" && !IsAbsoluteURL(s.URL.Base) {
		return Errorf(EINVALID, "source %q: URL base must be an absolute URL", s.Name)
	}
	return nil
}

// ValidateSources validates every source and rejects duplicate names.
func ValidateSources(sources []*Source) error {
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return Errorf(EINVALID, "duplicate source name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// DefaultSources returns the built-in source registry in crawl order.
func DefaultSources() []*Source {
	return []*Source{
		{
			Name:     "AmbientCG",
			Endpoint: "https://ambientcg.com/list",
			Items:    "a.AssetBrowser_assetListItem__f5L0f",
			Title:    TitleRule{Kind: RuleText, Selector: "h3"},
			URL:      URLRule{Base: "https://ambientcg.com"},
		},
		{
			Name:     "Poly Haven",
			Endpoint: "https://polyhaven.com/textures",
			Items:    "a.tile",
			Title:    TitleRule{Kind: RuleText, Selector: "h2"},
			URL:      URLRule{Base: "https://polyhaven.com"},
		},
		{
			Name:     "Textures.com (PBR)",
			Endpoint: "https://www.textures.com/browse/pbr-materials/114511",
			Items:    "div.list-item > a",
			Title:    TitleRule{Kind: RuleAttr, Attr: "title"},
			URL:      URLRule{Base: "https://www.textures.com"},
		},
	}
}
