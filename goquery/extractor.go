package goquery

import (
	"html"
	"iter"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/texdex"
	"github.com/microcosm-cc/bluemonday"
)

// Compile-time interface verification.
var _ texdex.Extractor = (*Extractor)(nil)

// Extractor implements texdex.Extractor using goquery and cascadia selectors.
type Extractor struct {
	policy *bluemonday.Policy
	filter func(string) string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTitleFilter applies fn to every non-empty extracted title, after
// sanitizing and whitespace collapsing.
func WithTitleFilter(fn func(string) string) Option {
	return func(e *Extractor) {
		e.filter = fn
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{policy: bluemonday.StrictPolicy()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// rules holds a source's selectors in compiled form.
type rules struct {
	items cascadia.Selector
	title cascadia.Selector // nil selects the item itself
	url   cascadia.Selector // nil selects the item itself
	base  *url.URL
}

// Extract parses html and returns a sequence of candidates, one per node
// matched by the source's item selector, in document order.
func (e *Extractor) Extract(body string, src *texdex.Source) (iter.Seq[texdex.Candidate], error) {
	r, err := compileRules(src)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, texdex.Errorf(texdex.EINVALID, "failed to parse HTML: %v", err)
	}

	items := doc.FindMatcher(r.items)

	return func(yield func(texdex.Candidate) bool) {
		for i := range items.Nodes {
			if !yield(e.candidate(items.Eq(i), src, r)) {
				return
			}
		}
	}, nil
}

func compileRules(src *texdex.Source) (*rules, error) {
	var r rules
	var err error

	if r.items, err = cascadia.Compile(src.Items); err != nil {
		return nil, texdex.Errorf(texdex.EINVALID, "source %q: invalid item selector %q: %v", src.Name, src.Items, err)
	}
	if src.Title.Selector != "" {
		if r.title, err = cascadia.Compile(src.Title.Selector); err != nil {
			return nil, texdex.Errorf(texdex.EINVALID, "source %q: invalid title selector %q: %v", src.Name, src.Title.Selector, err)
		}
	}
	if src.URL.Selector != "" {
		if r.url, err = cascadia.Compile(src.URL.Selector); err != nil {
			return nil, texdex.Errorf(texdex.EINVALID, "source %q: invalid url selector %q: %v", src.Name, src.URL.Selector, err)
		}
	}
	if src.URL.Base != "" {
		if r.base, err = url.Parse(src.URL.Base); err != nil {
			return nil, texdex.Errorf(texdex.EINVALID, "source %q: invalid base URL: %v", src.Name, err)
		}
	}

	return &r, nil
}

// candidate applies the title and URL rules to one item. A panic while
// reading the node is reported on the candidate instead of the sequence.
func (e *Extractor) candidate(item *goquery.Selection, src *texdex.Source, r *rules) (c texdex.Candidate) {
	defer func() {
		if v := recover(); v != nil {
			c = texdex.Candidate{Err: texdex.Errorf(texdex.EINTERNAL, "source %q: item extraction failed: %v", src.Name, v)}
		}
	}()

	return texdex.Candidate{
		Title: e.title(item, src.Title, r.title),
		URL:   resolve(item, src.URL, r.url, r.base),
	}
}

func (e *Extractor) title(item *goquery.Selection, rule texdex.TitleRule, sel cascadia.Selector) string {
	t := e.rawTitle(item, rule, sel)
	if t == "" || e.filter == nil {
		return t
	}
	return e.filter(t)
}

func (e *Extractor) rawTitle(item *goquery.Selection, rule texdex.TitleRule, sel cascadia.Selector) string {
	node := match(item, sel)
	if node.Length() == 0 {
		return ""
	}

	switch rule.Kind {
	case texdex.RuleText:
		return collapseSpace(node.Text())
	case texdex.RuleAttr:
		v, ok := node.Attr(rule.Attr)
		if !ok {
			return ""
		}
		// Attribute values sometimes carry markup or entities meant for display.
		return collapseSpace(html.UnescapeString(e.policy.Sanitize(v)))
	default:
		return ""
	}
}

func resolve(item *goquery.Selection, rule texdex.URLRule, sel cascadia.Selector, base *url.URL) string {
	node := match(item, sel)
	if node.Length() == 0 {
		return ""
	}

	v, ok := node.Attr(rule.AttrName())
	if !ok {
		return ""
	}
	v = strings.TrimSpace(v)
	if v == "" || base == nil {
		return v
	}

	ref, err := url.Parse(v)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// match returns the first descendant of item matching sel, or item itself
// when sel is nil.
func match(item *goquery.Selection, sel cascadia.Selector) *goquery.Selection {
	if sel == nil {
		return item
	}
	return item.FindMatcher(sel).First()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
