// Package fields holds the pattern dictionary that maps semantic field
// identifiers to the regular expressions recognizing their labels in
// document tables.
package fields

import (
	"fmt"
	"regexp"
	"strings"
)

// Label/value separator glyphs. A cell containing one of these is
// treated as label-like even when no pattern matches, since forms often
// inline labels as "姓名：" or "电话(手机)".
var separatorGlyphs = []string{"：", ":", "(", "（", "/", "、"}

// PatternSpec declares one field identifier with its label expressions,
// in precedence order.
type PatternSpec struct {
	ID    string
	Exprs []string
}

// Pattern is a compiled field pattern.
type Pattern struct {
	ID    string
	Exprs []*regexp.Regexp
}

// Dictionary is an ordered, read-only set of field patterns. Iteration
// order defines the tie-break when a text matches several identifiers:
// the first matching entry wins. Caller-registered custom patterns are
// placed ahead of the defaults so they take precedence.
type Dictionary struct {
	patterns []Pattern
}

// Option configures a Dictionary under construction.
type Option func(*builder)

type builder struct {
	custom   []PatternSpec
	defaults bool
}

// WithCustomPatterns registers caller-supplied patterns. They are
// checked before the built-in set, in the order given.
func WithCustomPatterns(specs ...PatternSpec) Option {
	return func(b *builder) {
		b.custom = append(b.custom, specs...)
	}
}

// WithoutDefaults drops the built-in pattern set, leaving only custom
// patterns.
func WithoutDefaults() Option {
	return func(b *builder) {
		b.defaults = false
	}
}

// NewDictionary compiles the pattern dictionary. All matching is
// case-insensitive substring search, not full-match.
func NewDictionary(opts ...Option) (*Dictionary, error) {
	b := &builder{defaults: true}
	for _, opt := range opts {
		opt(b)
	}

	specs := b.custom
	if b.defaults {
		specs = append(specs, defaultPatternSpecs()...)
	}

	d := &Dictionary{patterns: make([]Pattern, 0, len(specs))}
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("field pattern with empty identifier")
		}
		if seen[spec.ID] {
			return nil, fmt.Errorf("duplicate field identifier %q", spec.ID)
		}
		seen[spec.ID] = true

		p := Pattern{ID: spec.ID, Exprs: make([]*regexp.Regexp, 0, len(spec.Exprs))}
		for _, expr := range spec.Exprs {
			re, err := regexp.Compile("(?i)" + expr)
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q for field %q: %w", expr, spec.ID, err)
			}
			p.Exprs = append(p.Exprs, re)
		}
		d.patterns = append(d.patterns, p)
	}
	return d, nil
}

// MustDictionary is NewDictionary for static initialization; it panics
// on invalid patterns.
func MustDictionary(opts ...Option) *Dictionary {
	d, err := NewDictionary(opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// IDs returns the field identifiers in precedence order.
func (d *Dictionary) IDs() []string {
	ids := make([]string, 0, len(d.patterns))
	for _, p := range d.patterns {
		ids = append(ids, p.ID)
	}
	return ids
}

// Len returns the number of registered field identifiers.
func (d *Dictionary) Len() int {
	return len(d.patterns)
}

// Lookup returns every field identifier whose pattern set matches text,
// in precedence order.
func (d *Dictionary) Lookup(text string) []string {
	var ids []string
	for _, p := range d.patterns {
		if p.matches(text) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Match returns the first field identifier matching text. This is the
// documented tie-break: dictionary order, custom patterns first.
func (d *Dictionary) Match(text string) (string, bool) {
	for _, p := range d.patterns {
		if p.matches(text) {
			return p.ID, true
		}
	}
	return "", false
}

// IsLabel reports whether text looks like a field label rather than a
// value: it matches a pattern or contains a separator glyph.
func (d *Dictionary) IsLabel(text string) bool {
	if _, ok := d.Match(text); ok {
		return true
	}
	for _, glyph := range separatorGlyphs {
		if strings.Contains(text, glyph) {
			return true
		}
	}
	return false
}

// LabelCount counts how many of the given texts match at least one
// field pattern. Each text contributes at most once, regardless of how
// many identifiers it matches.
func (d *Dictionary) LabelCount(texts []string) int {
	count := 0
	for _, text := range texts {
		if _, ok := d.Match(text); ok {
			count++
		}
	}
	return count
}

func (p Pattern) matches(text string) bool {
	for _, re := range p.Exprs {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
