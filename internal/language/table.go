// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package language

import (
	_ "embed"
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed languages.json
var bundled []byte

// =============================================================================
// TABLE TYPES
// =============================================================================

// Kind distinguishes the two shapes of a table entry.
type Kind int

const (
	// Flat maps a language name straight to one locale code.
	Flat Kind = iota
	// Grouped maps a language name to one code per country.
	Grouped
)

// Country is one locale of a grouped entry.
type Country struct {
	Name string
	Code string
}

// Entry is one row of the language table.
type Entry struct {
	Name      string
	Kind      Kind
	Code      string    // Flat only
	Countries []Country // Grouped only
}

// Table is the language table in source order.
type Table []Entry

// Option is one selectable locale.
type Option struct {
	Label string       `json:"label"`
	Code  string       `json:"code"`
	Tag   language.Tag `json:"-"`
}

// =============================================================================
// PARSING
// =============================================================================

// ErrInvalidTable is wrapped by every Parse error.
var ErrInvalidTable = errors.New("invalid language table")

// Parse reads a table mapping display names to either a locale code or an
// object of country -> locale code. Key order is preserved. Codes must be
// valid BCP 47 tags and unique across the table.
func Parse(data []byte) (Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidTable)
	}

	seen := make(map[string]string)
	checkCode := func(label, code string) error {
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("%w: %s: bad locale code %q", ErrInvalidTable, label, code)
		}
		if prev, dup := seen[code]; dup {
			return fmt.Errorf("%w: code %s used by both %s and %s", ErrInvalidTable, code, prev, label)
		}
		seen[code] = label
		return nil
	}

	root := doc.Content[0]
	table := make(Table, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		entry := Entry{Name: key.Value}

		switch val.Kind {
		case yaml.ScalarNode:
			entry.Kind = Flat
			entry.Code = val.Value
			if err := checkCode(entry.Name, entry.Code); err != nil {
				return nil, err
			}
		case yaml.MappingNode:
			entry.Kind = Grouped
			if len(val.Content) == 0 {
				return nil, fmt.Errorf("%w: %s has no countries", ErrInvalidTable, entry.Name)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				c := Country{Name: val.Content[j].Value, Code: val.Content[j+1].Value}
				if val.Content[j+1].Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("%w: %s (%s) must map to a code", ErrInvalidTable, entry.Name, c.Name)
				}
				if err := checkCode(entry.Name+" ("+c.Name+")", c.Code); err != nil {
					return nil, err
				}
				entry.Countries = append(entry.Countries, c)
			}
		default:
			return nil, fmt.Errorf("%w: %s must be a code or an object", ErrInvalidTable, entry.Name)
		}
		table = append(table, entry)
	}
	return table, nil
}

// Bundled returns the table shipped with rigrun.
func Bundled() (Table, error) {
	return Parse(bundled)
}

// =============================================================================
// FLATTENING
// =============================================================================

// Options flattens the table. Flat entries pass through under their name;
// grouped entries expand to "<Language> (<Country>)" per country. Order
// follows the table.
func (t Table) Options() []Option {
	var opts []Option
	add := func(label, code string) {
		opts = append(opts, Option{Label: label, Code: code, Tag: language.Make(code)})
	}
	for _, e := range t {
		switch e.Kind {
		case Flat:
			add(e.Name, e.Code)
		case Grouped:
			for _, c := range e.Countries {
				add(fmt.Sprintf("%s (%s)", e.Name, c.Name), c.Code)
			}
		}
	}
	return opts
}

// Find returns the option with the given code.
func Find(opts []Option, code string) (Option, bool) {
	for _, o := range opts {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}

// Match returns the option closest to a BCP 47 tag, e.g. "en" or "pt-BR".
// It reports false when nothing matches with at least low confidence.
func Match(opts []Option, tag string) (Option, bool) {
	if len(opts) == 0 || tag == "" {
		return Option{}, false
	}
	want, err := language.Parse(tag)
	if err != nil {
		return Option{}, false
	}
	tags := make([]language.Tag, len(opts))
	for i, o := range opts {
		tags[i] = o.Tag
	}
	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		return Option{}, false
	}
	return opts[idx], true
}
