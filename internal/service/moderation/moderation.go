// Package moderation screens visitor comments against a banned-word list.
package moderation

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

type Word struct {
	Text       string   `yaml:"text"`
	Pattern    string   `yaml:"pattern"`
	Exceptions []string `yaml:"exceptions"`

	re *regexp.Regexp
}

type wordList struct {
	Words []Word `yaml:"words"`
}

// Filter matches each whitespace-separated token of a comment against the
// banned patterns. A zero Filter allows everything.
type Filter struct {
	words []Word
}

func New(words ...Word) (*Filter, error) {
	f := &Filter{}
	if err := f.set(words); err != nil {
		return nil, err
	}
	return f, nil
}

// LoadFile reads a YAML word list of the form
//
//	words:
//	  - text: bodoh
//	    pattern: "b[o0]d[o0]h"
//	    exceptions: []
func LoadFile(path string) (*Filter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Filter, error) {
	var list wordList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse word list: %w", err)
	}
	return New(list.Words...)
}

func (f *Filter) set(words []Word) error {
	compiled := make([]Word, 0, len(words))
	for _, w := range words {
		pattern := w.Pattern
		if pattern == "" {
			pattern = regexp.QuoteMeta(normalize(w.Text))
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("compile pattern %q: %w", pattern, err)
		}
		w.re = re
		exceptions := make([]string, len(w.Exceptions))
		for i, exc := range w.Exceptions {
			exceptions[i] = normalize(exc)
		}
		w.Exceptions = exceptions
		compiled = append(compiled, w)
	}
	f.words = compiled
	return nil
}

func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.words)
}

// Allowed reports whether text passes the filter.
func (f *Filter) Allowed(text string) bool {
	return f.Match(text) == ""
}

// Match returns the first banned token found in text, or "".
func (f *Filter) Match(text string) string {
	if f == nil || len(f.words) == 0 {
		return ""
	}

	for _, token := range strings.FieldsFunc(normalize(text), splitToken) {
		for _, w := range f.words {
			hit := w.re.FindString(token)
			if hit == "" || isException(w, hit, token) {
				continue
			}
			return token
		}
	}
	return ""
}

func isException(w Word, hit, token string) bool {
	for _, exc := range w.Exceptions {
		if exc == hit || exc == token {
			return true
		}
	}
	return false
}

func splitToken(r rune) bool {
	return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '*' && r != '@')
}

var leet = strings.NewReplacer("0", "o", "1", "i", "3", "e", "4", "a", "5", "s", "7", "t", "@", "a")

func normalize(text string) string {
	return leet.Replace(strings.ToLower(strings.TrimSpace(text)))
}
