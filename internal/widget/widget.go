// Package widget defines the interactive fence types embedded in handbook
// markdown (quiz, terminal, command-builder, exercise, code-walkthrough)
// and their YAML schemas.
//
// A widget fence is an ordinary fenced code block whose info string is one
// of the known kinds and whose body is YAML:
//
//	```quiz
//	question: "Which permission string does chmod 640 produce?"
//	options:
//	  - text: "rw-r-----"
//	    correct: true
//	```
//
// The renderer turns each fence into a div carrying the decoded config as
// a JSON data attribute; the shipped front-end assets hydrate those divs
// on page load.
package widget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies one of the supported interactive fence types.
type Kind string

const (
	KindQuiz            Kind = "quiz"
	KindTerminal        Kind = "terminal"
	KindCommandBuilder  Kind = "command-builder"
	KindExercise        Kind = "exercise"
	KindCodeWalkthrough Kind = "code-walkthrough"
)

// Kinds lists every supported fence type.
var Kinds = []Kind{
	KindQuiz,
	KindTerminal,
	KindCommandBuilder,
	KindExercise,
	KindCodeWalkthrough,
}

// KnownKind matches a fence info string (e.g. "quiz", "bash", "") against
// the supported kinds. Only the first word of the info string counts, so
// "quiz {#q1}" still matches.
func KnownKind(info string) (Kind, bool) {
	word := strings.TrimSpace(info)
	if i := strings.IndexAny(word, " \t"); i >= 0 {
		word = word[:i]
	}
	k := Kind(word)
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// Config is implemented by every fence schema.
type Config interface {
	// Validate returns every schema problem found, not just the first.
	// An empty slice means the config is well-formed.
	Validate() []string
}

// Widget is a decoded interactive fence.
type Widget struct {
	Kind   Kind
	Config Config

	// Raw title/question keys from the YAML body, captured independently
	// of the typed schema so the noscript fallback matches what authors
	// wrote even on kinds whose schema has no title field.
	rawTitle    string
	rawQuestion string
}

// Decode parses a fence body into a typed widget. Unknown YAML keys are
// ignored; an empty body yields the zero config. Invalid YAML (or a body
// that is not a mapping) is returned as an error.
func Decode(kind Kind, body []byte) (*Widget, error) {
	return decode(kind, body, false)
}

// DecodeStrict is Decode with unknown-key detection enabled; the linter
// uses it to surface typos like "qestion:" that the lenient decoder would
// silently drop.
func DecodeStrict(kind Kind, body []byte) (*Widget, error) {
	return decode(kind, body, true)
}

func decode(kind Kind, body []byte, strict bool) (*Widget, error) {
	cfg, err := newConfig(kind)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(body))
		dec.KnownFields(strict)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("%s config: %w", kind, err)
		}
	}

	w := &Widget{Kind: kind, Config: cfg}

	// Second lenient pass for the title fallback keys only.
	var probe struct {
		Title    string `yaml:"title"`
		Question string `yaml:"question"`
	}
	if yaml.Unmarshal(body, &probe) == nil {
		w.rawTitle = probe.Title
		w.rawQuestion = probe.Question
	}

	return w, nil
}

// newConfig returns the empty schema value for kind.
func newConfig(kind Kind) (Config, error) {
	switch kind {
	case KindQuiz:
		return &Quiz{}, nil
	case KindTerminal:
		return &Terminal{}, nil
	case KindCommandBuilder:
		return &CommandBuilder{}, nil
	case KindExercise:
		return &Exercise{}, nil
	case KindCodeWalkthrough:
		return &CodeWalkthrough{}, nil
	default:
		return nil, fmt.Errorf("unknown widget kind %q", kind)
	}
}

// Title resolves the display title: explicit title key, then the quiz
// question, then the kind with hyphens spaced and words capitalized
// ("command-builder" becomes "Command Builder").
func (w *Widget) Title() string {
	if w.rawTitle != "" {
		return w.rawTitle
	}
	if w.rawQuestion != "" {
		return w.rawQuestion
	}
	return titleCase(w.Kind)
}

// ConfigJSON marshals the typed config for the data-config attribute.
// HTML characters are left unescaped; attribute escaping is the
// renderer's job.
func (w *Widget) ConfigJSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w.Config); err != nil {
		return "", fmt.Errorf("marshal %s config: %w", w.Kind, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Validate reports schema problems of the decoded config.
func (w *Widget) Validate() []string {
	return w.Config.Validate()
}

func titleCase(k Kind) string {
	words := strings.Split(string(k), "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
