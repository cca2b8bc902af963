package widget

import "fmt"

// JSON tags use omitempty throughout so an empty fence body serializes to
// "{}" and absent optional keys never reach the browser. Required-ness is
// enforced by Validate, not by serialization.

// QuizType is the answer mode of a quiz.
type QuizType string

const (
	QuizSingle    QuizType = "single"
	QuizMultiple  QuizType = "multiple"
	QuizTrueFalse QuizType = "true-false"
)

// QuizOption is one selectable answer.
type QuizOption struct {
	Text     string `yaml:"text" json:"text,omitempty"`
	Correct  bool   `yaml:"correct" json:"correct,omitempty"`
	Feedback string `yaml:"feedback" json:"feedback,omitempty"`
}

// Quiz is a multiple-choice question.
type Quiz struct {
	Question string       `yaml:"question" json:"question,omitempty"`
	Type     QuizType     `yaml:"type" json:"type,omitempty"`
	Options  []QuizOption `yaml:"options" json:"options,omitempty"`
}

// EffectiveType returns the quiz type with the default applied.
func (q *Quiz) EffectiveType() QuizType {
	if q.Type == "" {
		return QuizSingle
	}
	return q.Type
}

// Validate implements Config.
func (q *Quiz) Validate() []string {
	var problems []string
	if q.Question == "" {
		problems = append(problems, "quiz: question is required")
	}
	switch q.EffectiveType() {
	case QuizSingle, QuizMultiple, QuizTrueFalse:
	default:
		problems = append(problems, fmt.Sprintf("quiz: unknown type %q (use single, multiple or true-false)", q.Type))
	}
	if len(q.Options) == 0 {
		problems = append(problems, "quiz: at least one option is required")
	}
	correct := 0
	for i, opt := range q.Options {
		if opt.Text == "" {
			problems = append(problems, fmt.Sprintf("quiz: option %d has no text", i+1))
		}
		if opt.Correct {
			correct++
		}
	}
	if len(q.Options) > 0 && correct == 0 {
		problems = append(problems, "quiz: no option is marked correct")
	}
	switch q.EffectiveType() {
	case QuizSingle:
		if correct > 1 {
			problems = append(problems, fmt.Sprintf("quiz: single-answer quiz has %d correct options", correct))
		}
	case QuizTrueFalse:
		if len(q.Options) != 2 {
			problems = append(problems, fmt.Sprintf("quiz: true-false quiz needs exactly 2 options, has %d", len(q.Options)))
		}
		if correct > 1 {
			problems = append(problems, fmt.Sprintf("quiz: true-false quiz has %d correct options", correct))
		}
	}
	return problems
}

// Difficulty levels accepted by exercises.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Exercise is a hands-on task with optional hints and a solution.
type Exercise struct {
	Title      string   `yaml:"title" json:"title,omitempty"`
	Difficulty string   `yaml:"difficulty" json:"difficulty,omitempty"`
	Scenario   string   `yaml:"scenario" json:"scenario,omitempty"`
	Hints      []string `yaml:"hints" json:"hints,omitempty"`
	Solution   string   `yaml:"solution" json:"solution,omitempty"`
}

// Validate implements Config.
func (e *Exercise) Validate() []string {
	var problems []string
	if e.Title == "" {
		problems = append(problems, "exercise: title is required")
	}
	switch e.Difficulty {
	case "", DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		problems = append(problems, fmt.Sprintf("exercise: unknown difficulty %q (use beginner, intermediate or advanced)", e.Difficulty))
	}
	return problems
}

// TerminalStep is one command in a terminal walkthrough.
type TerminalStep struct {
	Command   string `yaml:"command" json:"command,omitempty"`
	Output    string `yaml:"output" json:"output,omitempty"`
	Narration string `yaml:"narration" json:"narration,omitempty"`
}

// Terminal is a replayable sequence of shell commands with narration.
type Terminal struct {
	Title string         `yaml:"title" json:"title,omitempty"`
	Steps []TerminalStep `yaml:"steps" json:"steps,omitempty"`
}

// Validate implements Config.
func (t *Terminal) Validate() []string {
	var problems []string
	if len(t.Steps) == 0 {
		problems = append(problems, "terminal: at least one step is required")
	}
	for i, step := range t.Steps {
		if step.Command == "" {
			problems = append(problems, fmt.Sprintf("terminal: step %d has no command", i+1))
		}
	}
	return problems
}

// Annotation attaches a note to a line range of walkthrough code.
// Line and EndLine are 1-based; EndLine zero means a single line.
type Annotation struct {
	Line    int    `yaml:"line" json:"line,omitempty"`
	EndLine int    `yaml:"end_line" json:"end_line,omitempty"`
	Note    string `yaml:"note" json:"note,omitempty"`
}

// CodeWalkthrough is an annotated code listing.
type CodeWalkthrough struct {
	Language    string       `yaml:"language" json:"language,omitempty"`
	Title       string       `yaml:"title" json:"title,omitempty"`
	Code        string       `yaml:"code" json:"code,omitempty"`
	Annotations []Annotation `yaml:"annotations" json:"annotations,omitempty"`
}

// LineCount returns the number of lines in the code listing.
func (c *CodeWalkthrough) LineCount() int {
	if c.Code == "" {
		return 0
	}
	n := 1
	for _, r := range c.Code {
		if r == '\n' {
			n++
		}
	}
	// A trailing newline does not start a new line.
	if c.Code[len(c.Code)-1] == '\n' {
		n--
	}
	return n
}

// Validate implements Config.
func (c *CodeWalkthrough) Validate() []string {
	var problems []string
	if c.Title == "" {
		problems = append(problems, "code-walkthrough: title is required")
	}
	if c.Code == "" {
		problems = append(problems, "code-walkthrough: code is required")
	}
	lines := c.LineCount()
	for i, a := range c.Annotations {
		if a.Note == "" {
			problems = append(problems, fmt.Sprintf("code-walkthrough: annotation %d has no note", i+1))
		}
		if a.Line < 1 {
			problems = append(problems, fmt.Sprintf("code-walkthrough: annotation %d line must be >= 1", i+1))
			continue
		}
		if lines > 0 && a.Line > lines {
			problems = append(problems, fmt.Sprintf("code-walkthrough: annotation %d points at line %d of a %d-line listing", i+1, a.Line, lines))
		}
		if a.EndLine != 0 {
			if a.EndLine < a.Line {
				problems = append(problems, fmt.Sprintf("code-walkthrough: annotation %d end_line %d precedes line %d", i+1, a.EndLine, a.Line))
			} else if lines > 0 && a.EndLine > lines {
				problems = append(problems, fmt.Sprintf("code-walkthrough: annotation %d end_line %d exceeds the %d-line listing", i+1, a.EndLine, lines))
			}
		}
	}
	return problems
}

// OptionType is how a command-builder option is presented.
type OptionType string

const (
	OptionSelect OptionType = "select"
	OptionText   OptionType = "text"
)

// Choice is one selectable value of a select option.
type Choice struct {
	Value       string `yaml:"value" json:"value,omitempty"`
	Explanation string `yaml:"explanation" json:"explanation,omitempty"`
}

// BuilderOption is one composable flag of a command builder.
type BuilderOption struct {
	Flag        string     `yaml:"flag" json:"flag,omitempty"`
	Type        OptionType `yaml:"type" json:"type,omitempty"`
	Label       string     `yaml:"label" json:"label,omitempty"`
	Explanation string     `yaml:"explanation" json:"explanation,omitempty"`
	Placeholder string     `yaml:"placeholder" json:"placeholder,omitempty"`
	Choices     []Choice   `yaml:"choices" json:"choices,omitempty"`
}

// EffectiveType returns the option type with the default applied.
func (o *BuilderOption) EffectiveType() OptionType {
	if o.Type == "" {
		return OptionSelect
	}
	return o.Type
}

// CommandBuilder lets readers compose a command from a base and options.
type CommandBuilder struct {
	Base        string          `yaml:"base" json:"base,omitempty"`
	Description string          `yaml:"description" json:"description,omitempty"`
	Options     []BuilderOption `yaml:"options" json:"options,omitempty"`
}

// Validate implements Config.
func (b *CommandBuilder) Validate() []string {
	var problems []string
	if b.Base == "" {
		problems = append(problems, "command-builder: base is required")
	}
	for i, opt := range b.Options {
		if opt.Flag == "" {
			problems = append(problems, fmt.Sprintf("command-builder: option %d has no flag", i+1))
		}
		switch opt.EffectiveType() {
		case OptionSelect:
			if len(opt.Choices) == 0 {
				problems = append(problems, fmt.Sprintf("command-builder: select option %d has no choices", i+1))
			}
			if opt.Placeholder != "" {
				problems = append(problems, fmt.Sprintf("command-builder: option %d is a select and cannot have a placeholder", i+1))
			}
		case OptionText:
			if len(opt.Choices) > 0 {
				problems = append(problems, fmt.Sprintf("command-builder: text option %d cannot have choices", i+1))
			}
		default:
			problems = append(problems, fmt.Sprintf("command-builder: option %d has unknown type %q (use select or text)", i+1, opt.Type))
		}
		for j, choice := range opt.Choices {
			if choice.Value == "" {
				problems = append(problems, fmt.Sprintf("command-builder: option %d choice %d has no value", i+1, j+1))
			}
		}
	}
	return problems
}
