package ui

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Validator reports whether a trimmed answer is acceptable
type Validator func(answer string) bool

// Prompter asks the user questions. Both methods block until answered.
type Prompter interface {
	// Text re-asks until validate accepts the answer and returns it trimmed.
	// A nil validator accepts any answer.
	Text(question string, validate Validator) (string, error)
	// Confirm asks a yes/no question
	Confirm(question string) (bool, error)
}

// NonBlank accepts any answer with at least one non-space character
func NonBlank(answer string) bool {
	return strings.TrimSpace(answer) != ""
}

// errRejected is shown by survey under the prompt before it asks again
var errRejected = errors.New("please enter a valid value")

// SurveyPrompter renders prompts on a terminal using survey
type SurveyPrompter struct {
	Prefix string // Replaces survey's question mark, e.g. ">"

	In  terminal.FileReader
	Out terminal.FileWriter
	Err io.Writer

	ask func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
}

// NewSurveyPrompter returns a prompter bound to the process stdio
func NewSurveyPrompter(prefix string) *SurveyPrompter {
	return &SurveyPrompter{
		Prefix: prefix,
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
		ask:    survey.AskOne,
	}
}

func (p *SurveyPrompter) askOne(prompt survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	if p.ask == nil {
		return survey.AskOne(prompt, response, opts...)
	}
	return p.ask(prompt, response, opts...)
}

func (p *SurveyPrompter) opts() []survey.AskOpt {
	opts := []survey.AskOpt{survey.WithStdio(p.In, p.Out, p.Err)}
	if p.Prefix != "" {
		opts = append(opts, survey.WithIcons(func(icons *survey.IconSet) {
			icons.Question.Text = p.Prefix
		}))
	}
	return opts
}

// Text prompts for a line of input
func (p *SurveyPrompter) Text(question string, validate Validator) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: question,
	}

	opts := p.opts()
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(val interface{}) error {
			str, _ := val.(string)
			if !validate(strings.TrimSpace(str)) {
				return errRejected
			}
			return nil
		}))
	}

	if err := p.askOne(prompt, &answer, opts...); err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Confirm prompts for yes/no confirmation
func (p *SurveyPrompter) Confirm(question string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: question,
		Default: false,
	}
	if err := p.askOne(prompt, &confirmed, p.opts()...); err != nil {
		return false, err
	}
	return confirmed, nil
}

// IsInterrupt reports whether err came from the user pressing Ctrl+C at a prompt
func IsInterrupt(err error) bool {
	return errors.Is(err, terminal.InterruptErr)
}
