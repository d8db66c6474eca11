package shell

import (
	"strings"

	"github.com/previoip/srcds-resource-manager/internal/domain"
)

// Prompter asks questions on a LineReader.
type Prompter struct {
	r LineReader
}

func NewPrompter(r LineReader) *Prompter {
	return &Prompter{r: r}
}

// Prompt pre-fills the line with current so it can be edited in place.
func (p *Prompter) Prompt(label, current string) (string, error) {
	if current == "" {
		return p.r.Prompt(label)
	}
	return p.r.PromptWithSuggestion(label, current, -1)
}

// Confirm accepts y or yes, in any case, as agreement.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.r.Prompt(question + " [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

var _ domain.Prompter = (*Prompter)(nil)
