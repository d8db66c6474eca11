package shell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
)

// LineReader reads edited lines from the user.
type LineReader interface {
	Prompt(prompt string) (string, error)
	PromptWithSuggestion(prompt, text string, pos int) (string, error)
	AppendHistory(item string)
}

// Terminal is the line editor shared by the read loop and the prompts hooks
// open. It owns the history file.
type Terminal struct {
	state       *liner.State
	historyPath string
}

// NewTerminal puts the terminal under liner's control and loads history
// from historyPath when it exists.
func NewTerminal(historyPath string) *Terminal {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	t := &Terminal{state: state, historyPath: historyPath}
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return t
}

func (t *Terminal) Prompt(prompt string) (string, error) {
	return t.state.Prompt(prompt)
}

func (t *Terminal) PromptWithSuggestion(prompt, text string, pos int) (string, error) {
	return t.state.PromptWithSuggestion(prompt, text, pos)
}

func (t *Terminal) AppendHistory(item string) {
	t.state.AppendHistory(item)
}

// EnableCompletion completes command names from reg on tab.
func (t *Terminal) EnableCompletion(reg *dispatchers.Registry) {
	t.state.SetCompleter(Completer(reg))
}

// Close writes the history file (0600) and restores the terminal.
func (t *Terminal) Close() error {
	if t.historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(t.historyPath), 0700); err == nil {
			if f, err := os.OpenFile(t.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
				_, _ = t.state.WriteHistory(f)
				_ = f.Close()
			}
		}
	}
	return t.state.Close()
}

// Completer returns full-line candidates for the word under the cursor.
func Completer(reg *dispatchers.Registry) liner.Completer {
	return func(line string) []string {
		cut := strings.LastIndexAny(line, " \t") + 1
		prefix, partial := line[:cut], line[cut:]

		tokens, err := Tokenize(prefix)
		if err != nil {
			return nil
		}

		names := reg.Complete(tokens, partial)
		out := make([]string, 0, len(names))
		for _, n := range names {
			out = append(out, prefix+n+" ")
		}
		return out
	}
}
