// Package shell runs the interactive read loop on top of the command
// registry.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"

	"github.com/previoip/srcds-resource-manager/internal/actions"
	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/log"
	"github.com/previoip/srcds-resource-manager/internal/ui/style"
	"github.com/previoip/srcds-resource-manager/internal/usage"
)

const DefaultPrompt = "> "

type Shell struct {
	reg     *dispatchers.Registry
	session *actions.Session
	reader  LineReader
	out     io.Writer
	styler  domain.Styler
	logger  domain.Logger
	prompt  string
}

type Option func(*Shell)

func WithOutput(w io.Writer) Option {
	return func(s *Shell) { s.out = w }
}

func WithStyler(st domain.Styler) Option {
	return func(s *Shell) {
		if st != nil {
			s.styler = st
		}
	}
}

func WithLogger(l domain.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithPrompt(p string) Option {
	return func(s *Shell) { s.prompt = p }
}

func New(reg *dispatchers.Registry, session *actions.Session, reader LineReader, opts ...Option) *Shell {
	s := &Shell{
		reg:     reg,
		session: session,
		reader:  reader,
		out:     os.Stdout,
		styler:  style.Plain,
		logger:  log.NopLogger{},
		prompt:  DefaultPrompt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads and executes lines until the exit command stops the session.
// End of input and Ctrl-C at the prompt run exit as well.
func (s *Shell) Run(ctx context.Context) error {
	for s.session.Running() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.reader.Prompt(s.prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			_, _ = fmt.Fprintln(s.out)
			return s.leave(ctx)
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		s.reader.AppendHistory(line)
		_ = s.Execute(ctx, line)
	}
	return nil
}

func (s *Shell) leave(ctx context.Context) error {
	if _, ok := s.reg.Lookup("exit"); !ok || !s.session.Running() {
		return nil
	}
	_ = s.Execute(ctx, "exit")
	return nil
}

// Execute dispatches one line and runs whatever its hooks queued. Ctrl-C
// while it runs cancels the context handed to the hooks. Problems are
// printed and also returned.
func (s *Shell) Execute(ctx context.Context, line string) error {
	tokens, err := Tokenize(line)
	if err != nil {
		s.Report(err)
		return err
	}
	return s.Dispatch(ctx, tokens)
}

// Dispatch runs already split tokens the way Execute runs a line.
func (s *Shell) Dispatch(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	s.logger.Debug("shell: dispatch %q", tokens)
	if err := s.reg.Dispatch(ctx, tokens); err != nil {
		s.session.Reset()
		s.Report(err)
		return err
	}
	if err := s.session.Flush(ctx); err != nil {
		var ue *usage.Error
		if !errors.As(err, &ue) {
			err = usage.Hook(strings.Join(tokens, " "), err)
		}
		s.Report(err)
		return err
	}
	return nil
}

// Report prints err with the usage line of the command that raised it.
func (s *Shell) Report(err error) {
	if errors.Is(err, context.Canceled) {
		s.logger.Info("shell: %v", err)
		_, _ = fmt.Fprintln(s.out, s.styler.Warning("canceled"))
		return
	}

	s.logger.Warn("shell: %v", err)
	_, _ = fmt.Fprintln(s.out, s.styler.Error("error: "+err.Error()))

	var ue *usage.Error
	if errors.As(err, &ue) && ue.Usage != "" {
		_, _ = fmt.Fprintln(s.out, s.styler.Muted("usage: "+ue.Usage))
	}
}
