package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/previoip/srcds-resource-manager/internal/actions"
	"github.com/previoip/srcds-resource-manager/internal/app"
	"github.com/previoip/srcds-resource-manager/internal/cli"
	"github.com/previoip/srcds-resource-manager/internal/dispatchers"
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/manifest"
	"github.com/previoip/srcds-resource-manager/internal/paths"
	"github.com/previoip/srcds-resource-manager/internal/shell"
	"github.com/previoip/srcds-resource-manager/internal/tree"
	"github.com/previoip/srcds-resource-manager/internal/usage"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code. Usage
// errors were already reported by the shell and only pick the code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var ue *usage.Error
	if errors.As(err, &ue) {
		return ue.GetExitCode()
	}
	_, _ = fmt.Fprintln(stderr, "error: "+err.Error())
	return 1
}

type program struct {
	flags cli.Flags
	out   io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	p := &program{out: out}

	root := &cobra.Command{
		Use:           cli.Prog,
		Short:         "Manage an SRCDS resource manifest",
		Long:          "srcdsrm edits a manifest of server plugins and workshop addons and installs them.\nWithout a subcommand it starts an interactive shell.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.shell(cmd.Context())
		},
	}
	p.flags.Bind(root)

	root.AddCommand(p.execCmd(), p.treeCmd(), versionCmd())
	return root
}

func (p *program) execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command...> [; <command...>]",
		Short: "Run shell commands without the prompt",
		Long:  "Run one or more shell command lines separated by a lone ';', stopping at the first failure.\nExample: srcdsrm exec exclude plugin 2 \\; save",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.exec(cmd.Context(), args)
		},
	}
}

func (p *program) treeCmd() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the command tree",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			reg := cli.BuildTree(cli.Deps{})
			var opts []tree.RenderOption
			if depth > 0 {
				opts = append(opts, tree.MaxDepth(depth))
			}
			_, err := fmt.Fprint(p.out, reg.Render(reg.Root(), opts...))
			return err
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "Levels to draw below the root (0 draws all)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return actions.ShowVersion()
		},
	}
}

// env is everything one shell needs, built by boot.
type env struct {
	app      *domain.Application
	docs     *manifest.Manager
	terminal *shell.Terminal
	reg      *dispatchers.Registry
	sh       *shell.Shell
}

// boot loads the configuration, opens the manifest and builds the shell on
// a terminal that keeps its history at historyPath.
func (p *program) boot(historyPath string) (*env, error) {
	application, err := app.New(app.Options{
		ConfigPath:    p.flags.ConfigPath,
		PagerDisabled: p.flags.NoPager,
		NoColor:       p.flags.NoColor,
		LogLevel:      p.flags.LogLevel,
		Output:        p.out,
	})
	if err != nil {
		return nil, err
	}

	appinfo := p.flags.Appinfo
	if appinfo == "" {
		appinfo, _ = application.Config.Get("appinfo")
	}
	docs := manifest.NewManager(application.Logger)
	if _, err := docs.Open(appinfo); err != nil {
		_ = app.Close(application)
		return nil, fmt.Errorf("open appinfo: %w", err)
	}

	terminal := shell.NewTerminal(historyPath)
	application.Prompter = shell.NewPrompter(terminal)

	session := actions.NewSession()
	reg := cli.BuildTree(cli.NewDeps(application, docs, session), dispatchers.WithLogger(application.Logger))
	terminal.EnableCompletion(reg)

	sh := shell.New(reg, session, terminal,
		shell.WithOutput(p.out),
		shell.WithStyler(application.Styler),
		shell.WithLogger(application.Logger),
	)

	application.Logger.Info("boot: appinfo=%s", docs.Path())
	return &env{app: application, docs: docs, terminal: terminal, reg: reg, sh: sh}, nil
}

func (e *env) Close() error {
	_ = e.terminal.Close()
	return app.Close(e.app)
}

func (p *program) shell(ctx context.Context) error {
	e, err := p.boot(paths.HistoryFilePath())
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	_, _ = fmt.Fprint(p.out, e.reg.HelpText(e.reg.Root()))
	return e.sh.Run(ctx)
}

func (p *program) exec(ctx context.Context, args []string) error {
	e, err := p.boot("")
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	for _, line := range splitLines(args) {
		if err := e.sh.Dispatch(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// splitLines cuts args at every lone ";" and drops empty lines.
func splitLines(args []string) [][]string {
	var (
		lines [][]string
		cur   []string
	)
	for _, a := range args {
		if a == ";" {
			if len(cur) > 0 {
				lines = append(lines, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, a)
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}
