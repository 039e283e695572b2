// Package cli is the contentgen command line: one generator per run.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"contentgen/internal/action"
	"contentgen/internal/functions"
	"contentgen/internal/generation"
	"contentgen/internal/platform"
)

// Deps lets tests replace the outside world. Zero fields get real values.
type Deps struct {
	Invoker  generation.Invoker
	Platform action.Platform
	Stdout   io.Writer
	Stderr   io.Writer
}

type rootOptions struct {
	profilePath  string
	functionsURL string
	apiKey       string
	downloadDir  string
}

type genOptions struct {
	language string
	copy     bool
	download bool
	share    string
}

func NewRootCmd(deps Deps) *cobra.Command {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	ro := &rootOptions{}

	root := &cobra.Command{
		Use:           "contentgen",
		Short:         "Generate images, text and code from a prompt",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&ro.profilePath, "profile", "", "Profile YAML (default: "+DefaultProfilePath()+")")
	root.PersistentFlags().StringVar(&ro.functionsURL, "functions-url", "", "Base URL of the generation service")
	root.PersistentFlags().StringVar(&ro.apiKey, "api-key", "", "API key for the generation service")
	root.PersistentFlags().StringVar(&ro.downloadDir, "download-dir", "", "Directory for downloaded images")

	for _, kind := range generation.Kinds {
		root.AddCommand(newGenerateCmd(kind, ro, &deps))
	}
	return root
}

func newGenerateCmd(kind generation.Kind, ro *rootOptions, deps *Deps) *cobra.Command {
	opts := &genOptions{}
	cmd := &cobra.Command{
		Use:   kind.String() + " <prompt...>",
		Short: "Generate " + kind.String() + " from a prompt",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), kind, strings.Join(args, " "), ro, opts, deps)
		},
	}
	if kind == generation.KindCode {
		cmd.Flags().StringVar(&opts.language, "language", "", "Target language (default: "+generation.DefaultLanguage+")")
	}
	if action.SupportsDownload(kind) {
		cmd.Flags().BoolVar(&opts.download, "download", false, "Save the image to the download directory")
	}
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the result to the clipboard")
	if targets := action.ShareTargets(kind); len(targets) > 0 {
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = string(t)
		}
		cmd.Flags().StringVar(&opts.share, "share", "", "Open a share page: "+strings.Join(names, ", "))
	}
	return cmd
}

func runGenerate(ctx context.Context, kind generation.Kind, prompt string, ro *rootOptions, opts *genOptions, deps *Deps) error {
	if ctx == nil {
		ctx = context.Background()
	}
	profile, err := LoadProfile(firstNonEmpty(ro.profilePath, DefaultProfilePath()), ro.profilePath != "")
	if err != nil {
		return err
	}

	invoker := deps.Invoker
	if invoker == nil {
		client, err := functions.NewClient(functions.ClientConfig{
			BaseURL: firstNonEmpty(ro.functionsURL, os.Getenv("FUNCTIONS_URL"), profile.FunctionsURL),
			APIKey:  firstNonEmpty(ro.apiKey, os.Getenv("FUNCTIONS_API_KEY"), profile.APIKey),
		})
		if err != nil {
			return err
		}
		invoker = client
	}
	plat := deps.Platform
	if plat == nil {
		plat = platform.NewTerminal(os.Stdout, firstNonEmpty(ro.downloadDir, profile.DownloadDir, "."))
	}
	notifier := noticePrinter{w: deps.Stderr, color: isTerminal(deps.Stderr)}

	g, err := generation.New(kind, invoker, notifier)
	if err != nil {
		return err
	}
	defer g.Close()

	if err := g.Input().SetText(prompt); err != nil {
		return err
	}
	if kind == generation.KindCode {
		if lang := firstNonEmpty(opts.language, profile.Language); lang != "" {
			if err := g.Input().SetLanguage(lang); err != nil {
				return fmt.Errorf("language %q: %w", lang, err)
			}
		}
	}

	st, err := g.Generate(ctx)
	if err != nil {
		return err
	}
	result, ok := st.Result()
	if !ok {
		return fmt.Errorf("generate %s: no result", kind)
	}
	fmt.Fprintln(deps.Stdout, result.Text())

	panel := action.NewPanel(g, plat, notifier)
	if opts.copy {
		if err := panel.Copy(ctx); err != nil {
			return err
		}
	}
	if opts.download {
		if err := panel.Download(ctx); err != nil {
			return err
		}
	}
	if opts.share != "" {
		target, err := action.ParseTarget(opts.share)
		if err != nil {
			return err
		}
		if err := panel.Share(ctx, target); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCmd(Deps{})
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if !reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// reported reports whether err was already shown to the user as a notice.
func reported(err error) bool {
	return errors.Is(err, generation.ErrEmptyPrompt) ||
		generation.IsTransportError(err) ||
		generation.IsApplicationError(err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
