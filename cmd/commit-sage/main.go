// Command commit-sage generates a Conventional Commits message for the
// pending changes in a git repository using a Together.ai completion model,
// and optionally creates the commit.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BonnardValentin/commit-sage/internal/completion"
	"github.com/BonnardValentin/commit-sage/internal/config"
	"github.com/BonnardValentin/commit-sage/internal/conventional"
	"github.com/BonnardValentin/commit-sage/internal/erruser"
	"github.com/BonnardValentin/commit-sage/internal/generate"
	"github.com/BonnardValentin/commit-sage/internal/git"
	"github.com/BonnardValentin/commit-sage/internal/logging"
	"github.com/BonnardValentin/commit-sage/internal/prompt"
	"github.com/BonnardValentin/commit-sage/internal/together"
	"github.com/BonnardValentin/commit-sage/internal/version"
)

func main() {
	os.Exit(Run())
}

// Run is the CLI entry point, exported for tests.
func Run() int {
	return runCLI(os.Args[1:])
}

func runCLI(args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if u := errors.Unwrap(err); u != nil {
			fmt.Fprintf(os.Stderr, "Details: %v\n", u)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "commit-sage",
		Short:   "Smart git commit message generator using AI",
		Version: version.String(),
		RunE:    runRoot,
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	f := cmd.Flags()
	f.StringP("path", "p", "", "Path to the git repository (defaults to current directory)")
	f.StringP("api-key", "k", "", "Together.ai API key (defaults to $"+config.EnvAPIKey+")")
	f.StringP("model", "m", "", "AI model to use")
	f.Float64P("temperature", "t", 0.3, "Temperature for model output (0.0 to 1.0)")
	f.Int("max-tokens", 100, "Maximum tokens in response")
	f.BoolP("untracked", "u", false, "Include untracked files in diff")
	f.BoolP("show-diff", "s", false, "Show diff before generating commit message")
	f.BoolP("auto-commit", "a", false, "Automatically commit with generated message")
	f.Bool("no-verify", false, "Skip commit message format verification")
	f.BoolP("yes", "y", false, "Skip user confirmation")
	f.StringP("config", "f", "", "Path to custom configuration file")
	f.BoolP("list-models", "l", false, "List available models")
	f.BoolP("debug", "d", false, "Enable debug logging")
	return cmd
}

func runRoot(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if listModels, _ := cmd.Flags().GetBool("list-models"); listModels {
		fmt.Fprintln(out, "Available models:")
		for _, m := range config.AvailableModels {
			fmt.Fprintf(out, "  %s - %s\n", m.Name, m.Description)
		}
		return nil
	}

	// A .env next to the working directory may carry the API key.
	_ = godotenv.Load()

	debug, _ := cmd.Flags().GetBool("debug")
	logger := logging.New(debug)
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger.Info("opening git repository", zap.String("path", cfg.Git.RepoPath))
	repo, err := git.Open(ctx, cfg.Git.RepoPath, cfg.Git.IncludeUntracked)
	if err != nil {
		return err
	}

	hasChanges, err := repo.HasChanges(ctx)
	if err != nil {
		return err
	}
	if !hasChanges {
		return noChangesErr()
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = os.Getenv(config.EnvAPIKey)
	}
	if apiKey == "" {
		return erruser.New("API key not provided. Set "+config.EnvAPIKey+" or use --api-key.", nil)
	}

	logger.Info("reading pending diff")
	diff, err := repo.Diff(ctx)
	if err != nil {
		if errors.Is(err, git.ErrNoChanges) {
			return noChangesErr()
		}
		return err
	}
	if cfg.Git.ShowDiff {
		fmt.Fprintf(out, "\nChanges to be committed:\n%s\n", diff)
	}

	provider := together.NewClient(cfg.AI.BaseURL, apiKey, cfg.AI.Model, nil)
	builder := prompt.Builder{
		System:       cfg.AI.SystemPrompt,
		UserTemplate: cfg.AI.UserPromptTemplate,
	}
	opts := completion.Options{
		Temperature:   cfg.AI.Temperature,
		MaxTokens:     cfg.AI.MaxTokens,
		StopSequences: cfg.AI.StopSequences,
	}
	gen := generate.New(provider, generate.Config{
		Options: &opts,
		Prompt:  &builder,
		Logger:  logger,
	})

	logger.Info("generating commit message", zap.String("model", cfg.AI.Model))
	message, err := gen.Generate(ctx, diff)
	if err != nil {
		return erruser.New("Failed to generate a commit message.", err)
	}

	// Callers can re-verify independently; --no-verify skips this check.
	if cfg.Commit.VerifyFormat && !conventional.IsConventional(message) {
		return erruser.New("Generated message does not follow the conventional commit format.", nil)
	}

	fmt.Fprintf(out, "\nSuggested commit message:\n%s\n", message)

	if !cfg.Commit.AutoCommit {
		return nil
	}
	if cfg.Commit.RequireConfirmation {
		ok, err := confirm(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Commit aborted.")
			return nil
		}
	}
	logger.Info("committing changes")
	if err := repo.Commit(ctx, message); err != nil {
		return err
	}
	fmt.Fprintln(out, "Changes committed successfully!")
	return nil
}

// loadConfig reads the config file (when given) over defaults, then layers
// explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()

	cfg := config.Default()
	if path, _ := f.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if f.Changed("path") {
		cfg.Git.RepoPath, _ = f.GetString("path")
	}
	if f.Changed("model") {
		cfg.AI.Model, _ = f.GetString("model")
	}
	if f.Changed("temperature") {
		cfg.AI.Temperature, _ = f.GetFloat64("temperature")
	}
	if f.Changed("max-tokens") {
		cfg.AI.MaxTokens, _ = f.GetInt("max-tokens")
	}
	if f.Changed("untracked") {
		cfg.Git.IncludeUntracked, _ = f.GetBool("untracked")
	}
	if f.Changed("show-diff") {
		cfg.Git.ShowDiff, _ = f.GetBool("show-diff")
	}
	if f.Changed("auto-commit") {
		cfg.Commit.AutoCommit, _ = f.GetBool("auto-commit")
	}
	if f.Changed("no-verify") {
		noVerify, _ := f.GetBool("no-verify")
		cfg.Commit.VerifyFormat = !noVerify
	}
	if f.Changed("yes") {
		yes, _ := f.GetBool("yes")
		cfg.Commit.RequireConfirmation = !yes
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func noChangesErr() error {
	return erruser.New("No changes to commit. Create or modify some files first.", nil)
}

// confirm asks the user whether to commit; "y" or "yes" (any case) accepts.
func confirm(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, "\nDo you want to commit with this message? [y/N] ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, erruser.New("Could not read confirmation.", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
