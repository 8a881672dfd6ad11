// Package config provides commit-sage configuration: TOML file loading over
// built-in defaults, validation, and the curated Together.ai model catalog.
//
// Precedence is CLI flags > config file > defaults; flag merging happens in
// the command layer, file-over-defaults merging here.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/BonnardValentin/commit-sage/internal/conventional"
	"github.com/BonnardValentin/commit-sage/internal/erruser"
	"github.com/BonnardValentin/commit-sage/internal/prompt"
)

// EnvAPIKey is the environment variable holding the Together.ai API key when
// it is not passed as a flag. Loaded after godotenv so a .env file works.
const EnvAPIKey = "TOGETHER_API_KEY"

// Config holds all commit-sage configuration.
type Config struct {
	AI     AIConfig     `toml:"ai"`
	Git    GitConfig    `toml:"git"`
	Commit CommitConfig `toml:"commit"`
}

// AIConfig configures the completion request.
type AIConfig struct {
	// Model is the Together.ai model identifier.
	Model string `toml:"model"`
	// BaseURL overrides the API root; empty means the Together.ai default.
	BaseURL string `toml:"base_url"`
	// Temperature for model output (0.0 to 1.0).
	Temperature float64 `toml:"temperature"`
	// MaxTokens bounds the response size.
	MaxTokens int `toml:"max_tokens"`
	// StopSequences end generation early; the default stops at newline.
	StopSequences []string `toml:"stop_sequences"`
	// SystemPrompt and UserPromptTemplate override the built-in prompts.
	// The template receives the classification summary and the diff, in
	// that order, via %s placeholders.
	SystemPrompt       string `toml:"system_prompt"`
	UserPromptTemplate string `toml:"user_prompt_template"`
}

// GitConfig configures repository access.
type GitConfig struct {
	RepoPath         string `toml:"repo_path"`
	IncludeUntracked bool   `toml:"include_untracked"`
	ShowDiff         bool   `toml:"show_diff"`
}

// CommitConfig configures commit creation and verification.
type CommitConfig struct {
	AllowedTypes        []string `toml:"allowed_types"`
	MaxLength           int      `toml:"max_length"`
	AutoCommit          bool     `toml:"auto_commit"`
	VerifyFormat        bool     `toml:"verify_format"`
	RequireConfirmation bool     `toml:"require_confirmation"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AI: AIConfig{
			Model:              "mistralai/Mixtral-8x7B-Instruct-v0.1",
			Temperature:        0.3,
			MaxTokens:          100,
			StopSequences:      []string{"\n"},
			SystemPrompt:       prompt.DefaultSystemPrompt,
			UserPromptTemplate: prompt.DefaultUserTemplate,
		},
		Git: GitConfig{
			RepoPath:         ".",
			IncludeUntracked: true,
			ShowDiff:         false,
		},
		Commit: CommitConfig{
			AllowedTypes:        append([]string(nil), conventional.Types...),
			MaxLength:           72,
			AutoCommit:          false,
			VerifyFormat:        true,
			RequireConfirmation: true,
		},
	}
}

// Load reads a TOML config file over the defaults: keys absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, erruser.Newf(err, "Could not read config file %s.", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, erruser.Newf(err, "Could not parse config file %s.", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges. It is called by Load and again by the command
// layer after flag overrides.
func (c Config) Validate() error {
	if c.AI.Model == "" {
		return erruser.New("A model name is required.", nil)
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 1 {
		return erruser.Newf(nil, "Invalid temperature %.2f; use 0.0 to 1.0.", c.AI.Temperature)
	}
	if c.AI.MaxTokens <= 0 {
		return erruser.New("max_tokens must be positive.", nil)
	}
	if c.Commit.MaxLength <= 0 {
		return erruser.New("commit max_length must be positive.", nil)
	}
	return nil
}

// Model is one entry of the curated model catalog shown by --list-models.
type Model struct {
	Name        string
	Description string
}

// AvailableModels lists Together.ai models known to work well for commit
// message generation.
var AvailableModels = []Model{
	{"mistralai/Mixtral-8x7B-Instruct-v0.1", "Best overall performance, recommended default"},
	{"meta-llama/Llama-2-70b-chat-hf", "Excellent for detailed analysis"},
	{"mistralai/Mistral-7B-Instruct-v0.2", "Fast and efficient"},
	{"NousResearch/Nous-Hermes-2-Mixtral-8x7B-DPO", "Optimized for coding tasks"},
	{"openchat/openchat-3.5-0106", "Good balance of performance and speed"},
}
