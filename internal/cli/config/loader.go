package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	intconfig "github.com/leapstack-labs/incantata/internal/config"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// EnvPrefix is the prefix of environment variables read by the loader.
const EnvPrefix = "INCANTATA_"

// structureFlags are flags that configure the structure section. They
// map to "structure.<name>" keys.
var structureFlags = []string{
	"onset", "onset-dict", "onset-continue",
	"nucleus", "nucleus-dict", "nucleus-continue",
	"coda", "coda-dict", "coda-continue",
	"min-len", "suggested-len",
}

// ignoredFlags are flags that never become config keys.
var ignoredFlags = []string{"config", "help", "watch", "force", "history"}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// findConfigFile finds the config file to use.
// Priority: explicit path > incantata.yaml/yml searched upward from CWD
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return intconfig.FindConfigUpward(cwd, maxUpwardSearchLevels)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > profile > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	return LoadConfigWithProfile(cfgFile, "", flags)
}

// LoadConfigWithProfile loads configuration with an optional profile override.
// A non-empty profileOverride wins over the profile key of the config file.
func LoadConfigWithProfile(cfgFile string, profileOverride string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// Paths given as flags are relative to the CWD, not the project root.
	var flagFilter string
	if flags != nil && flags.Changed("filter") {
		if v, _ := flags.GetString("filter"); v != "" {
			flagFilter, _ = filepath.Abs(v)
		}
	}

	// 1. Load defaults
	defaults := map[string]any{
		"count":        DefaultCount,
		"seed":         0,
		"workers":      DefaultWorkers,
		"output":       DefaultOutput,
		"verbose":      false,
		"capitalize":   false,
		"hyphenate":    false,
		"filter":       "",
		"max_attempts": DefaultMaxAttempts,
		"profile":      "",
	}
	for key, v := range intconfig.StructureDefaults("structure") {
		defaults[key] = v
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	projectRoot, _ := os.Getwd()
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	// 3 and 4. Environment variables and flags
	if err := loadOverrides(flags); err != nil {
		return nil, err
	}

	// Apply the selected profile, then re-apply env vars and flags so they
	// keep precedence over it.
	profile := k.String("profile")
	if profileOverride != "" {
		profile = profileOverride
	}
	if profile != "" {
		if err := applyProfile(profile); err != nil {
			return nil, err
		}
		if err := loadOverrides(flags); err != nil {
			return nil, err
		}
		_ = k.Set("profile", profile)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				intconfig.DictionaryHook(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			WeaklyTypedInput: true,
			TagName:          "koanf",
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Resolve the filter path relative to the project root
	cfg.ProjectRoot = projectRoot
	if flagFilter != "" {
		cfg.Filter = flagFilter
	} else {
		cfg.Filter = resolvePathRelativeTo(expandEnvVars(cfg.Filter), projectRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// loadOverrides loads environment variables and explicitly set flags.
func loadOverrides(flags *pflag.FlagSet) error {
	// Transform: INCANTATA_COUNT -> count, INCANTATA_STRUCTURE__MIN_LEN -> structure.min_len
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags == nil {
		return nil
	}
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		// Only load flags that were explicitly set
		if !f.Changed || slices.Contains(ignoredFlags, f.Name) {
			return "", nil
		}
		return flagKey(f.Name), posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("failed to load flags: %w", err)
	}
	return nil
}

// flagKey maps a kebab-case flag name to its config key.
func flagKey(name string) string {
	key := strings.ReplaceAll(name, "-", "_")
	if slices.Contains(structureFlags, name) {
		return "structure." + key
	}
	return key
}

// applyProfile merges profiles.<name> over the loaded config.
func applyProfile(name string) error {
	path := "profiles." + name
	if !k.Exists(path) {
		available := k.MapKeys("profiles")
		if len(available) == 0 {
			return fmt.Errorf("unknown profile %q: no profiles are configured", name)
		}
		return fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(available, ", "))
	}
	if err := k.Merge(k.Cut(path)); err != nil {
		return fmt.Errorf("failed to apply profile %q: %w", name, err)
	}
	return nil
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig or LoadConfigWithProfile is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
