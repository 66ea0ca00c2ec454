package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/uitheme"
	"github.com/yacobolo/uitheme/internal/pipeline"
	"github.com/yacobolo/uitheme/internal/prefix"
	"github.com/yacobolo/uitheme/internal/transforms"
	"github.com/yacobolo/uitheme/internal/translog"
)

const defaultConfigPath = ".uitheme.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set).
	// Unset flags are skipped so their defaults never shadow config keys
	// stored under a different name.
	if err := k.Load(posflag.ProviderWithFlag(cmd.Flags(), ".", k, changedFlag(cmd.Flags())), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

func changedFlag(fs *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (UITHEME_* prefix)
	if err := k.Load(env.Provider("UITHEME_", ".", func(s string) string {
		// UITHEME_TRANSFORM_SRC -> transform.src
		// UITHEME_LOG_DIR -> log.dir
		// UITHEME_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "UITHEME_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildTransformConfig constructs the library's Config struct from koanf state.
func buildTransformConfig() (uitheme.Config, error) {
	config := uitheme.Config{
		SrcDir:            getStringWithFallback("src", "transform.src", "src"),
		OutDir:            getStringWithFallback("out", "transform.out", ""),
		Include:           getStringsWithFallback("include", "transform.include", pipeline.DefaultInclude),
		DryRun:            getBoolWithFallback("dry-run", "transform.dry-run", false),
		Diff:              getBoolWithFallback("diff", "transform.diff", false),
		Concurrency:       getIntWithFallback("concurrency", "transform.concurrency", 0),
		ExcludeTransforms: getStringsWithFallback("exclude", "transform.exclude", nil),
		Prefix:            getStringWithFallback("prefix", "transform.prefix", prefix.DefaultPrefix),
		UtilsImport:       getStringWithFallback("utils-import", "transform.utils-import", transforms.DefaultUtilsImport),
		Header:            getStringWithFallback("header", "transform.header", transforms.DefaultHeader),
		NocheckFiles:      getStringsWithFallback("nocheck", "transform.nocheck-files", transforms.DefaultNocheckFiles),
		LexicalRegions:    getBoolWithFallback("lexical-regions", "transform.lexical-regions", false),
		Debounce:          getDurationWithFallback("debounce", "transform.debounce", 200*time.Millisecond),
		LogDir:            getStringWithFallback("log-dir", "log.dir", translog.DefaultDir),
	}

	if k.Exists("transform.mappings") {
		if err := k.Unmarshal("transform.mappings", &config.Mappings); err != nil {
			return config, fmt.Errorf("invalid transform.mappings: %w", err)
		}
	}
	return config, nil
}

// buildAuditConfig returns the subset of Config the audit uses.
func buildAuditConfig() uitheme.Config {
	return uitheme.Config{
		SrcDir:         getStringWithFallback("src", "transform.src", "src"),
		Include:        getStringsWithFallback("include", "transform.include", pipeline.DefaultInclude),
		LexicalRegions: getBoolWithFallback("lexical-regions", "transform.lexical-regions", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getDurationWithFallback checks the flag key first, then the config file key, then returns the default.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if k.Exists(flagKey) {
		return k.Duration(flagKey)
	}
	if k.Exists(configKey) {
		return k.Duration(configKey)
	}
	return defaultVal
}

// outputFormat resolves the report format shared by transform and audit.
func outputFormat(quiet bool) uitheme.OutputFormat {
	return uitheme.DetermineOutputFormat(getStringWithFallback("output-format", "output-format", ""), quiet)
}
