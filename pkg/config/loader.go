package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotfiler/pkg/errors"
	"github.com/arthur-debert/dotfiler/pkg/logging"
	"github.com/arthur-debert/dotfiler/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides, e.g. DOTFILER_FILTERING_USE_GITIGNORE
const EnvPrefix = "DOTFILER_"

// userConfigNames are tried in order inside the user config directory
var userConfigNames = []string{"config.toml", "config.yaml", "config.yml"}

// LoadOptions selects the files Load reads
type LoadOptions struct {
	// UserConfigDir holds config.toml/.yaml; empty uses paths.ConfigDir()
	UserConfigDir string
	// SourceDir is searched for .dotfiler.toml; empty falls back to
	// linking.source_dir from the other layers
	SourceDir string
	// ConfigFile is an explicit file that must exist when set
	ConfigFile string
	// SkipEnv disables DOTFILER_* environment overrides
	SkipEnv bool
	// Overrides are dotted keys applied last, e.g. from command line flags
	Overrides map[string]interface{}
}

// Default returns the embedded defaults, normalized
func Default() *Config {
	cfg, err := Load(LoadOptions{UserConfigDir: os.DevNull, SkipEnv: true})
	if err != nil {
		cfg = &Config{}
		cfg.Filtering.IgnoreFile = ".dotfilerignore"
		cfg.Linking.AddDotPrefix = true
		cfg.Backup.Enabled = true
		cfg.Normalize()
	}
	return cfg
}

// Load reads and merges every configuration layer
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	userDir := opts.UserConfigDir
	if userDir == "" {
		userDir = paths.ConfigDir()
	}
	userFile := findUserConfig(userDir)

	// The source directory may itself be configured, so resolve it from
	// every layer except the source config before loading that one.
	sourceDir := opts.SourceDir
	if sourceDir == "" {
		k, _, err := buildKoanf(userFile, "", opts)
		if err != nil {
			return nil, err
		}
		sourceDir = k.String("linking.source_dir")
	}

	sourceFile := ""
	if sourceDir != "" {
		home, _ := paths.HomeDirectory()
		candidate := paths.Paths{Source: paths.ExpandHome(sourceDir, home)}.SourceConfigPath()
		if fileExists(candidate) {
			sourceFile = candidate
		}
	}

	k, files, err := buildKoanf(userFile, sourceFile, opts)
	if err != nil {
		return nil, err
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to unmarshal configuration")
	}

	cfg.Normalize()
	cfg.Files = files

	logger.Debug().
		Strs("files", files).
		Strs("include", cfg.Filtering.Include).
		Strs("exclude", cfg.Filtering.Exclude).
		Str("ignoreFile", cfg.Filtering.IgnoreFile).
		Bool("useGitignore", cfg.Filtering.UseGitignore).
		Msg("Configuration loaded")

	return &cfg, nil
}

// buildKoanf loads the layers in precedence order and returns the files read.
// Overrides take precedence over the environment.
func buildKoanf(userFile, sourceFile string, opts LoadOptions) (*koanf.Koanf, []string, error) {
	k := koanf.New(".")
	var files []string

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	for _, path := range []string{userFile, sourceFile} {
		if path == "" {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, nil, err
		}
		files = append(files, path)
	}

	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return nil, nil, errors.Newf(errors.ErrConfigLoad, "config file %s not found", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, nil, err
		}
		files = append(files, opts.ConfigFile)
	}

	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return k, files, nil
}

// loadFile parses path as YAML when its extension says so, TOML otherwise
func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

// envKey maps DOTFILER_FILTERING_USE_GITIGNORE to filtering.use_gitignore.
// Variables without a section, like DOTFILER_HOME, are skipped.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(s, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

func findUserConfig(dir string) string {
	for _, name := range userConfigNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
