// Package config loads dotfiler's configuration.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file in $XDG_CONFIG_HOME/dotfiler (config.toml, config.yaml or config.yml)
//  3. .dotfiler.toml in the source directory
//  4. an explicit file passed with --config
//  5. DOTFILER_<SECTION>_<KEY> environment variables
//
// Lists replace rather than append: a user `include` list replaces the
// default one. Load normalizes the result so the filter always receives
// well-formed options.
package config
