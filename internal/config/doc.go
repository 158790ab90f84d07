// Package config loads logpipe settings.
//
// # Sources
//
// Settings are layered, later sources winning:
//
//  1. Built-in defaults (see Default)
//  2. The TOML file given by --config, or ~/.config/logpipe/config.toml
//  3. LOGPIPE_* environment variables
//  4. Flags set explicitly on the command line (applied by the caller)
//
// A missing config file is not an error; logpipe works without one.
//
// # TOML Format
//
//	log_level = "warn"
//
//	[augment]
//	append_hostname = true
//	append_instance_id = false
//	exclude_orphans = false
//
//	[pretty]
//	output_format = "pretty"   # or "json"
//	use_colors = "auto"        # "always" or "never"
//	filter = "context.logLevel:^50$"
//	head = 2
//	lag = 2
//
// # Environment
//
//	LOGPIPE_LOG_LEVEL, LOGPIPE_APPEND_HOSTNAME, LOGPIPE_APPEND_INSTANCE_ID,
//	LOGPIPE_EXCLUDE_ORPHANS, LOGPIPE_OUTPUT_FORMAT, LOGPIPE_USE_COLORS,
//	LOGPIPE_FILTER, LOGPIPE_HEAD, LOGPIPE_LAG
//
// # Path Expansion
//
// The config path may start with "~", which expands to the user's home
// directory. Relative paths resolve against the working directory.
//
// Load only validates what it owns (TOML syntax, environment value types,
// non-negative head/lag). Output format and color mode names are validated by
// the render package when the command is built.
package config
