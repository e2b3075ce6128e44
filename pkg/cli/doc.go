// Package cli provides the command-line interface for compact.
//
// Commands:
//   - verify: Replay contract interactions against a running provider
//   - validate: Check contract files against the document schema and matching rules
//   - history: List, show and prune recorded verification runs
//   - config: Display effective configuration
//   - version: Show compact version
//
// Configuration is layered: defaults, the global config file, the local
// .compactrc.yaml (or --config), COMPACT_* environment variables and finally
// flags. See the cliconfig package.
package cli
