// Package cli implements the tessera-gen command-line interface.
//
// Each command is built by a constructor (newPushCmd, newRenderCmd, ...)
// that owns its options struct, so tests can run a fresh command tree with
// newRootCmd. The commands share one pipeline:
//
//  1. Load the config file (internal/config) and merge it with the
//     environment and flags.
//  2. Resolve the node groups, from the file or stdin (internal/nodes).
//  3. Build and check the dashboard document (internal/dashboard).
//  4. Send it through the Tessera API (internal/tessera), or print it.
//
// # Command Structure
//
//	tessera-gen push [-]    - Create or replace a dashboard
//	tessera-gen render [-]  - Print the dashboard definition
//	tessera-gen list        - List dashboards on the server
//	tessera-gen init [path] - Write an example config
//
// # Flag Handling
//
// Global flags (--config-file, --tessera-url, --verbose, --no-color,
// --timeout) are persistent flags on the root command. Metadata overrides
// (--title, --layout, ...) are added with AddMetadataFlags and only win
// over the config file when set.
package cli
