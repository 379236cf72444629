// Package ui renders tessera-gen's terminal output.
//
// It holds the color palette and status symbols, a spinner shown while the
// Tessera API is called, the dashboard picker used by "push --pick", the
// table printed by "list" and the one-line build summary.
//
// Use DisableColors() for monochrome output (--no-color).
package ui
