// Package cli wires up the cobra command tree: init (the scaffolding
// pipeline), schema validate, and version. One file per command.
package cli
