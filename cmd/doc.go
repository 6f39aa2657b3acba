// Package cmd implements the command-line interface for outlook-chatgpt-addin.
//
// This package provides the following commands:
//   - serve: Serve the add-in over HTTPS for sideloading into Outlook
//   - generate-icons: Write icon-<size>.png files for the manifest
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
// Every command loads .env.local and .env (or --env-file) before running.
package cmd
