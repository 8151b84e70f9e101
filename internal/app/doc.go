// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run pipeline (load, validate, replay,
// report, export), decoupled from any specific entrypoint like a CLI.
package app
