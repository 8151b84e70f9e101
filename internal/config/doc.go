// Package config loads the optional HCL configuration file. The file
// carries the same settings as the CLI flags; explicit flags always win
// over file values. Config expressions may reference the process
// environment through the `env` object, e.g. `output = "${env.HOME}/runs"`.
package config
