// Package main hosts the aiint CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the model client and
// structured logger, and hands the work to the internal packages: detect and
// route call the model, health probes the server, history reads the run
// journal, and config scaffolds or checks the TOML file.
//
// Results go to stdout (a table by default, JSON with --json); logs and
// progress go to stderr.
package main
