// Package output renders command results and notices for trailguard-cli.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned tables, Tabler for types that know their columns
//   - json.go, yaml.go: machine-readable output
//   - printer.go: Printer bundling a formatter with styled notices
//   - spinner.go: progress animation for slow calls
package output
