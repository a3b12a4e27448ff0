// Package cli handles command-line argument parsing for the filepickgo
// binary.
package cli
