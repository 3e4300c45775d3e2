// Package cmd implements the jots command-line interface.
package cmd
