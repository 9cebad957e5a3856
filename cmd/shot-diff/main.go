// Package main provides the entry point for the shot-diff CLI.
package main

// main is the entry point for shot-diff.
func main() {
	Execute()
}
