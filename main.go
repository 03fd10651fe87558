// Package main is the entry point for the railsbp CLI.
package main

import "railsbp.dev/pkg/railsbp/cmd"

func main() {
	cmd.Execute()
}
