// Package main is the entry point for the nodebug CLI.
package main

import "nodebug.dev/pkg/nodebug/cmd"

func main() {
	cmd.Execute()
}
