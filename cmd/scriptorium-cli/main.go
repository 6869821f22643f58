package main

import "scriptorium/cmd/scriptorium-cli/cmd"

func main() {
	cmd.Execute()
}
