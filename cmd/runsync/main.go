package main

import "github.com/claude/runsync/internal/cmd"

func main() {
	cmd.Execute()
}
