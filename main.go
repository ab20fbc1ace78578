package main

import "github.com/agentic-research/folio/cmd"

func main() {
	cmd.Execute()
}
