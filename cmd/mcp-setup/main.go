package main

import "github.com/agentregistry-dev/mcp-setup/pkg/cli"

func main() {
	cli.Execute()
}
