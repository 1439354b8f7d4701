package main

import "github.com/vyper-tools/vyperdoc/internal/cli"

func main() {
	cli.Execute()
}
