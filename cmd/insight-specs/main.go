package main

import "insight-specs/internal/cli"

func main() {
	cli.Execute()
}
