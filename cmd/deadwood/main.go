package main

import "github.com/deadwoodhq/deadwood/internal/cli"

func main() {
	cli.Execute()
}
