package main

import "lexy/internal/cli"

func main() {
	cli.Execute()
}
