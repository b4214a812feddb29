package main

import "github.com/atomicstack/tav/internal/cli"

func main() {
	cli.Execute()
}
