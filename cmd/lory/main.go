package main

import (
	"github.com/lorylang/lory/pkg/cli"
)

func main() {
	cli.Run()
}
