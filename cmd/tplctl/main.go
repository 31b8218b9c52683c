package main

import (
	"github.com/tacogips/tplctl/internal/cli"
)

func main() {
	cli.Execute()
}
