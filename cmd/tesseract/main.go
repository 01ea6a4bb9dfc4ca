package main

import (
	"os"

	"github.com/example/tesseract/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stderr))
}
