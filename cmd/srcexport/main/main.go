package main

import (
	"os"

	"github.com/arthur-debert/srcexport/cmd/srcexport"
)

func main() {
	os.Exit(srcexport.Run(os.Args[1:], os.Stdout, os.Stderr))
}
