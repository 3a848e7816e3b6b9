// cmd/privatemut/main.go
package main

import (
	"os"

	"github.com/bgruening/nextclade/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdout, os.Stderr))
}
