package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"storefront-gateway/internal/app"
	"storefront-gateway/internal/surface"
)

func main() {
	if err := app.Run(surface.NameExternal); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
