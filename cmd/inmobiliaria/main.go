package main

import (
	"context"
	"fmt"
	"os"

	"inmobiliaria/internal/cli"
)

// @title Inmobiliaria API
// @version 1.0
// @description Catálogo de inmuebles, blog y contactos.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
