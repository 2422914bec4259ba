package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/iliyamo/flavor-house/internal/cli"
)

func main() {
	_ = godotenv.Load()
	if err := cli.NewRootCommand(cli.OpenDatabase).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "flavorctl:", err)
		os.Exit(1)
	}
}
