package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AlibekovAA/task-manager/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "taskd: %v\n", err)
		os.Exit(1)
	}
}
