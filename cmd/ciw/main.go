package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/ciwatch/cli/pkg/cmd/root"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := factory.New(version)

	rootCmd, err := root.NewCmdRoot(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cierrors.ExitCodeGenericError
	}

	return cierrors.ExecuteWithErrorHandling(ctx, rootCmd, func() bool {
		return f.Viper.GetBool(factory.KeyDebug)
	})
}
