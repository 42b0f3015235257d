package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//go:generate swag init -g main.go -d ./,../../internal/handlers,../../internal/dto -o ../docs

// @title Survey Workspace API
// @version 1.0
// @description Workspaces, invitations, membership and survey access.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "survey_backend",
		Short:         "Survey workspace backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newWorkerCmd(), newMigrateCmd())
	return root
}
