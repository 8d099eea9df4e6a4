package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	cli "github.com/blimu-dev/openapi-swift/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:           "swiftgen",
		Short:         "Generate Swift API descriptions from OpenAPI documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Println(err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var params cli.GenerateParams

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Swift source file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Stdout = cmd.OutOrStdout()
			params.Stderr = cmd.ErrOrStderr()
			return cli.RunGenerate(cmd.Context(), params)
		},
	}
	cmd.Flags().AddFlagSet(cli.GenerateFlags(&params))

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunValidate(cmd.Context(), input, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI document, file or http(s) URL (yaml/json)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
