package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"picshare/app/config"
	"picshare/service"

	"github.com/spf13/cobra"
)

const cliVersion = "1.0.0"

var exit = os.Exit

func main() {
	exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := newRootCommand(in, out, errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, service.ErrCancelled) {
			fmt.Fprintln(out, "Operation cancelled")
		} else {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "picshare",
		Short:         "Image sharing API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	config.RegisterFlags(root.PersistentFlags())

	loadConfig := func(cmd *cobra.Command) (*config.Config, error) {
		return config.Load(configPath, cmd.Flags())
	}
	maintenance := func(cmd *cobra.Command, force bool) (*service.Maintenance, error) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		return &service.Maintenance{
			DataDir:   cfg.DataDir,
			BackupDir: cfg.BackupDir,
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
			Force:     force,
		}, nil
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := service.NewLogger(cmd.ErrOrStderr(), cfg)

			srv, err := service.NewServer(cfg, logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := maintenance(cmd, false)
			if err != nil {
				return err
			}
			return m.Init()
		},
	}

	var cleanYes bool
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := maintenance(cmd, cleanYes)
			if err != nil {
				return err
			}
			return m.Clean()
		},
	}
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "do not ask for confirmation")

	backupCmd := &cobra.Command{
		Use:   "backup [file]",
		Short: "Write a full database backup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := maintenance(cmd, false)
			if err != nil {
				return err
			}
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			_, err = m.Backup(file)
			return err
		},
	}

	var restoreYes bool
	restoreCmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the database with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := maintenance(cmd, restoreYes)
			if err != nil {
				return err
			}
			return m.Restore(args[0])
		},
	}
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "do not ask for confirmation")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "picshare version %s\n", cliVersion)
		},
	}

	root.AddCommand(serveCmd, initCmd, cleanCmd, backupCmd, restoreCmd, versionCmd)
	return root
}
