package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vit0-9/registrar_api/pkg/config"
	"github.com/vit0-9/registrar_api/pkg/namecheap"
	"github.com/vit0-9/registrar_api/pkg/registration"
)

type cliOptions struct {
	configPath string
	envFile    string
}

type usageError struct {
	err error
	cmd *cobra.Command
}

func (e *usageError) Error() string { return e.err.Error() }

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "registrar-api",
		Short:         "HTTP API for checking and registering domains through Namecheap",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(opts.envFile); err != nil {
				log.Println("WARN: Error loading .env file, using environment variables from system if set.")
			}
		},
		// No subcommand means serve.
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, opts, 0)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err, cmd: cmd}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a YAML config file (default config.yaml or $"+config.EnvConfigPath+")")
	pf.StringVar(&opts.envFile, "env-file", ".env", "Path to a dotenv file loaded before reading the environment")

	root.AddCommand(newServeCmd(opts), newCheckCmd(opts), newVersionCmd())
	return root
}

func newServeCmd(opts *cliOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, opts, port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides PORT and the config file)")
	return cmd
}

func serve(cmd *cobra.Command, opts *cliOptions, port int) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	registrar, err := newRegistrar(cfg)
	if err != nil {
		return err
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	app, err := NewApp(cfg, registrar, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Start(cmd.Context(), cfg.Addr())
}

func newCheckCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check domain [domain...]",
		Short: "Check domain availability against the registrar and print JSON",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &usageError{err: fmt.Errorf("at least one domain is required"), cmd: cmd}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			registrar, err := newRegistrar(cfg)
			if err != nil {
				return err
			}

			results, err := registration.NewService(registrar).CheckAvailability(cmd.Context(), args)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "registrar-api %s (%s) %s/%s\n", config.Version, config.GitCommit, runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newRegistrar(cfg *config.Config) (*namecheap.Client, error) {
	return namecheap.NewClient(namecheap.Options{
		APIUser:  cfg.Namecheap.APIUser,
		APIKey:   cfg.Namecheap.APIKey,
		Username: cfg.Namecheap.Username,
		ClientIP: cfg.Namecheap.ClientIP,
		BaseURL:  cfg.Namecheap.APIURL,
		Sandbox:  cfg.Namecheap.Sandbox,
		Timeout:  cfg.Namecheap.Timeout,
	})
}
