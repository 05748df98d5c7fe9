package cmd

import (
	"github.com/jgivc/coursecheck/internal/app"
	"github.com/jgivc/coursecheck/internal/config"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type options struct {
	configPath string
	envPath    string
	rootID     string
	backend    string
	format     string
	outDir     string
}

// NewRootCommand creates the coursecheck command. Run without arguments it
// validates the configured root folder and writes one report file.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "coursecheck",
		Short: "Validate course folder naming and structure",
		Long: `coursecheck walks a course tree (courses -> sections -> files, plus an
optional metadata folder per course) in Google Drive or a local directory
and writes a report of every naming and ordering violation it finds.

It never changes the tree.`,
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			_, err = a.Validate(cmd.Context())

			return err
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config.yml", "Path to config file")
	cmd.PersistentFlags().StringVar(&opts.envPath, "env", ".env", "Path to dotenv file")
	cmd.Flags().StringVar(&opts.rootID, "root", "", "Root folder id (Drive) or path inside the work dir (fs)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "Storage backend (drive|fs)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Report format (xlsx|csv|html)")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "Directory for the report file")

	cmd.AddCommand(NewLastCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, opts.envPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.RootID = opts.rootID
	}
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("format") {
		cfg.Report.Format = opts.format
	}
	if flags.Changed("out") {
		cfg.Report.OutDir = opts.outDir
	}

	return cfg, nil
}

func newApp(cmd *cobra.Command, opts *options) (*app.App, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	return app.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
