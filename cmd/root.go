package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	goversion "github.com/caarlos0/go-version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vicky-gonsalves/deno-rest/internal/config"
	"github.com/vicky-gonsalves/deno-rest/internal/platform"
	"github.com/vicky-gonsalves/deno-rest/internal/project"
	"github.com/vicky-gonsalves/deno-rest/internal/ui"
)

var (
	version   = "dev"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

var (
	rootFlagTemplate string
	rootFlagDefaults string
	rootFlagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "deno-rest",
	Short: "Generate a new REST project",
	Long: `Generate a new REST project by answering a few questions.

The wizard asks for a project name, where to put it and, optionally, local
database settings. It then copies the project template and writes
.env/.env.development with generated secrets.`,
	Example: `  # Start the wizard
  deno-rest

  # Use a custom template and override built-in defaults
  deno-rest --template ./my-template --defaults ./defaults.toml`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Version = buildVersion().String()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().StringVar(&rootFlagTemplate, "template", "", "Template directory to copy (default: <executable dir>/src)")
	rootCmd.PersistentFlags().StringVar(&rootFlagDefaults, "defaults", "", "TOML file overriding built-in defaults")
	rootCmd.Flags().BoolVarP(&rootFlagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger := newLogger(rootFlagVerbose)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("the wizard needs an interactive terminal")
	}

	defaults, err := config.LoadDefaults(rootFlagDefaults)
	if err != nil {
		return err
	}

	templateDir, err := resolveTemplateDir(rootFlagTemplate, defaults.TemplateDir)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("template", templateDir).
		Str("platform", platform.GetPlatformName()).
		Msg("starting wizard")

	ui.Banner()

	res, err := project.Generate(project.Options{
		Prompter:    ui.NewSurveyPrompter(">"),
		Defaults:    defaults,
		TemplateDir: templateDir,
		Logger:      logger,
	})
	if err != nil {
		if ui.IsInterrupt(err) {
			return fmt.Errorf("aborted")
		}
		return err
	}

	for _, key := range res.Unreadable {
		ui.Warning(fmt.Sprintf("%s will not read back as entered, check %s", key, res.EnvPath))
	}

	fmt.Println()
	ui.Bold("Project structure is generated successfully!")
	ui.Success(fmt.Sprintf("Please cd to %s and use command 'denon start' to run the project", res.Config.TargetPath))
	return nil
}

// resolveTemplateDir picks the flag value, or the template name next to the executable
func resolveTemplateDir(flagValue, name string) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	exeDir, err := platform.ExecutableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(exeDir, name), nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func buildVersion() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails("deno-rest", "Interactive REST project generator", "https://github.com/vicky-gonsalves/deno-rest"),
		func(i *goversion.Info) {
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
