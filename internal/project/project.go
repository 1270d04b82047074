// Package project runs the wizard and materializes the result in a single forward pass.
package project

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vicky-gonsalves/deno-rest/internal/config"
	"github.com/vicky-gonsalves/deno-rest/internal/envfile"
	"github.com/vicky-gonsalves/deno-rest/internal/scaffold"
	"github.com/vicky-gonsalves/deno-rest/internal/ui"
	"github.com/vicky-gonsalves/deno-rest/internal/wizard"
)

// Options holds what a generation run needs besides the user's answers
type Options struct {
	Prompter    ui.Prompter
	Defaults    config.Defaults
	TemplateDir string
	WorkDir     string // Empty means the process working directory
	Logger      zerolog.Logger
}

// Result describes a finished generation run
type Result struct {
	Config      *config.Configuration
	EnvPath     string
	FilesCopied int
	Unreadable  []string // Env keys a dotenv loader would read back differently
}

// Generate asks the questions, copies the template and writes the environment file.
// Files are only touched after every question has been answered.
func Generate(opts Options) (*Result, error) {
	wizardOpts := []wizard.Option{wizard.WithLogger(opts.Logger)}
	if opts.WorkDir != "" {
		wizardOpts = append(wizardOpts, wizard.WithWorkDir(opts.WorkDir))
	}

	wz, err := wizard.New(opts.Prompter, wizardOpts...)
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewConfiguration(opts.Defaults, wz.WorkDir())
	if err != nil {
		return nil, err
	}

	if err := wz.Run(cfg); err != nil {
		return nil, err
	}

	ui.Info(fmt.Sprintf("Generating project files in %s...", cfg.TargetPath))

	n, err := scaffold.NewMaterializer(opts.Logger).CopyTemplate(opts.TemplateDir, cfg.TargetPath)
	if err != nil {
		return nil, err
	}

	envPath, err := envfile.Write(cfg, cfg.TargetPath)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug().Str("file", envPath).Msg("environment file written")

	unreadable, err := envfile.Verify(envPath, cfg)
	if err != nil {
		opts.Logger.Warn().Err(err).Str("file", envPath).Msg("could not verify environment file")
	}

	return &Result{
		Config:      cfg,
		EnvPath:     envPath,
		FilesCopied: n,
		Unreadable:  unreadable,
	}, nil
}
