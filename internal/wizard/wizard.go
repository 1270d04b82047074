// Package wizard asks the project questions and fills in a Configuration.
package wizard

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vicky-gonsalves/deno-rest/internal/config"
	"github.com/vicky-gonsalves/deno-rest/internal/platform"
	"github.com/vicky-gonsalves/deno-rest/internal/ui"
)

const (
	QuestionName           = "What should be name of the project?"
	QuestionUseCurrentPath = "Do you want to generate project structure in (%s)?"
	QuestionPath           = "Please enter path to generate project structure:"
	QuestionOverride       = "Directory already exists, do you want to override?"
	QuestionDatabase       = "Do you want to add local database configuration now? (You can skip this now and add later in your .env file)"
	QuestionDBHostPort     = "Please enter database host and port (e.g. 127.0.0.1:27017)"
	QuestionDBName         = "Please enter database name"
	QuestionDBUser         = "Please enter database user (Leave blank if no user)"
	QuestionDBPass         = "Please enter database password (Leave blank if no password)"
)

// ExistsFunc reports whether a path is already present on disk
type ExistsFunc func(path string) (bool, error)

// Wizard runs the interactive question sequence
type Wizard struct {
	prompter ui.Prompter
	workDir  string
	exists   ExistsFunc
	logger   zerolog.Logger
}

// Option configures a Wizard
type Option func(*Wizard)

// WithWorkDir sets the default target directory instead of the process working directory
func WithWorkDir(dir string) Option {
	return func(w *Wizard) { w.workDir = dir }
}

// WithExists replaces the filesystem existence check
func WithExists(fn ExistsFunc) Option {
	return func(w *Wizard) { w.exists = fn }
}

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Wizard) { w.logger = logger }
}

// New creates a wizard. Failing to resolve the working directory is fatal.
func New(p ui.Prompter, opts ...Option) (*Wizard, error) {
	w := &Wizard{
		prompter: p,
		exists:   platform.PathExists,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		w.workDir = wd
	}
	return w, nil
}

// WorkDir returns the directory used when the user keeps the current path
func (w *Wizard) WorkDir() string {
	return w.workDir
}

type database struct {
	hostPort string
	name     string
	user     string
	pass     string
}

// Run asks every question in order and commits the answers to cfg.
// cfg is left untouched if any prompt or filesystem check fails.
func (w *Wizard) Run(cfg *config.Configuration) error {
	name, err := w.prompter.Text(QuestionName, ui.NonBlank)
	if err != nil {
		return fmt.Errorf("failed to get project name: %w", err)
	}

	useCurrentPath, err := w.prompter.Confirm(fmt.Sprintf(QuestionUseCurrentPath, w.workDir))
	if err != nil {
		return fmt.Errorf("failed to get project location: %w", err)
	}

	target := w.workDir
	if !useCurrentPath {
		target, err = w.resolvePath()
		if err != nil {
			return err
		}
	}
	w.logger.Debug().Str("path", target).Msg("target path resolved")

	dbConfigured, err := w.prompter.Confirm(QuestionDatabase)
	if err != nil {
		return fmt.Errorf("failed to get database choice: %w", err)
	}

	var db database
	if dbConfigured {
		db, err = w.promptDatabase()
		if err != nil {
			return err
		}
	}

	cfg.Name = strings.TrimSpace(name)
	cfg.TargetPath = target
	cfg.UseCurrentPath = target == w.workDir
	cfg.DatabaseConfigured = dbConfigured
	cfg.Seed = dbConfigured
	cfg.DBHostPort = db.hostPort
	cfg.DBName = db.name
	cfg.DBUser = db.user
	cfg.DBPass = db.pass

	w.logger.Debug().
		Str("name", cfg.Name).
		Bool("use_current_path", cfg.UseCurrentPath).
		Bool("database", cfg.DatabaseConfigured).
		Msg("configuration committed")
	return nil
}

// resolvePath asks for a target until the path is new or the user allows overriding it
func (w *Wizard) resolvePath() (string, error) {
	for {
		answer, err := w.prompter.Text(QuestionPath, ui.NonBlank)
		if err != nil {
			return "", fmt.Errorf("failed to get project path: %w", err)
		}

		candidate, err := platform.ResolvePath(answer, w.workDir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path '%s': %w", answer, err)
		}

		exists, err := w.exists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check path '%s': %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}

		override, err := w.prompter.Confirm(ui.Danger(QuestionOverride))
		if err != nil {
			return "", fmt.Errorf("failed to get override choice: %w", err)
		}
		if override {
			return candidate, nil
		}
		w.logger.Debug().Str("path", candidate).Msg("override declined")
	}
}

func (w *Wizard) promptDatabase() (database, error) {
	var db database
	var err error

	if db.hostPort, err = w.prompter.Text(QuestionDBHostPort, ui.NonBlank); err != nil {
		return database{}, fmt.Errorf("failed to get database host: %w", err)
	}
	if db.name, err = w.prompter.Text(QuestionDBName, nil); err != nil {
		return database{}, fmt.Errorf("failed to get database name: %w", err)
	}
	if db.user, err = w.prompter.Text(QuestionDBUser, nil); err != nil {
		return database{}, fmt.Errorf("failed to get database user: %w", err)
	}
	if db.pass, err = w.prompter.Text(QuestionDBPass, nil); err != nil {
		return database{}, fmt.Errorf("failed to get database password: %w", err)
	}
	return db, nil
}
