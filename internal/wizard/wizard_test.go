package wizard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicky-gonsalves/deno-rest/internal/config"
	"github.com/vicky-gonsalves/deno-rest/internal/ui"
)

// scriptedPrompter replays canned answers. A string answers Text, a bool
// answers Confirm. Text answers rejected by the validator are consumed and
// the next answer is tried, the way a real prompt re-asks.
type scriptedPrompter struct {
	t         *testing.T
	answers   []interface{}
	questions []string
	rejected  []string
	failAt    int // 1-based prompt number that returns errPrompt, 0 disables
}

var errPrompt = errors.New("stdin closed")

func script(t *testing.T, answers ...interface{}) *scriptedPrompter {
	return &scriptedPrompter{t: t, answers: answers}
}

func (p *scriptedPrompter) next(question string) (interface{}, error) {
	p.questions = append(p.questions, question)
	if p.failAt > 0 && len(p.questions) == p.failAt {
		return nil, errPrompt
	}
	if len(p.answers) == 0 {
		p.t.Fatalf("no scripted answer left for %q", question)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Text(question string, validate ui.Validator) (string, error) {
	for {
		answer, err := p.next(question)
		if err != nil {
			return "", err
		}
		s, ok := answer.(string)
		if !ok {
			p.t.Fatalf("expected text answer for %q, got %v", question, answer)
		}
		s = strings.TrimSpace(s)
		if validate == nil || validate(s) {
			return s, nil
		}
		p.rejected = append(p.rejected, s)
	}
}

func (p *scriptedPrompter) Confirm(question string) (bool, error) {
	answer, err := p.next(question)
	if err != nil {
		return false, err
	}
	b, ok := answer.(bool)
	if !ok {
		p.t.Fatalf("expected yes/no answer for %q, got %v", question, answer)
	}
	return b, nil
}

func (p *scriptedPrompter) count(question string) int {
	n := 0
	for _, q := range p.questions {
		if strings.Contains(q, question) {
			n++
		}
	}
	return n
}

func newConfig(t *testing.T, workDir string) *config.Configuration {
	t.Helper()
	cfg, err := config.NewConfiguration(config.DefaultDefaults(), workDir)
	require.NoError(t, err)
	return cfg
}

func newWizard(t *testing.T, p ui.Prompter, opts ...Option) *Wizard {
	t.Helper()
	w, err := New(p, opts...)
	require.NoError(t, err)
	return w
}

func TestRun_NameIsTrimmed(t *testing.T) {
	workDir := t.TempDir()
	p := script(t, "  my-api  ", true, false)
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))
	assert.Equal(t, "my-api", cfg.Name)
}

func TestRun_BlankNameIsAskedAgain(t *testing.T) {
	workDir := t.TempDir()
	p := script(t, "", "   ", "demo", true, false)
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))
	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, 3, p.count(QuestionName))
	assert.Len(t, p.rejected, 2)
}

func TestRun_UseCurrentPath(t *testing.T) {
	workDir := t.TempDir()
	p := script(t, "demo", true, false)
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))

	assert.Equal(t, workDir, cfg.TargetPath)
	assert.True(t, cfg.UseCurrentPath)
	assert.Zero(t, p.count(QuestionPath))
	assert.Equal(t, fmt.Sprintf(QuestionUseCurrentPath, workDir), p.questions[1])
}

func TestRun_NewPathIsTakenWithoutOverride(t *testing.T) {
	workDir := t.TempDir()
	target := filepath.Join(t.TempDir(), "fresh")
	p := script(t, "demo", false, target, false)
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))

	assert.Equal(t, target, cfg.TargetPath)
	assert.False(t, cfg.UseCurrentPath)
	assert.Zero(t, p.count(QuestionOverride))
}

func TestRun_RelativePathResolvesAgainstWorkDir(t *testing.T) {
	workDir := t.TempDir()
	p := script(t, "demo", false, "services/api", false)
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))
	assert.Equal(t, filepath.Join(workDir, "services", "api"), cfg.TargetPath)
}

func TestRun_BlankPathIsAskedAgain(t *testing.T) {
	workDir := t.TempDir()
	target := filepath.Join(t.TempDir(), "fresh")
	p := script(t, "demo", false, "  ", target, false)
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))
	assert.Equal(t, target, cfg.TargetPath)
	assert.Equal(t, 2, p.count(QuestionPath))
}

func TestRun_DecliningOverrideAsksForAnotherPath(t *testing.T) {
	workDir := t.TempDir()
	existing := t.TempDir()
	fresh := filepath.Join(t.TempDir(), "fresh")

	// decline three times on the same existing path, then pick a new one
	p := script(t,
		"demo", false,
		existing, false,
		existing, false,
		existing, false,
		fresh,
		false,
	)
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))

	assert.Equal(t, fresh, cfg.TargetPath)
	assert.Equal(t, 4, p.count(QuestionPath))
	assert.Equal(t, 3, p.count(QuestionOverride))
}

func TestRun_AcceptingOverrideKeepsExistingPath(t *testing.T) {
	workDir := t.TempDir()
	existing := t.TempDir()
	p := script(t, "demo", false, existing, false, existing, true, false)
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))

	assert.Equal(t, existing, cfg.TargetPath)
	assert.Equal(t, 2, p.count(QuestionOverride))
}

func TestRun_ExistingPathNeverCommittedWithoutConsent(t *testing.T) {
	workDir := t.TempDir()
	existing := t.TempDir()
	p := script(t, "demo", false, existing, false, existing, false)
	p.failAt = 7 // the third path prompt
	cfg := newConfig(t, workDir)

	err := newWizard(t, p, WithWorkDir(workDir)).Run(cfg)
	require.ErrorIs(t, err, errPrompt)

	assert.Equal(t, workDir, cfg.TargetPath)
	assert.Empty(t, cfg.Name)
}

func TestRun_WithoutDatabase(t *testing.T) {
	workDir := t.TempDir()
	p := script(t, "demo", true, false)
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))

	assert.False(t, cfg.DatabaseConfigured)
	assert.False(t, cfg.Seed)
	assert.Empty(t, cfg.DBHostPort)
	assert.Empty(t, cfg.DBName)
	assert.Empty(t, cfg.DBUser)
	assert.Empty(t, cfg.DBPass)
	assert.Zero(t, p.count(QuestionDBHostPort))
}

func TestRun_WithDatabase(t *testing.T) {
	workDir := t.TempDir()
	p := script(t, "demo", true, true, "", "127.0.0.1:27017", "mydb", "", "")
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))

	assert.True(t, cfg.DatabaseConfigured)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "127.0.0.1:27017", cfg.DBHostPort)
	assert.Equal(t, "mydb", cfg.DBName)
	assert.Empty(t, cfg.DBUser)
	assert.Empty(t, cfg.DBPass)
	assert.Equal(t, 2, p.count(QuestionDBHostPort))
}

func TestRun_QuestionOrder(t *testing.T) {
	workDir := t.TempDir()
	target := filepath.Join(t.TempDir(), "fresh")
	p := script(t, "demo", false, target, true, "db:1", "n", "u", "p")
	cfg := newConfig(t, workDir)

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))

	assert.Equal(t, []string{
		QuestionName,
		fmt.Sprintf(QuestionUseCurrentPath, workDir),
		QuestionPath,
		QuestionDatabase,
		QuestionDBHostPort,
		QuestionDBName,
		QuestionDBUser,
		QuestionDBPass,
	}, p.questions)
}

func TestRun_SecretsAreNotRegenerated(t *testing.T) {
	workDir := t.TempDir()
	existing := t.TempDir()
	p := script(t, "demo", false, existing, false, existing, true, true, "h:1", "", "", "")
	cfg := newConfig(t, workDir)
	jwt, key, salt := cfg.JWTSecret, cfg.Key, cfg.Salt

	require.NoError(t, newWizard(t, p, WithWorkDir(workDir)).Run(cfg))

	assert.Equal(t, jwt, cfg.JWTSecret)
	assert.Equal(t, key, cfg.Key)
	assert.Equal(t, salt, cfg.Salt)
}

func TestRun_ExistsCheckFailureIsFatal(t *testing.T) {
	workDir := t.TempDir()
	ioErr := errors.New("permission denied")
	p := script(t, "demo", false, "/somewhere")
	cfg := newConfig(t, workDir)

	w := newWizard(t, p, WithWorkDir(workDir), WithExists(func(string) (bool, error) {
		return false, ioErr
	}))

	err := w.Run(cfg)
	require.ErrorIs(t, err, ioErr)
	assert.Empty(t, cfg.Name)
	assert.Equal(t, workDir, cfg.TargetPath)
}

func TestRun_PromptErrorLeavesConfigUntouched(t *testing.T) {
	workDir := t.TempDir()
	p := script(t, "demo", true, true, "h:1", "n")
	p.failAt = 6 // database user
	cfg := newConfig(t, workDir)

	err := newWizard(t, p, WithWorkDir(workDir)).Run(cfg)
	require.ErrorIs(t, err, errPrompt)

	assert.Empty(t, cfg.Name)
	assert.False(t, cfg.DatabaseConfigured)
	assert.Empty(t, cfg.DBHostPort)
}

func TestNew_DefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	w := newWizard(t, script(t))
	assert.Equal(t, wd, w.WorkDir())
}
