package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vicky-gonsalves/deno-rest/internal/config"
	"github.com/vicky-gonsalves/deno-rest/internal/envfile"
	"github.com/vicky-gonsalves/deno-rest/internal/platform"
	"github.com/vicky-gonsalves/deno-rest/internal/ui"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor [path]",
	Short: "Check a generated project's environment file",
	Long: `Check the environment file of a generated project.

Runs checks on:
- Environment file presence and permissions
- Key set and ordering
- Secret lengths, ports and the SEED flag

Examples:
  deno-rest doctor              # Check the project in the current directory
  deno-rest doctor ./my-api     # Check another project
  deno-rest doctor --fix        # Auto-fix permission issues`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVarP(&doctorFix, "fix", "f", false, "Auto-fix permission issues")
}

type checkResult struct {
	passed  bool
	message string
	fix     string // Suggested fix command
}

func runDoctor(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	defaults, err := config.LoadDefaults(rootFlagDefaults)
	if err != nil {
		return err
	}

	path := filepath.Join(target, defaults.EnvDir, defaults.EnvFile)

	fmt.Println()
	fmt.Printf("Checking %s...\n", path)
	fmt.Println()

	errors := 0
	warnings := 0
	tally := func(results []checkResult) {
		for _, r := range results {
			printCheckResult(r)
			if !r.passed && r.fix == "" {
				errors++
			} else if !r.passed {
				warnings++
			}
		}
	}

	fmt.Println("File")
	fmt.Println("────")
	entries, err := envfile.Read(path)
	if err != nil {
		printCheckResult(checkResult{message: err.Error(), fix: "Run: deno-rest"})
		fmt.Println()
		ui.Error("Cannot continue without an environment file")
		return nil
	}
	printCheckResult(checkResult{passed: true, message: "Environment file is readable"})

	permResults, fixed := checkPermissions(path, doctorFix)
	tally(permResults)

	fmt.Println()
	fmt.Println("Keys")
	fmt.Println("────")
	tally(checkKeys(entries))

	fmt.Println()
	fmt.Println("Values")
	fmt.Println("──────")
	tally(checkValues(entries, defaults))

	// Summary
	fmt.Println()
	fmt.Println("─────────")

	if fixed > 0 {
		ui.Success(fmt.Sprintf("Auto-fixed %d issue(s)", fixed))
	}

	if errors == 0 && warnings == 0 {
		ui.Success("All checks passed!")
	} else if errors == 0 {
		ui.Warning(fmt.Sprintf("%d warning(s)", warnings))
	} else {
		ui.Error(fmt.Sprintf("%d error(s), %d warning(s)", errors, warnings))
	}

	return nil
}

func printCheckResult(r checkResult) {
	if r.passed {
		fmt.Printf("  ✓ %s\n", r.message)
	} else if r.fix != "" {
		fmt.Printf("  ⚠ %s\n", r.message)
		fmt.Printf("    → %s\n", r.fix)
	} else {
		fmt.Printf("  ✗ %s\n", r.message)
	}
}

func checkPermissions(path string, autoFix bool) ([]checkResult, int) {
	ok, err := platform.CheckFilePermissions(path)
	if err != nil {
		return []checkResult{{message: fmt.Sprintf("Cannot check permissions: %v", err)}}, 0
	}
	if ok {
		return []checkResult{{passed: true, message: "Permissions are private to the owner"}}, 0
	}

	if autoFix {
		if err := platform.FixFilePermissions(path); err == nil {
			return []checkResult{{passed: true, message: "Permissions fixed (600)"}}, 1
		}
	}
	return []checkResult{{
		message: "File is readable by other users",
		fix:     platform.GetPermissionFixCommand(path),
	}}, 0
}

// checkKeys compares the file's keys with the generated layout
func checkKeys(entries []envfile.Entry) []checkResult {
	var results []checkResult

	want := envfile.Keys()
	got := make(map[string]bool, len(entries))
	for _, e := range entries {
		if got[e.Key] {
			results = append(results, checkResult{message: fmt.Sprintf("%s is defined more than once", e.Key)})
		}
		got[e.Key] = true
	}

	missing := 0
	for _, key := range want {
		if !got[key] {
			missing++
			results = append(results, checkResult{message: fmt.Sprintf("%s is missing", key)})
		}
	}
	if missing == 0 {
		results = append(results, checkResult{passed: true, message: fmt.Sprintf("All %d keys present", len(want))})
	}

	known := make(map[string]int, len(want))
	for i, key := range want {
		known[key] = i
	}
	last := -1
	ordered := true
	for _, e := range entries {
		idx, ok := known[e.Key]
		if !ok {
			results = append(results, checkResult{
				message: fmt.Sprintf("%s is not a generated key", e.Key),
				fix:     "Custom keys are fine; remove it if it is a typo",
			})
			continue
		}
		if idx < last {
			ordered = false
		}
		last = idx
	}
	if !ordered {
		results = append(results, checkResult{
			message: "Keys are not in the generated order",
			fix:     "Order does not affect loading; regenerate to restore it",
		})
	}

	return results
}

// checkValues validates secret lengths, ports and the SEED flag
func checkValues(entries []envfile.Entry, d config.Defaults) []checkResult {
	var results []checkResult

	values := make(map[string]string, len(entries))
	for _, e := range entries {
		values[e.Key] = e.Value
	}

	if values["APP_NAME"] == "" {
		results = append(results, checkResult{message: "APP_NAME is empty"})
	}

	secrets := []struct {
		key    string
		length int
	}{
		{"JWT_SECRET", d.JWTSecretLength},
		{"KEY", d.KeyLength},
		{"SALT", d.SaltLength},
	}
	for _, s := range secrets {
		if n := len(values[s.key]); n < s.length {
			results = append(results, checkResult{
				message: fmt.Sprintf("%s is %d characters, expected at least %d", s.key, n, s.length),
			})
		}
	}

	for _, key := range []string{"JWT_ACCESS_TOKEN_EXP", "JWT_REFRESH_TOKEN_EXP", "PORT", "CLIENT_PORT"} {
		if n, err := strconv.Atoi(values[key]); err != nil || n <= 0 {
			results = append(results, checkResult{message: fmt.Sprintf("%s must be a positive number, got %q", key, values[key])})
		}
	}

	seed, err := strconv.ParseBool(values["SEED"])
	switch {
	case err != nil:
		results = append(results, checkResult{message: fmt.Sprintf("SEED must be true or false, got %q", values["SEED"])})
	case seed && values["DB_HOST"] == "":
		results = append(results, checkResult{
			message: "SEED is true but DB_HOST is empty",
			fix:     "Set DB_HOST or SEED=false",
		})
	}

	if len(results) == 0 {
		results = append(results, checkResult{passed: true, message: "Values look valid"})
	}
	return results
}
