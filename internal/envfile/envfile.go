// Package envfile renders a Configuration as KEY=VALUE lines and writes it under the project.
package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vicky-gonsalves/deno-rest/internal/config"
	"github.com/vicky-gonsalves/deno-rest/internal/platform"
	"github.com/vicky-gonsalves/deno-rest/internal/scaffold"
)

// Entry is a single KEY=VALUE line
type Entry struct {
	Key   string
	Value string
}

// Entries returns the lines of the environment file in their fixed order.
// Database values are empty unless a database was configured.
func Entries(cfg *config.Configuration) []Entry {
	var dbHostPort, dbName, dbUser, dbPass string
	if cfg.DatabaseConfigured {
		dbHostPort = cfg.DBHostPort
		dbName = cfg.DBName
		dbUser = cfg.DBUser
		dbPass = cfg.DBPass
	}

	return []Entry{
		{"APP_NAME", cfg.Name},
		{"JWT_SECRET", cfg.JWTSecret},
		{"JWT_ACCESS_TOKEN_EXP", strconv.Itoa(cfg.AccessTokenExpiry)},
		{"JWT_REFRESH_TOKEN_EXP", strconv.Itoa(cfg.RefreshTokenExpiry)},
		{"KEY", cfg.Key},
		{"SALT", cfg.Salt},
		{"SEED", strconv.FormatBool(cfg.Seed)},
		{"IP", cfg.IP},
		{"HOST", cfg.Host},
		{"PORT", strconv.Itoa(cfg.Port)},
		{"PROTOCOL", cfg.Protocol},
		{"CLIENT_PROTOCOL", cfg.ClientProtocol},
		{"CLIENT_HOST", cfg.ClientHost},
		{"CLIENT_PORT", strconv.Itoa(cfg.ClientPort)},
		{"DB_HOST", dbHostPort},
		{"DB_NAME", dbName},
		{"DB_USER", dbUser},
		{"DB_PASS", dbPass},
	}
}

// Render serializes the configuration. Values are written verbatim, without quoting.
func Render(cfg *config.Configuration) string {
	var b strings.Builder
	for _, e := range Entries(cfg) {
		b.WriteString(e.Key)
		b.WriteByte('=')
		b.WriteString(e.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

// Path returns where the environment file lives under targetPath
func Path(cfg *config.Configuration, targetPath string) string {
	dir, name := cfg.EnvDir, cfg.EnvFile
	if dir == "" {
		dir = config.DefaultEnvDir
	}
	if name == "" {
		name = config.DefaultEnvFile
	}
	return filepath.Join(targetPath, dir, name)
}

// Write renders cfg into the environment file under targetPath, replacing any
// existing file, and returns the file path.
func Write(cfg *config.Configuration, targetPath string) (string, error) {
	path := Path(cfg, targetPath)

	if err := platform.MkdirProject(filepath.Dir(path)); err != nil {
		return "", &scaffold.FilesystemError{Op: "create directory", Path: filepath.Dir(path), Err: err}
	}
	if err := platform.CreateFileSecure(path, []byte(Render(cfg))); err != nil {
		return "", &scaffold.FilesystemError{Op: "write", Path: path, Err: err}
	}
	return path, nil
}

// Verify parses the file at path the way a dotenv loader would and returns the
// keys whose value does not read back as written.
func Verify(path string, cfg *config.Configuration) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &scaffold.FilesystemError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	parsed, err := godotenv.Parse(f)
	if err != nil {
		return nil, err
	}

	var mismatched []string
	for _, e := range Entries(cfg) {
		if v, ok := parsed[e.Key]; !ok || v != e.Value {
			mismatched = append(mismatched, e.Key)
		}
	}
	return mismatched, nil
}

// Read parses an environment file into entries, keeping file order.
// Blank lines and # comments are skipped; values are taken verbatim.
func Read(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &scaffold.FilesystemError{Op: "read", Path: path, Err: err}
	}

	var entries []Entry
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("%s:%d: expected KEY=VALUE", path, i+1)
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries, nil
}

// Keys returns the keys of a freshly generated file in order
func Keys() []string {
	entries := Entries(&config.Configuration{})
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}
