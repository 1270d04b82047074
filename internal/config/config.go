package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/vicky-gonsalves/deno-rest/internal/secret"
)

const (
	DefaultEnvDir      = ".env"
	DefaultEnvFile     = ".env.development"
	DefaultTemplateDir = "src"
)

var validate = validator.New()

// DefaultDefaults returns the built-in defaults
func DefaultDefaults() Defaults {
	return Defaults{
		AccessTokenExpiry:  3600,
		RefreshTokenExpiry: 1800,
		JWTSecretLength:    50,
		KeyLength:          25,
		SaltLength:         16,
		IP:                 "0.0.0.0",
		Host:               "localhost",
		Port:               9000,
		Protocol:           "http",
		ClientProtocol:     "http",
		ClientHost:         "localhost",
		ClientPort:         3000,
		TemplateDir:        DefaultTemplateDir,
		EnvDir:             DefaultEnvDir,
		EnvFile:            DefaultEnvFile,
	}
}

// Validate checks the defaults against their struct constraints
func (d Defaults) Validate() error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid default %s: failed '%s' check (value: %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid defaults: %w", err)
	}
	return nil
}

// LoadDefaults decodes a TOML file over the built-in defaults.
// Keys missing from the file keep their built-in value.
func LoadDefaults(path string) (Defaults, error) {
	defaults := DefaultDefaults()
	if path == "" {
		return defaults, nil
	}

	if _, err := os.Stat(path); err != nil {
		return Defaults{}, fmt.Errorf("failed to read defaults file: %w", err)
	}

	md, err := toml.DecodeFile(path, &defaults)
	if err != nil {
		return Defaults{}, fmt.Errorf("failed to decode defaults: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Defaults{}, fmt.Errorf("unknown key '%s' in defaults file %s", undecoded[0].String(), path)
	}

	if err := defaults.Validate(); err != nil {
		return Defaults{}, err
	}
	return defaults, nil
}

// NewConfiguration creates a record with every default applied and all
// secrets generated. workDir becomes the initial target path.
func NewConfiguration(d Defaults, workDir string) (*Configuration, error) {
	jwtSecret, err := secret.Generate(d.JWTSecretLength, secret.AlphanumericExtended, secret.Mixed)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	key, err := secret.Generate(d.KeyLength, secret.AlphanumericExtended, secret.Mixed)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	salt, err := secret.Generate(d.SaltLength, secret.AlphanumericExtended, secret.Mixed)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	return &Configuration{
		TargetPath:         workDir,
		UseCurrentPath:     true,
		JWTSecret:          jwtSecret,
		AccessTokenExpiry:  d.AccessTokenExpiry,
		RefreshTokenExpiry: d.RefreshTokenExpiry,
		Key:                key,
		Salt:               salt,
		IP:                 d.IP,
		Host:               d.Host,
		Port:               d.Port,
		Protocol:           d.Protocol,
		ClientProtocol:     d.ClientProtocol,
		ClientHost:         d.ClientHost,
		ClientPort:         d.ClientPort,
		EnvDir:             d.EnvDir,
		EnvFile:            d.EnvFile,
	}, nil
}
