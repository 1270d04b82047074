package config

// Defaults holds every process-wide default baked into a new Configuration.
// A Defaults value is built once at startup and passed by value.
type Defaults struct {
	AccessTokenExpiry  int `toml:"access_token_expiry" validate:"gt=0"`  // Seconds
	RefreshTokenExpiry int `toml:"refresh_token_expiry" validate:"gt=0"` // Seconds

	JWTSecretLength int `toml:"jwt_secret_length" validate:"gt=0"`
	KeyLength       int `toml:"key_length" validate:"gt=0"`
	SaltLength      int `toml:"salt_length" validate:"gt=0"`

	IP       string `toml:"ip" validate:"required,ip"`
	Host     string `toml:"host" validate:"required,hostname_rfc1123"`
	Port     int    `toml:"port" validate:"min=1,max=65535"`
	Protocol string `toml:"protocol" validate:"oneof=http https"`

	ClientProtocol string `toml:"client_protocol" validate:"oneof=http https"`
	ClientHost     string `toml:"client_host" validate:"required,hostname_rfc1123"`
	ClientPort     int    `toml:"client_port" validate:"min=1,max=65535"`

	TemplateDir string `toml:"template_dir" validate:"required"` // Relative to the executable unless absolute

	// The environment file location is fixed; a defaults file cannot move it
	EnvDir  string `toml:"-" validate:"required"` // Relative to the target path
	EnvFile string `toml:"-" validate:"required"`
}

// Configuration is the record the wizard fills in and the writer serializes
type Configuration struct {
	Name           string
	TargetPath     string
	UseCurrentPath bool

	DatabaseConfigured bool
	Seed               bool // Always equals DatabaseConfigured
	DBHostPort         string
	DBName             string
	DBUser             string
	DBPass             string

	JWTSecret          string
	AccessTokenExpiry  int
	RefreshTokenExpiry int
	Key                string
	Salt               string

	IP       string
	Host     string
	Port     int
	Protocol string

	ClientProtocol string
	ClientHost     string
	ClientPort     int

	EnvDir  string
	EnvFile string
}
