package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort     = 8080
	DefaultBasePath = "/api/namecheap"
	DefaultTimeout  = 30 * time.Second

	// EnvConfigPath names an alternative config file location.
	EnvConfigPath     = "REGISTRAR_API_CONFIG"
	defaultConfigFile = "config.yaml"

	envDevelopment = "development"
)

// Version information, filled from build info.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func init() {
	initVersionInfo()
}

type Config struct {
	Port             int       `yaml:"port"`
	Environment      string    `yaml:"environment"`
	BasePath         string    `yaml:"basePath"`
	CORSAllowOrigins []string  `yaml:"corsAllowOrigins"`
	Namecheap        Namecheap `yaml:"namecheap"`
}

// Namecheap holds the registrar API credentials and endpoint.
type Namecheap struct {
	APIUser  string        `yaml:"apiUser"`
	APIKey   string        `yaml:"apiKey"`
	Username string        `yaml:"username"`
	ClientIP string        `yaml:"clientIp"`
	Sandbox  bool          `yaml:"sandbox"`
	APIURL   string        `yaml:"apiUrl"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Load reads the config file at path (or REGISTRAR_API_CONFIG, or
// config.yaml) if it exists, then applies environment overrides and
// defaults. A missing file is not an error unless path was given
// explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}
	if path == "" {
		path = defaultConfigFile
	}

	if err := loadConfigFromFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			log.Printf("INFO: no %s found, using environment only", path)
		} else {
			return nil, err
		}
	}

	if err := overrideConfigWithEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func loadConfigFromFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func overrideConfigWithEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Environment = env
	}
	if base := os.Getenv("API_BASE_PATH"); base != "" {
		cfg.BasePath = base
	}
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		cfg.CORSAllowOrigins = splitList(origins)
	}

	if v := os.Getenv("NAMECHEAP_API_USER"); v != "" {
		cfg.Namecheap.APIUser = v
	}
	if v := os.Getenv("NAMECHEAP_API_KEY"); v != "" {
		cfg.Namecheap.APIKey = v
	}
	if v := os.Getenv("NAMECHEAP_USERNAME"); v != "" {
		cfg.Namecheap.Username = v
	}
	if v := os.Getenv("NAMECHEAP_CLIENT_IP"); v != "" {
		cfg.Namecheap.ClientIP = v
	}
	if v := os.Getenv("NAMECHEAP_API_URL"); v != "" {
		cfg.Namecheap.APIURL = v
	}
	if v := os.Getenv("NAMECHEAP_SANDBOX"); v != "" {
		cfg.Namecheap.Sandbox = v == "true" || v == "1"
	}
	if v := os.Getenv("NAMECHEAP_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid NAMECHEAP_TIMEOUT %q: %w", v, err)
		}
		cfg.Namecheap.Timeout = d
	}
	return nil
}

// parseTimeout accepts a Go duration ("45s") or a plain number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.BasePath == "" {
		cfg.BasePath = DefaultBasePath
	}
	if !strings.HasPrefix(cfg.BasePath, "/") {
		cfg.BasePath = "/" + cfg.BasePath
	}
	if len(cfg.BasePath) > 1 {
		cfg.BasePath = strings.TrimRight(cfg.BasePath, "/")
	}
	if cfg.Namecheap.Timeout <= 0 {
		cfg.Namecheap.Timeout = DefaultTimeout
	}
	if len(cfg.CORSAllowOrigins) == 0 {
		cfg.CORSAllowOrigins = []string{"*"}
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.Namecheap.APIUser == "" {
		missing = append(missing, "NAMECHEAP_API_USER")
	}
	if c.Namecheap.APIKey == "" {
		missing = append(missing, "NAMECHEAP_API_KEY")
	}
	if c.Namecheap.ClientIP == "" {
		missing = append(missing, "NAMECHEAP_CLIENT_IP")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing registrar settings: %s", strings.Join(missing, ", "))
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	for _, o := range c.CORSAllowOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("cors origin %q must be * or start with http:// or https://", o)
		}
	}
	return nil
}

// IsDevelopment reports whether error details may be exposed to callers.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, envDevelopment)
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// initVersionInfo reads the module version and VCS revision from build info.
func initVersionInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			GitCommit = setting.Value
			if len(GitCommit) > 7 {
				GitCommit = GitCommit[:7]
			}
		case "vcs.modified":
			if setting.Value == "true" {
				GitCommit += "-dirty"
			}
		}
	}
}
