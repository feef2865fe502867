package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppPort string `yaml:"app_port"`

	MySQLHost string `yaml:"mysql_host"`
	MySQLPort string `yaml:"mysql_port"`
	MySQLDB   string `yaml:"mysql_db"`
	MySQLUser string `yaml:"mysql_user"`
	MySQLPass string `yaml:"mysql_pass"`

	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`

	SessionTTLSecs int `yaml:"session_ttl_seconds"`

	Mifos struct {
		BaseURL       string `yaml:"base_url"`
		Username      string `yaml:"username"`
		Password      string `yaml:"password"`
		Tenant        string `yaml:"tenant"`
		CacheTTLSecs  int    `yaml:"cache_ttl_seconds"`
		SyncCron      string `yaml:"sync_cron"`
		SyncOnStartup bool   `yaml:"sync_on_startup"`
	} `yaml:"mifos"`

	Renderer struct {
		Python    string `yaml:"python"`
		ScriptDir string `yaml:"script_dir"`
	} `yaml:"renderer"`

	FileDir string `yaml:"file_dir"`
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// Load reads the optional YAML file named by CONFIG_FILE first, then
// applies env-var overrides so container deployments win.
func Load() (*Config, error) {
	c := &Config{}

	if path := getenv("CONFIG_FILE", "config.yaml"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	c.AppPort = getenv("APP_PORT", def(c.AppPort, "8080"))
	c.MySQLHost = getenv("MYSQL_HOST", def(c.MySQLHost, "mysql"))
	c.MySQLPort = getenv("MYSQL_PORT", def(c.MySQLPort, "3306"))
	c.MySQLDB = getenv("MYSQL_DB", def(c.MySQLDB, "investorhub"))
	c.MySQLUser = getenv("MYSQL_USER", def(c.MySQLUser, "investorhub"))
	c.MySQLPass = getenv("MYSQL_PASS", def(c.MySQLPass, "investorhub"))
	c.RedisAddr = getenv("REDIS_ADDR", def(c.RedisAddr, "redis:6379"))

	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if c.SessionTTLSecs == 0 {
		c.SessionTTLSecs = 86400
	}
	if v := os.Getenv("SESSION_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SessionTTLSecs = n
		}
	}

	c.Mifos.BaseURL = getenv("MIFOS_BASE_URL", def(c.Mifos.BaseURL, ""))
	c.Mifos.Username = getenv("MIFOS_USERNAME", def(c.Mifos.Username, "mifos"))
	c.Mifos.Password = getenv("MIFOS_PASSWORD", def(c.Mifos.Password, "password"))
	c.Mifos.Tenant = getenv("MIFOS_TENANT", def(c.Mifos.Tenant, "default"))
	c.Mifos.SyncCron = getenv("MIFOS_SYNC_CRON", def(c.Mifos.SyncCron, "@hourly"))
	if c.Mifos.CacheTTLSecs == 0 {
		c.Mifos.CacheTTLSecs = 300
	}
	if v := os.Getenv("MIFOS_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Mifos.CacheTTLSecs = n
		}
	}

	c.Renderer.Python = getenv("RENDERER_PYTHON", def(c.Renderer.Python, "python3"))
	c.Renderer.ScriptDir = getenv("RENDERER_SCRIPT_DIR", def(c.Renderer.ScriptDir, "scripts"))
	c.FileDir = getenv("FILE_DIR", def(c.FileDir, "files"))

	return c, nil
}

func def(current, fallback string) string {
	if current != "" {
		return current
	}
	return fallback
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
