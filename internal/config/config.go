package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultAPIBaseURL = "http://127.0.0.1:4000/"

type Config struct {
	// Remote API
	APIBaseURL    string        `yaml:"api_base_url"`
	RemoteTimeout time.Duration `yaml:"remote_timeout"`
	Offline       bool          `yaml:"offline"`

	// Local fallback store
	StoreBackend  string `yaml:"store_backend"` // file, sqlite, redis, memory
	StorePath     string `yaml:"store_path"`
	StoreCodec    string `yaml:"store_codec"` // json, bson
	StoreCompress bool   `yaml:"store_compress"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPrefix   string `yaml:"redis_prefix"`

	LogMode string `yaml:"log_mode"`

	// SFTP (backups)
	SFTPHost                  string `yaml:"sftp_host"`
	SFTPPort                  int    `yaml:"sftp_port"`
	SFTPUser                  string `yaml:"sftp_user"`
	SFTPPass                  string `yaml:"sftp_pass"`
	SFTPDir                   string `yaml:"sftp_dir"`
	SFTPInsecureIgnoreHostKey bool   `yaml:"sftp_insecure_ignore_hostkey"`
	SFTPKnownHosts            string `yaml:"sftp_known_hosts"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		APIBaseURL:                DefaultAPIBaseURL,
		RemoteTimeout:             8 * time.Second,
		StoreBackend:              "file",
		StorePath:                 "catalog-data/mockdb.json",
		StoreCodec:                "json",
		LogMode:                   "dev",
		SFTPPort:                  22,
		SFTPDir:                   "/inbound",
		SFTPInsecureIgnoreHostKey: true,
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CATALOG_CONFIG (if any), then environment variables.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CATALOG_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	cfg.APIBaseURL = NormalizeBaseURL(cfg.APIBaseURL)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	// COURSE_API wins; REACT_APP_API is accepted for existing setups.
	c.APIBaseURL = getenv("REACT_APP_API", c.APIBaseURL)
	c.APIBaseURL = getenv("COURSE_API", c.APIBaseURL)
	c.RemoteTimeout = getenvDuration("CATALOG_REMOTE_TIMEOUT", c.RemoteTimeout)
	c.Offline = getenvBool("CATALOG_OFFLINE", c.Offline)

	c.StoreBackend = getenv("CATALOG_STORE", c.StoreBackend)
	c.StorePath = getenv("CATALOG_STORE_PATH", c.StorePath)
	c.StoreCodec = getenv("CATALOG_STORE_CODEC", c.StoreCodec)
	c.StoreCompress = getenvBool("CATALOG_STORE_COMPRESS", c.StoreCompress)
	c.RedisAddr = getenv("REDIS_ADDR", c.RedisAddr)
	c.RedisPrefix = getenv("REDIS_PREFIX", c.RedisPrefix)

	c.LogMode = getenv("CATALOG_LOG_MODE", c.LogMode)

	c.SFTPHost = getenv("SFTP_HOST", c.SFTPHost)
	c.SFTPPort = getenvInt("SFTP_PORT", c.SFTPPort)
	c.SFTPUser = getenv("SFTP_USER", c.SFTPUser)
	c.SFTPPass = getenv("SFTP_PASS", c.SFTPPass)
	c.SFTPDir = getenv("SFTP_DIR", c.SFTPDir)
	c.SFTPInsecureIgnoreHostKey = getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", c.SFTPInsecureIgnoreHostKey)
	c.SFTPKnownHosts = getenv("SFTP_KNOWN_HOSTS", c.SFTPKnownHosts)
}

// NormalizeBaseURL collapses trailing slashes to exactly one so resource
// paths can be appended without a leading slash.
func NormalizeBaseURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	return strings.TrimRight(u, "/") + "/"
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
