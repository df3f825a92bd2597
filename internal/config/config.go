package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/utils"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`

	Store struct {
		// Backend selects the gateway implementation: memory, sqlite,
		// postgres or firestore.
		Backend    string `yaml:"backend"`
		SQLitePath string `yaml:"sqlite_path"`
		Postgres   struct {
			Host     string `yaml:"host"`
			Port     string `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Name     string `yaml:"name"`
		} `yaml:"postgres"`
		Firestore struct {
			ProjectID       string `yaml:"project_id"`
			CredentialsFile string `yaml:"credentials_file"`
		} `yaml:"firestore"`
	} `yaml:"store"`

	Bucket struct {
		Name            string `yaml:"name"`
		CredentialsFile string `yaml:"credentials_file"`
		CDNDomain       string `yaml:"cdn_domain"`
	} `yaml:"bucket"`

	Auth struct {
		JWTSecret       string        `yaml:"jwt_secret"`
		AccessTokenTTL  time.Duration `yaml:"-"`
		RefreshTokenTTL time.Duration `yaml:"-"`
	} `yaml:"auth"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// Load reads the optional YAML file at CONFIG_PATH, then lets environment
// variables override it, matching how the rest of the deployment is
// configured.
func Load(log *logger.Logger) (Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.Server.Port = utils.GetEnv("PORT", fallback(cfg.Server.Port, "8080"), log)
	cfg.Server.Mode = utils.GetEnv("SERVER_MODE", fallback(cfg.Server.Mode, "dev"), log)

	cfg.Store.Backend = utils.GetEnv("STORE_BACKEND", fallback(cfg.Store.Backend, "sqlite"), log)
	cfg.Store.SQLitePath = utils.GetEnv("SQLITE_PATH", fallback(cfg.Store.SQLitePath, "autobody.db"), log)
	cfg.Store.Postgres.Host = utils.GetEnv("POSTGRES_HOST", fallback(cfg.Store.Postgres.Host, "localhost"), log)
	cfg.Store.Postgres.Port = utils.GetEnv("POSTGRES_PORT", fallback(cfg.Store.Postgres.Port, "5432"), log)
	cfg.Store.Postgres.User = utils.GetEnv("POSTGRES_USER", fallback(cfg.Store.Postgres.User, "postgres"), log)
	cfg.Store.Postgres.Password = utils.GetEnv("POSTGRES_PASSWORD", cfg.Store.Postgres.Password, log)
	cfg.Store.Postgres.Name = utils.GetEnv("POSTGRES_DB", fallback(cfg.Store.Postgres.Name, "autobody"), log)
	cfg.Store.Firestore.ProjectID = utils.GetEnv("FIRESTORE_PROJECT_ID", cfg.Store.Firestore.ProjectID, log)
	cfg.Store.Firestore.CredentialsFile = utils.GetEnv("FIRESTORE_CREDENTIALS_FILE", cfg.Store.Firestore.CredentialsFile, log)

	cfg.Bucket.Name = utils.GetEnv("BUCKET_NAME", cfg.Bucket.Name, log)
	cfg.Bucket.CredentialsFile = utils.GetEnv("BUCKET_CREDENTIALS_FILE", cfg.Bucket.CredentialsFile, log)
	cfg.Bucket.CDNDomain = utils.GetEnv("BUCKET_CDN_DOMAIN", cfg.Bucket.CDNDomain, log)

	cfg.Auth.JWTSecret = utils.GetEnv("JWT_SECRET_KEY", fallback(cfg.Auth.JWTSecret, "defaultsecret"), log)
	accessTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	cfg.Auth.AccessTokenTTL = time.Duration(accessTTLSeconds) * time.Second
	cfg.Auth.RefreshTokenTTL = time.Duration(refreshTTLSeconds) * time.Second

	cfg.Redis.Addr = utils.GetEnv("REDIS_ADDR", fallback(cfg.Redis.Addr, "localhost:6379"), log)
	cfg.Redis.Password = utils.GetEnv("REDIS_PASSWORD", cfg.Redis.Password, log)
	cfg.Redis.DB = utils.GetEnvAsInt("REDIS_DB", cfg.Redis.DB, log)

	return cfg, nil
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
