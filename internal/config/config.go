package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port       string `yaml:"port"`
	DBDSN      string `yaml:"db_dsn"`
	CatalogSrc string `yaml:"catalog_src"`
	MediaDir   string `yaml:"media_dir"`
	LogFile    string `yaml:"log_file"`
}

// Load builds the configuration from environment variables, optionally
// overlaid on a YAML file named by CONFIG_FILE. Env vars win over the file.
func Load() Config {
	cfg := Config{
		Port:       "8080",
		DBDSN:      "stridekart.db", // sqlite file in project root
		CatalogSrc: "./web/static/data/shoelist.json",
		MediaDir:   "./web/media",
		LogFile:    "./stridekart.log",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if data, err := os.ReadFile(path); err != nil {
			log.Printf("[config] could not read %s: %v", path, err)
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("[config] could not parse %s: %v", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("CATALOG_SRC"); v != "" {
		cfg.CatalogSrc = v
	}
	if v := os.Getenv("MEDIA_DIR"); v != "" {
		cfg.MediaDir = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	log.Printf("[config] PORT=%s DB_DSN=%s CATALOG_SRC=%s MEDIA_DIR=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.CatalogSrc, cfg.MediaDir, cfg.LogFile)
	return cfg
}
