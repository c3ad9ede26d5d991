package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config of the journal server. Values come from the environment, with a
// .env file loaded first when present.
type Config struct {
	Addr        string // Listen address of the HTTP server
	DBPath      string // Path of the sqlite database file
	SessionKey  string // Secret key of the cookie store
	TemplateDir string // Directory holding the HTML templates
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, reading the environment directly")
	}

	return &Config{
		Addr:        getenv("JOURNAL_ADDR", ":8080"),
		DBPath:      getenv("JOURNAL_DB", "journal.db"),
		SessionKey:  getenv("JOURNAL_SESSION_KEY", "dev-session-key"),
		TemplateDir: getenv("JOURNAL_TEMPLATES", "web/templates"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Templates maps each page template under templateDir to the list of files
// it must be parsed with: the shared layouts first, then the page itself.
func Templates(templateDir string) (map[string][]string, error) {
	mapping := make(map[string][]string)

	layoutFiles, err := filepath.Glob(filepath.Join(templateDir, "layouts", "*.html"))
	if err != nil {
		return nil, err
	}

	pageFiles, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}

	for _, page := range pageFiles {
		files := append([]string{}, layoutFiles...)
		files = append(files, page)
		mapping[filepath.Base(page)] = files
	}
	return mapping, nil
}
