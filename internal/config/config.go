// Package config provides the immutable runtime configuration for the
// documentation server. Values are resolved once at startup through viper
// (defaults, optional config file, environment, flags) and passed into
// constructors; no component reads ambient process state after that.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/viper"

	"github.com/docview/docview/internal/domain/entities"
)

// DefaultExclude is the exclusion list used when neither flag, environment,
// nor config file names one.
const DefaultExclude = "archive,node_modules,.git,__pycache__,venv,.venv,dist,build"

// Config carries every runtime setting of the server.
type Config struct {
	Root        string   // absolute path of the served directory
	DefaultFile string   // document served for "/" and "/index.html"
	ProjectName string   // display name derived from the root directory
	Host        string   // listen host, empty means all interfaces
	Port        int      // requested listen port
	Exclude     []string // lowercase name tokens hidden from navigation
	WatchLog    bool     // log document change events while serving
	Verbose     bool     // debug-level logging
	LogJSON     bool     // JSON log output instead of text
}

// SetDefaults registers baseline values on v. Config file, environment,
// and flag bindings layer on top of these.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("default-file", "README.md")
	v.SetDefault("exclude", DefaultExclude)
	v.SetDefault("watch-log", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log-json", false)
}

// BindEnv connects environment variables to v, honoring the legacy names
// PORT and EXCLUDE_DIRS alongside the prefixed ones. AllowEmptyEnv keeps
// an empty-but-set EXCLUDE_DIRS distinct from an unset one.
func BindEnv(v *viper.Viper) {
	v.AllowEmptyEnv(true)
	v.BindEnv("port", "DOCVIEW_PORT", "PORT")
	v.BindEnv("host", "DOCVIEW_HOST")
	v.BindEnv("default-file", "DOCVIEW_DEFAULT_FILE")
	v.BindEnv("exclude", "DOCVIEW_EXCLUDE", "EXCLUDE_DIRS")
}

// Load builds a Config from v and the optional positional path argument.
// The argument may name the directory to serve, or a file inside it which
// then becomes the default document.
func Load(v *viper.Viper, arg string) (*Config, error) {
	cfg := &Config{
		Host:        v.GetString("host"),
		Port:        v.GetInt("port"),
		DefaultFile: v.GetString("default-file"),
		Exclude:     SplitList(v.GetString("exclude")),
		WatchLog:    v.GetBool("watch-log"),
		Verbose:     v.GetBool("verbose"),
		LogJSON:     v.GetBool("log-json"),
	}

	root, defaultFile, err := resolveRoot(arg, cfg.DefaultFile)
	if err != nil {
		return nil, err
	}
	cfg.Root = root
	cfg.DefaultFile = defaultFile
	cfg.ProjectName = ProjectName(root)

	return cfg, nil
}

// resolveRoot turns the positional argument into the directory to serve.
// A file argument serves its parent directory with the file as default
// document. No argument means the current working directory.
func resolveRoot(arg, defaultFile string) (string, string, error) {
	if arg == "" {
		arg = "."
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", "", fmt.Errorf("resolving %s: %w", arg, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", entities.ErrRootInvalid, abs)
	}
	if info.Mode().IsRegular() {
		return filepath.Dir(abs), filepath.Base(abs), nil
	}
	if !info.IsDir() {
		return "", "", fmt.Errorf("%w: %s is not a directory", entities.ErrRootInvalid, abs)
	}
	return abs, defaultFile, nil
}

// ProjectName derives a display name from the root directory: separators
// become spaces and each word is title-cased.
func ProjectName(root string) string {
	base := strings.NewReplacer("_", " ", "-", " ").Replace(filepath.Base(root))
	words := strings.Fields(base)
	if len(words) == 0 {
		return base
	}
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// SplitList splits a comma-separated token list, trimming and lowercasing
// entries and dropping empty ones.
func SplitList(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.ToLower(strings.TrimSpace(tok)); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Addr is the listen address for the configured host and port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ExcludeSummary renders the exclusion list for the startup banner:
// sorted, capped at five entries.
func (c *Config) ExcludeSummary() string {
	if len(c.Exclude) == 0 {
		return "(none)"
	}
	sorted := make([]string, len(c.Exclude))
	copy(sorted, c.Exclude)
	sort.Strings(sorted)

	if len(sorted) <= 5 {
		return strings.Join(sorted, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(sorted[:5], ", "), len(sorted)-5)
}

// BrowseURL is a clickable address for the startup banner. An
// all-interfaces host is presented as localhost.
func BrowseURL(host string, port int) string {
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return fmt.Sprintf("http://%s/", net.JoinHostPort(host, strconv.Itoa(port)))
}

// HasDocuments reports whether root directly contains any documents.
func HasDocuments(root string) bool {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && entities.IsDocument(entry.Name()) {
			return true
		}
	}
	return false
}
