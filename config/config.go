// Package config loads converter settings from a YAML file, a .env file and
// X2HTML_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tenebris-tech/x2html/docx2html"
	"github.com/tenebris-tech/x2html/docx2html/page"
	"github.com/tenebris-tech/x2html/docx2html/palette"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation
var ErrInvalidConfig = errors.New("invalid configuration")

// Output formats
const (
	FormatHTML     = "html"
	FormatMarkdown = "md"
)

// Config is the top-level configuration
type Config struct {
	Site     SiteConfig        `yaml:"site"`
	Output   OutputConfig      `yaml:"output"`
	Palette  map[string]string `yaml:"palette"` // extra fill hex -> class
	Captions CaptionConfig     `yaml:"captions"`
	LogLevel string            `yaml:"log_level"` // debug | info | warn | error
}

// SiteConfig holds the page shell strings
type SiteConfig struct {
	Name         string `yaml:"name"`
	Organization string `yaml:"organization"`
	Project      string `yaml:"project"`
	Logo         string `yaml:"logo"`
	Footer       string `yaml:"footer"`
	ExtraCSS     string `yaml:"extra_css"`
}

// OutputConfig controls where and how results are written
type OutputConfig struct {
	Directory    string `yaml:"directory"`
	SkipExisting bool   `yaml:"skip_existing"`
	Format       string `yaml:"format"` // html | md
	BodyOnly     bool   `yaml:"body_only"`
}

// CaptionConfig holds fixed captions of rendered blocks
type CaptionConfig struct {
	GotRight string `yaml:"got_right"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	site := page.DefaultSite()
	return &Config{
		Site: SiteConfig{
			Name:         site.Name,
			Organization: site.Organization,
			Project:      site.Project,
			Logo:         site.Logo,
			Footer:       site.Notice,
		},
		Output: OutputConfig{
			Format: FormatHTML,
		},
		LogLevel: "warn",
	}
}

// Load reads the YAML file at path (skipped when path is empty) on top of
// the defaults, then applies environment overrides. A .env file is loaded
// from envFiles, or from the working directory when none are given and it
// exists.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	setString("X2HTML_SITE_NAME", &c.Site.Name)
	setString("X2HTML_SITE_ORGANIZATION", &c.Site.Organization)
	setString("X2HTML_SITE_PROJECT", &c.Site.Project)
	setString("X2HTML_SITE_LOGO", &c.Site.Logo)
	setString("X2HTML_SITE_FOOTER", &c.Site.Footer)
	setString("X2HTML_OUTPUT_DIR", &c.Output.Directory)
	setString("X2HTML_FORMAT", &c.Output.Format)
	setBool("X2HTML_SKIP_EXISTING", &c.Output.SkipExisting)
	setBool("X2HTML_BODY_ONLY", &c.Output.BodyOnly)
	setString("X2HTML_GOT_RIGHT_CAPTION", &c.Captions.GotRight)
	setString("X2HTML_LOG_LEVEL", &c.LogLevel)
}

func (c *Config) applyDefaults() {
	c.Output.Format = strings.ToLower(c.Output.Format)
	if c.Output.Format == "" {
		c.Output.Format = FormatHTML
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

var hexColor = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// Validate checks formats, levels and palette entries
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatHTML, FormatMarkdown:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.Output.Format)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	for hex, class := range c.Palette {
		if !hexColor.MatchString(hex) {
			return fmt.Errorf("%w: palette key %q is not a hex color", ErrInvalidConfig, hex)
		}
		if strings.TrimSpace(class) == "" || strings.ContainsAny(class, " \t\"<>") {
			return fmt.Errorf("%w: palette class %q for %s is not a class name", ErrInvalidConfig, class, hex)
		}
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
}

// Level returns the configured slog level
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

// PageSite returns the page shell strings
func (c *Config) PageSite() page.Site {
	return page.Site{
		Name:         c.Site.Name,
		Organization: c.Site.Organization,
		Project:      c.Site.Project,
		Logo:         c.Site.Logo,
		Notice:       c.Site.Footer,
		ExtraCSS:     c.Site.ExtraCSS,
	}
}

// FillPalette returns the built-in palette extended with the configured
// entries
func (c *Config) FillPalette() *palette.Palette {
	return palette.New(c.Palette)
}

// ConverterOptions returns the converter options this configuration implies
func (c *Config) ConverterOptions() []docx2html.Option {
	opts := []docx2html.Option{
		docx2html.WithSite(c.PageSite()),
		docx2html.WithPalette(c.FillPalette()),
		docx2html.WithBodyOnly(c.Output.BodyOnly),
	}
	if c.Captions.GotRight != "" {
		opts = append(opts, docx2html.WithGotRightCaption(c.Captions.GotRight))
	}
	return opts
}
