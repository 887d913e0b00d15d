package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mediawatch/internal/classify"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        App        `mapstructure:"app" yaml:"app"`
	Logging    Logging    `mapstructure:"logging" yaml:"logging"`
	Classifier Classifier `mapstructure:"classifier" yaml:"classifier"`
	Sheets     Sheets     `mapstructure:"sheets" yaml:"sheets"`
	Layout     Layout     `mapstructure:"layout" yaml:"layout"`
	Report     Report     `mapstructure:"report" yaml:"report"`
	Output     Output     `mapstructure:"output" yaml:"output"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug" yaml:"debug"`
	ConfigFile string `mapstructure:"config_file" yaml:"config_file,omitempty"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Classifier holds the keyword lists that drive item classification.
type Classifier struct {
	AuthoritativeMedia   []string `mapstructure:"authoritative_media" yaml:"authoritative_media"`
	RepostSites          []string `mapstructure:"repost_sites" yaml:"repost_sites"`
	AnnouncementKeywords []string `mapstructure:"announcement_keywords" yaml:"announcement_keywords"`
	BrandKeywords        []string `mapstructure:"brand_keywords" yaml:"brand_keywords"`
}

// Sheets maps report groups to workbook sheet names.
type Sheets struct {
	Brand      string   `mapstructure:"brand" yaml:"brand"`
	Competitor []string `mapstructure:"competitor" yaml:"competitor"`
	Partner    []string `mapstructure:"partner" yaml:"partner"`
	BankBroker []string `mapstructure:"bank_broker" yaml:"bank_broker"`
	Industry   []string `mapstructure:"industry" yaml:"industry"`
}

// Layout describes where fields live in workbook rows (0-based column positions).
type Layout struct {
	HeaderRows      int             `mapstructure:"header_rows" yaml:"header_rows"`
	StripMarkup     bool            `mapstructure:"strip_markup" yaml:"strip_markup"`
	Columns         Columns         `mapstructure:"columns" yaml:"columns"`
	OfficialColumns OfficialColumns `mapstructure:"official_columns" yaml:"official_columns"`
}

// Columns is the positional layout of monitoring sheets.
type Columns struct {
	Sequence int `mapstructure:"sequence" yaml:"sequence"`
	Topic    int `mapstructure:"topic" yaml:"topic"`
	Title    int `mapstructure:"title" yaml:"title"`
	Time     int `mapstructure:"time" yaml:"time"`
	Tendency int `mapstructure:"tendency" yaml:"tendency"`
	Source   int `mapstructure:"source" yaml:"source"`
	Channel  int `mapstructure:"channel" yaml:"channel"`
	Author   int `mapstructure:"author" yaml:"author"`
	Summary  int `mapstructure:"summary" yaml:"summary"`
}

// OfficialColumns is the positional layout of the official media reports sheet.
type OfficialColumns struct {
	Sequence  int `mapstructure:"sequence" yaml:"sequence"`
	Media     int `mapstructure:"media" yaml:"media"`
	Date      int `mapstructure:"date" yaml:"date"`
	Topic     int `mapstructure:"topic" yaml:"topic"`
	Title     int `mapstructure:"title" yaml:"title"`
	Reporter  int `mapstructure:"reporter" yaml:"reporter"`
	Signature int `mapstructure:"signature" yaml:"signature"`
	Link      int `mapstructure:"link" yaml:"link"`
}

// Report holds the fixed texts of the rendered document.
type Report struct {
	Title            string         `mapstructure:"title" yaml:"title"`
	Period           string         `mapstructure:"period" yaml:"period"`
	SummaryHeading   string         `mapstructure:"summary_heading" yaml:"summary_heading"`
	SummaryTemplate  string         `mapstructure:"summary_template" yaml:"summary_template"`
	Counts           map[string]int `mapstructure:"counts" yaml:"counts"`
	Brand            Section        `mapstructure:"brand" yaml:"brand"`
	Competitor       Section        `mapstructure:"competitor" yaml:"competitor"`
	Partner          Section        `mapstructure:"partner" yaml:"partner"`
	Industry         Section        `mapstructure:"industry" yaml:"industry"`
	NotesHeading     string         `mapstructure:"notes_heading" yaml:"notes_heading"`
	Notes            string         `mapstructure:"notes" yaml:"notes"`
	TimestampPrefix  string         `mapstructure:"timestamp_prefix" yaml:"timestamp_prefix"`
	TimestampLayout  string         `mapstructure:"timestamp_layout" yaml:"timestamp_layout"`
	UnknownMedia     string         `mapstructure:"unknown_media" yaml:"unknown_media"`
	MediaPrefix      string         `mapstructure:"media_prefix" yaml:"media_prefix"`
	TimePrefix       string         `mapstructure:"time_prefix" yaml:"time_prefix"`
	LinkPrefix       string         `mapstructure:"link_prefix" yaml:"link_prefix"`
	PositiveTendency string         `mapstructure:"positive_tendency" yaml:"positive_tendency"`
}

// Section holds the texts of one content section.
type Section struct {
	Heading       string  `mapstructure:"heading" yaml:"heading"`
	Empty         string  `mapstructure:"empty" yaml:"empty"`
	LabelFormat   string  `mapstructure:"label_format" yaml:"label_format,omitempty"`
	LabelFallback bool    `mapstructure:"label_fallback" yaml:"label_fallback"`
	Labels        []Label `mapstructure:"labels" yaml:"labels,omitempty"`
}

// Label maps a sheet name to the category label shown under an item.
// Kept as a list so sheet names keep their case (viper lower-cases map keys).
type Label struct {
	Sheet string `mapstructure:"sheet" yaml:"sheet"`
	Label string `mapstructure:"label" yaml:"label"`
}

// LabelMap returns the section's label table keyed by sheet name.
func (s Section) LabelMap() map[string]string {
	labels := make(map[string]string, len(s.Labels))
	for _, l := range s.Labels {
		labels[l.Sheet] = l.Label
	}
	return labels
}

// Output holds output configuration
type Output struct {
	Format string `mapstructure:"format" yaml:"format"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(expandPath(configFile))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".mediawatch")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.SetEnvPrefix("MEDIAWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.App.ConfigFile = viper.ConfigFileUsed()

	postProcessConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// bindEnvironmentVariables binds unprefixed variables people already export.
func bindEnvironmentVariables() {
	bindEnvKeys("app.debug", []string{
		"MEDIAWATCH_DEBUG",
		"DEBUG",
	})

	bindEnvKeys("logging.level", []string{
		"MEDIAWATCH_LOG_LEVEL",
		"LOG_LEVEL",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig normalizes values after unmarshaling
func postProcessConfig(config *Config) {
	if config.App.Debug {
		config.Logging.Level = "debug"
	}

	config.Classifier.AuthoritativeMedia = classify.Compact(config.Classifier.AuthoritativeMedia)
	config.Classifier.RepostSites = classify.Compact(config.Classifier.RepostSites)
	config.Classifier.AnnouncementKeywords = classify.Compact(config.Classifier.AnnouncementKeywords)
	config.Classifier.BrandKeywords = classify.Compact(config.Classifier.BrandKeywords)

	config.Output.Format = strings.ToLower(strings.TrimSpace(config.Output.Format))
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures required configuration is present
func validateConfig(config *Config) error {
	var errors []string

	if len(config.Classifier.AuthoritativeMedia) == 0 {
		errors = append(errors, "classifier.authoritative_media must list at least one outlet; every item would be filtered out")
	}
	if strings.TrimSpace(config.Sheets.Brand) == "" {
		errors = append(errors, "sheets.brand is required")
	}
	if config.Layout.HeaderRows < 0 {
		errors = append(errors, "layout.header_rows cannot be negative")
	}

	cols := config.Layout.Columns
	for name, idx := range map[string]int{
		"sequence": cols.Sequence, "topic": cols.Topic, "title": cols.Title, "time": cols.Time,
		"tendency": cols.Tendency, "source": cols.Source, "channel": cols.Channel,
		"author": cols.Author, "summary": cols.Summary,
	} {
		if idx < 0 {
			errors = append(errors, fmt.Sprintf("layout.columns.%s cannot be negative", name))
		}
	}

	off := config.Layout.OfficialColumns
	for name, idx := range map[string]int{
		"sequence": off.Sequence, "media": off.Media, "date": off.Date, "topic": off.Topic,
		"title": off.Title, "reporter": off.Reporter, "signature": off.Signature, "link": off.Link,
	} {
		if idx < 0 {
			errors = append(errors, fmt.Sprintf("layout.official_columns.%s cannot be negative", name))
		}
	}

	switch config.Output.Format {
	case "docx", "markdown", "md":
	default:
		errors = append(errors, fmt.Sprintf("Unknown output format: %s. Supported: docx, markdown", config.Output.Format))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Convenience getters for commonly used configuration values
func GetSheets() Sheets   { return Get().Sheets }
func GetLayout() Layout   { return Get().Layout }
func GetLogging() Logging { return Get().Logging }
func IsDebugMode() bool   { return Get().App.Debug }

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
