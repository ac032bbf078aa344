package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	SupportedSchema = "v1"

	// DefaultFile is read when no config path is given; its absence is fine.
	DefaultFile = "callclean.yml"
	// DefaultInput is the workbook cleaned when nothing else names one.
	DefaultInput = "Customer_Call_List.xlsx"

	EnvPrefix = "CALLCLEAN__"
)

type Source struct {
	Path      string `koanf:"path" validate:"required"`
	Driver    string `koanf:"driver" validate:"omitempty,oneof=xlsx csv"` // empty → by extension
	Sheet     string `koanf:"sheet"`
	Delimiter string `koanf:"delimiter" validate:"omitempty,len=1"`
}

type Sink struct {
	Drivers []string `koanf:"drivers" validate:"min=1,dive,oneof=stdout"`
	Format  string   `koanf:"format" validate:"oneof=text json yaml"`
	MaxRows int      `koanf:"max_rows" validate:"gte=0"`
}

type Booleans struct {
	// Unmapped is the value of a non-empty cell matching no synonym.
	Unmapped bool `koanf:"unmapped"`
}

type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

type Metrics struct {
	// Textfile, when set, receives the run's metrics in Prometheus text
	// format once the run ends.
	Textfile string `koanf:"textfile"`
}

type Config struct {
	SchemaVersion string   `koanf:"schema_version" validate:"eq=v1"`
	Source        Source   `koanf:"source"`
	Sink          Sink     `koanf:"sink"`
	Booleans      Booleans `koanf:"booleans"`
	Log           Log      `koanf:"log"`
	Metrics       Metrics  `koanf:"metrics"`
}

// Default returns the configuration used when neither file nor env set a key.
func Default() Config {
	return Config{
		SchemaVersion: SupportedSchema,
		Source:        Source{Path: DefaultInput},
		Sink:          Sink{Drivers: []string{"stdout"}, Format: "text"},
		Booleans:      Booleans{Unmapped: true},
	}
}

// ---------------------------------------------------------------------------
// Loader
// ---------------------------------------------------------------------------

// Load merges Default, the YAML file at path and env-vars (prefix
// `CALLCLEAN__`, delimiter `__`), applies overrides in order and validates
// the result. An empty path reads DefaultFile if it exists.
func Load(path string, overrides ...func(*Config)) (Config, error) {
	k := koanf.New(".")
	optional := path == ""
	if optional {
		path = DefaultFile
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	// schema version check (only when YAML is present)
	if sv := k.String("schema_version"); sv != "" && sv != SupportedSchema {
		return Config{}, fmt.Errorf("config schema_version %q not supported (want %q)", sv, SupportedSchema)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	for _, o := range overrides {
		o(&cfg)
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// envKey maps CALLCLEAN__SINK__MAX_ROWS to sink.max_rows.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// ---------------------------------------------------------------------------
// defaults & validation
// ---------------------------------------------------------------------------

func applyDefaults(c *Config) {
	if c.SchemaVersion == "" {
		c.SchemaVersion = SupportedSchema
	}
	if c.Source.Path == "" {
		c.Source.Path = DefaultInput
	}
	if c.Sink.Format == "" {
		c.Sink.Format = "text"
	}
	if len(c.Sink.Drivers) == 0 {
		c.Sink.Drivers = []string{"stdout"}
	}
	if c.Log.Level == "" {
		c.Log.Level = os.Getenv("CALLCLEAN_LOG_LEVEL")
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every invalid field in one error.
func Validate(c Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("config: invalid: %s", strings.Join(msgs, "; "))
}
