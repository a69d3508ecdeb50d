package cfg

import (
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "BUFMGR"

type Config struct {
	Environment Environment `default:"dev"`

	NumFrames uint64 `default:"64" split_words:"true"`
	DataDir   string `default:"data" split_words:"true"`
	FileName  string `default:"pages.db" split_words:"true"`
	LogLevel  string `default:"info" split_words:"true"`

	// bench
	Fresh   bool `default:"false"`
	Workers int  `default:"8"`
	Ops     int  `default:"100000"`
	Pages   int  `default:"1024"`
}

func (c Config) FilePath() string {
	return filepath.Join(c.DataDir, c.FileName)
}

// Load reads the .env file at path, if any, and then the BUFMGR_* environment
// variables. Variables already set in the environment win over the file.
func Load(path string) (Config, error) {
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}

	var c Config
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, errors.Wrap(err, "process env")
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) Validate() error {
	if err := c.Environment.Validate(); err != nil {
		return errors.Wrap(err, "environment validation")
	}

	if c.NumFrames == 0 {
		return errors.New("number of frames must be positive")
	}

	if c.Workers <= 0 || c.Ops < 0 || c.Pages <= 0 {
		return errors.New("bench needs positive workers and pages and a non-negative number of ops")
	}

	return nil
}

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"

	DefaultEnv = EnvDev
)

type Environment string

func (e Environment) Validate() error {
	if e != EnvDev && e != EnvProd {
		return errors.New("environment must be either dev or prod")
	}

	return nil
}
