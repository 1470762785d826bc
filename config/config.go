package config

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/coreos/pkg/capnslog"
	"github.com/mattn/go-isatty"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/monkey", "config")

// DefaultPath is where the driver looks for its configuration when no
// --config flag is given.
const DefaultPath = ".monkey.yml"

type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	Color              bool   `yaml:"color"`
	LogLevel           string `yaml:"log_level"`
	EchoTokens         bool   `yaml:"echo_tokens"`
}

func Default() Config {
	return Config{
		Prompt:             ">> ",
		ContinuationPrompt: ".. ",
		HistoryFile:        ".monkey_history",
		Color:              isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		LogLevel:           "WARNING",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		plog.Debugf("no config at %s, using defaults", path)
		return cfg, nil
	} else if err != nil {
		return cfg, tracerr.Wrap(err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, tracerr.Wrap(fmt.Errorf("error reading %s: %w", path, err))
	}

	plog.Debugf("loaded config from %s", path)
	return cfg, nil
}

func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Write creates path holding c. Existing files are left alone.
func (c Config) Write(path string) error {
	fi, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer fi.Close()

	out, err := c.Marshal()
	if err != nil {
		return tracerr.Wrap(err)
	}

	_, err = fi.Write(out)
	if err != nil {
		return tracerr.Wrap(err)
	}

	return nil
}
