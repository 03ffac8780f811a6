// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ansel1/merry"
	"gopkg.in/yaml.v3"

	"github.com/cybrota/treebench/bench"
	"github.com/cybrota/treebench/tree"
)

const configFileName = ".treebench.yaml"

type BenchConfig struct {
	MinN       int      `yaml:"min_n"`
	MaxN       int      `yaml:"max_n"`
	Points     int      `yaml:"points"`
	ErrorMax   float64  `yaml:"error_max"`
	MinSamples int      `yaml:"min_samples"`
	MaxSamples int      `yaml:"max_samples"`
	Estimator  string   `yaml:"estimator"`
	Seed       int64    `yaml:"seed"`
	KeySpace   int      `yaml:"key_space"`
	Backends   []string `yaml:"backends"`
	Output     string   `yaml:"output"`
	SQLite     string   `yaml:"sqlite"`
	Progress   bool     `yaml:"progress"`
}

type ReplConfig struct {
	Backend string `yaml:"backend"`
	Prompt  string `yaml:"prompt"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Bench BenchConfig  `yaml:"bench"`
	Repl  ReplConfig   `yaml:"repl"`
	Log   LogConfig    `yaml:"log"`
	Tree  tree.Options `yaml:"tree"`
}

var defaultConfig = newDefaultConfig()

func newDefaultConfig() Config {
	b := bench.DefaultConfig()
	return Config{
		Bench: BenchConfig{
			MinN:       b.MinN,
			MaxN:       b.MaxN,
			Points:     b.Points,
			ErrorMax:   b.ErrorMax,
			MinSamples: b.MinSamples,
			MaxSamples: b.MaxSamples,
			Estimator:  string(b.Estimator),
			Backends:   b.Backends,
			Progress:   true,
		},
		Repl: ReplConfig{Backend: "bst"},
		Log:  LogConfig{Level: "warn", Format: "text"},
		Tree: tree.Options{
			BTreeDegree:    tree.DefaultBTreeDegree,
			BloomEstimate:  tree.DefaultBloomEstimate,
			BloomFalseRate: tree.DefaultBloomFalseRate,
		},
	}
}

// applyDefaults fills every unset field from defaultConfig.
func (c *Config) applyDefaults() {
	d := newDefaultConfig()
	if c.Bench.MinN == 0 {
		c.Bench.MinN = d.Bench.MinN
	}
	if c.Bench.MaxN == 0 {
		c.Bench.MaxN = d.Bench.MaxN
	}
	if c.Bench.Points == 0 {
		c.Bench.Points = d.Bench.Points
	}
	if c.Bench.ErrorMax == 0 {
		c.Bench.ErrorMax = d.Bench.ErrorMax
	}
	if c.Bench.MinSamples == 0 {
		c.Bench.MinSamples = d.Bench.MinSamples
	}
	if c.Bench.MaxSamples == 0 {
		c.Bench.MaxSamples = d.Bench.MaxSamples
	}
	if c.Bench.Estimator == "" {
		c.Bench.Estimator = d.Bench.Estimator
	}
	if len(c.Bench.Backends) == 0 {
		c.Bench.Backends = d.Bench.Backends
	}
	if c.Repl.Backend == "" {
		c.Repl.Backend = d.Repl.Backend
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Tree.BTreeDegree == 0 {
		c.Tree.BTreeDegree = d.Tree.BTreeDegree
	}
	if c.Tree.BloomEstimate == 0 {
		c.Tree.BloomEstimate = d.Tree.BloomEstimate
	}
	if c.Tree.BloomFalseRate == 0 {
		c.Tree.BloomFalseRate = d.Tree.BloomFalseRate
	}
}

// harnessConfig converts the bench section for the harness.
func (c *Config) harnessConfig() (bench.Config, error) {
	est, err := bench.ParseEstimator(c.Bench.Estimator)
	if err != nil {
		return bench.Config{}, err
	}
	backends := make([]string, len(c.Bench.Backends))
	for i, b := range c.Bench.Backends {
		backends[i] = strings.ToLower(strings.TrimSpace(b))
	}
	return bench.Config{
		MinN:       c.Bench.MinN,
		MaxN:       c.Bench.MaxN,
		Points:     c.Bench.Points,
		ErrorMax:   c.Bench.ErrorMax,
		MinSamples: c.Bench.MinSamples,
		MaxSamples: c.Bench.MaxSamples,
		Estimator:  est,
		Seed:       c.Bench.Seed,
		KeySpace:   c.Bench.KeySpace,
		Backends:   backends,
		Tree:       c.Tree,
	}, nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads the YAML file at path, or ~/.treebench.yaml when path is
// empty. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			cfg := newDefaultConfig()
			return &cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := newDefaultConfig()
		return &cfg, nil
	}
	if err != nil {
		return nil, merry.Prependf(err, "reading %s", path)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, merry.Prependf(err, "parsing %s", path).WithValue("path", path)
	}
	config.applyDefaults()
	return &config, nil
}

func createDefaultConfigFile(path string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return merry.Prepend(err, "marshalling default config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return merry.Prependf(err, "writing config file %s", path)
	}
	return nil
}

// displaySettings prints the effective configuration, creating the default
// file first when none exists.
func displaySettings(w io.Writer, path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return merry.Prepend(err, "locating config")
		}
		path = p
	}
	st := NewStyles(w)

	created := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFile(path); err != nil {
			return err
		}
		created = true
	}

	config, err := LoadConfig(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, st.Title.Render("treebench configuration"))
	if created {
		fmt.Fprintf(w, "config file: %s %s\n\n", path, st.Success.Render("(newly created)"))
	} else {
		fmt.Fprintf(w, "config file: %s\n\n", path)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return merry.Wrap(err)
	}
	fmt.Fprint(w, string(data))
	fmt.Fprintln(w, st.Muted.Render("\nEdit the file to change defaults; bench flags override it per run."))
	return nil
}
