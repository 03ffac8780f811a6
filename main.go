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

	"github.com/ansel1/merry"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cybrota/treebench/tree"
)

var version = "dev"

// cli carries state shared by the subcommands once configuration is loaded.
type cli struct {
	configPath string
	cfg        *Config
	log        *logrus.Logger
	help       *cache.Cache
}

func (app *cli) load(stderr io.Writer) error {
	cfg, err := LoadConfig(app.configPath)
	if err != nil {
		return err
	}
	logger, err := setupLogging(cfg.Log, stderr)
	if err != nil {
		return err
	}
	app.cfg, app.log = cfg, logger
	return nil
}

func (app *cli) runREPL(cmd *cobra.Command, backend string) error {
	if backend == "" {
		backend = app.cfg.Repl.Backend
	}
	m, err := tree.New(backend, app.cfg.Tree)
	if err != nil {
		return err
	}
	log := app.log.WithFields(logrus.Fields{"component": "repl", "backend": m.Kind()})
	log.Debug("session started")

	repl := NewREPL(m, cmd.OutOrStdout(), app.help, log)
	repl.SetPrompt(app.cfg.Repl.Prompt)
	return repl.Run(cmd.InOrStdin())
}

func newRootCommand(app *cli) *cobra.Command {
	var backend string

	rootCmd := &cobra.Command{
		Use:     "treebench",
		Version: version,
		Short:   "Ordered maps on binary search trees, and a benchmark to compare them",
		Long: `treebench keeps an ordered int to string map on a plain binary search tree,
an AVL tree or a red-black tree. Without a subcommand it starts an
interactive session on the configured backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd.ErrOrStderr())
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runREPL(cmd, backend)
		},
	}
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default ~/.treebench.yaml)")
	rootCmd.Flags().StringVar(&backend, "backend", "", "backend for the interactive session")

	cmdRepl := &cobra.Command{
		Use:   "repl",
		Short: "Run commands against one backend from standard input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runREPL(cmd, backend)
		},
	}
	cmdRepl.Flags().StringVar(&backend, "backend", "", "bst, avl, rbt, btree or llrb, optionally with +bloom")

	cmdSettings := &cobra.Command{
		Use:   "settings",
		Short: "Show the configuration, creating the default file if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return displaySettings(cmd.OutOrStdout(), app.configPath)
		},
	}

	cmdUsage := &cobra.Command{
		Use:   "usage",
		Short: "Print the treebench usage guide",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), getHelpMessage(app.help))
		},
	}

	cmdVersion := &cobra.Command{
		Use:   "version",
		Short: "Print treebench version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	rootCmd.AddCommand(cmdRepl, newBenchCommand(app), cmdSettings, cmdUsage, cmdVersion)
	return rootCmd
}

func main() {
	app := &cli{help: NewHelpCache()}
	if err := newRootCommand(app).Execute(); err != nil {
		// the REPL already reported an unknown command
		if !merry.Is(err, errUnknownCommand) {
			msg := merry.UserMessage(err)
			if msg == "" {
				msg = err.Error()
			}
			fmt.Fprintln(os.Stderr, NewStyles(os.Stderr).Error.Render("Error: "+msg))
		}
		os.Exit(1)
	}
}
