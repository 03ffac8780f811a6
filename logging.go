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
	"io"

	"github.com/ansel1/merry"
	"github.com/sirupsen/logrus"
)

// setupLogging builds the process logger. Logs go to w, normally stderr, so
// benchmark output on stdout stays machine readable.
func setupLogging(cfg LogConfig, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, merry.WithUserMessagef(merry.Wrap(err), "unknown log level %q", cfg.Level)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, merry.Errorf("unknown log format %q", cfg.Format).WithUserMessagef("log format must be text or json, got %q", cfg.Format)
	}
	return logger, nil
}
