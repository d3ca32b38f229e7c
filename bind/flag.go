// Copyright 2023-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bind

import (
	"strings"

	"github.com/mmatczuk/anyflag"
	"github.com/saucelabs/udpduplex"
	"github.com/saucelabs/udpduplex/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func ConfigFile(fs *pflag.FlagSet, configFile *string) {
	fs.StringVarP(configFile,
		"config-file", "c", *configFile, "<path>"+
			"Configuration file to load options from. "+
			"The supported formats are: JSON, YAML, TOML, HCL, and Java properties. "+
			"The file format is determined by the file extension, if not specified the default format is YAML. "+
			"The following precedence order of configuration sources is used: command flags, environment variables, config file, default values. ")
}

func SessionConfig(fs *pflag.FlagSet, cfg *udpduplex.SessionConfig) {
	fs.DurationVar(&cfg.PollInterval,
		"poll-interval", cfg.PollInterval,
		"The maximum amount of time to wait for inbound datagrams in one loop iteration. "+
			"All datagrams that arrive within this time are printed before the next send is considered. ")

	fs.IntVar(&cfg.ReadBufferSize,
		"read-buffer-size", cfg.ReadBufferSize, "<bytes>"+
			"Size of the receive buffer. "+
			"One byte is reserved, datagrams longer than size-1 bytes are truncated. ")
}

func HTTPServerConfig(fs *pflag.FlagSet, cfg *udpduplex.HTTPServerConfig, prefix string) {
	namePrefix := prefix
	if namePrefix != "" {
		namePrefix += "-"
	}

	fs.StringVar(&cfg.Addr,
		namePrefix+"address", cfg.Addr, "<host:port>"+
			"The API server address to listen on, it serves metrics, health, readiness, version and configuration endpoints. "+
			"If empty, the API server is disabled. ")

	fs.DurationVar(&cfg.ReadHeaderTimeout,
		namePrefix+"read-header-timeout", cfg.ReadHeaderTimeout,
		"The amount of time allowed to read request headers.")
}

func LogConfig(fs *pflag.FlagSet, cfg *log.Config) {
	fs.Var(newFileFlag(&cfg.File, udpduplex.OpenFileParser(log.DefaultFileFlags, log.DefaultFileMode, log.DefaultDirMode)),
		"log-file", "<path>"+
			"Path to the log file, if empty, logs to stderr. "+
			"The file is reopened on SIGHUP. ")

	fs.Var(anyflag.NewValue[log.Level](cfg.Level, &cfg.Level, log.ParseLevel),
		"log-level", "<error|warn|info|debug>"+
			"Log level. ")

	fs.Var(anyflag.NewValue[log.Format](cfg.Format, &cfg.Format, log.ParseFormat),
		"log-format", "<text|json>"+
			"Log format. ")
}

func MarkFlagHidden(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.Flags().MarkHidden(name); err != nil {
			panic(err)
		}
	}
}

// AutoMarkFlagFilename marks flags that take a path as filename flags for shell completion.
func AutoMarkFlagFilename(cmd *cobra.Command) {
	mark := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if strings.HasPrefix(f.Usage, "<path") || strings.HasSuffix(f.Name, "-file") {
				if err := fs.SetAnnotation(f.Name, cobra.BashCompFilenameExt, []string{}); err != nil {
					panic(err)
				}
			}
		})
	}
	mark(cmd.Flags())
	mark(cmd.PersistentFlags())
}
