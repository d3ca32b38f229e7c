// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cobrautil

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const helpIndent = 8

// SetFlagUsages makes the usage template of cmd and its subcommands render flags with FlagUsages.
func SetFlagUsages(cmd *cobra.Command, envPrefix string, wrapLimit uint) {
	cobra.AddTemplateFunc("flagUsages", func(fs *pflag.FlagSet) string {
		return FlagUsages(fs, envPrefix, wrapLimit)
	})

	t := cmd.UsageTemplate()
	t = strings.ReplaceAll(t, ".LocalFlags.FlagUsages", "flagUsages .LocalFlags")
	t = strings.ReplaceAll(t, ".InheritedFlags.FlagUsages", "flagUsages .InheritedFlags")
	cmd.SetUsageTemplate(t)
}

// FlagUsages renders visible flags of fs, one flag per paragraph:
//
//	      --log-file <path>
//	        Path to the log file... (env PREFIX_LOG_FILE)
//
// A "<placeholder>" prefix of the usage text is used as the value name and removed from the usage.
func FlagUsages(fs *pflag.FlagSet, envPrefix string, wrapLimit uint) string {
	var sb strings.Builder
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		writeHelpFlag(&sb, f, envPrefix, wrapLimit)
	})
	return sb.String()
}

func writeHelpFlag(w io.Writer, f *pflag.Flag, envPrefix string, wrapLimit uint) {
	name, usage := flagNameAndUsage(f)

	if f.Shorthand != "" {
		fmt.Fprintf(w, "  -%s, --%s", f.Shorthand, f.Name)
	} else {
		fmt.Fprintf(w, "      --%s", f.Name)
	}
	if name != "" {
		fmt.Fprintf(w, " %s", name)
	}
	fmt.Fprintln(w)

	def := f.DefValue
	if def == "[]" {
		def = ""
	}
	if def != "" && f.Value.Type() != "bool" {
		if f.Value.Type() == "string" {
			usage += fmt.Sprintf(" (default '%s')", def)
		} else {
			usage += fmt.Sprintf(" (default %s)", def)
		}
	}
	if f.Name != "help" && envPrefix != "" {
		usage += fmt.Sprintf(" (env %s)", EnvName(envPrefix, f.Name))
	}

	pad := strings.Repeat(" ", helpIndent)
	wrapped := wordwrap.WrapString(usage, wrapLimit-helpIndent)
	fmt.Fprintf(w, "%s%s\n\n", pad, strings.ReplaceAll(wrapped, "\n", "\n"+pad))
}

// flagNameAndUsage returns the value name and the usage text without the placeholder.
// Flags without a placeholder get the pflag type name, bool flags get none.
func flagNameAndUsage(f *pflag.Flag) (name, usage string) {
	usage = strings.TrimSpace(f.Usage)
	if end := placeholderEnd(usage); end > 0 {
		return usage[:end], strings.TrimSpace(usage[end:])
	}

	name, usage = pflag.UnquoteUsage(f)
	if name != "" {
		name = "<" + name + ">"
	}
	return name, strings.TrimSpace(usage)
}

// placeholderEnd returns the length of a leading "<...>" placeholder, or 0 if there is none.
func placeholderEnd(usage string) int {
	if !strings.HasPrefix(usage, "<") {
		return 0
	}
	return strings.IndexByte(usage, '>') + 1
}
