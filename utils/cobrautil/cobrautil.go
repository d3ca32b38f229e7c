// Copyright 2023-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cobrautil

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

// WrapLong wraps the long description at the given width, paragraphs are kept.
func WrapLong(cmd *cobra.Command, width uint) {
	paragraphs := strings.Split(strings.TrimSpace(cmd.Long), "\n\n")
	for i, p := range paragraphs {
		paragraphs[i] = wordwrap.WrapString(strings.Join(strings.Fields(p), " "), width)
	}
	cmd.Long = strings.Join(paragraphs, "\n\n")
}

func NoHelpSubcommand(cmd *cobra.Command) {
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
