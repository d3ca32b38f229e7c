// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package version

import (
	"fmt"
	"io"
	"runtime"
)

// Should have real values set at build time with -ldflags "-X ...".
var (
	Version = "devel"
	Time    = "unknown"
	Commit  = "unknown"
)

// Info is the build information of the binary.
type Info struct {
	Version string `json:"version"`
	Time    string `json:"time"`
	Commit  string `json:"commit"`

	GoArch    string `json:"go_arch"`
	GoOS      string `json:"go_os"`
	GoVersion string `json:"go_version"`
}

func Get() Info {
	return Info{
		Version: Version,
		Time:    Time,
		Commit:  Commit,

		GoArch:    runtime.GOARCH,
		GoOS:      runtime.GOOS,
		GoVersion: runtime.Version(),
	}
}

// Fprint writes the build information in tabular form.
func (i Info) Fprint(w io.Writer) {
	fmt.Fprintln(w, "Version:\t", i.Version)
	fmt.Fprintln(w, "Built time:\t", i.Time)
	fmt.Fprintln(w, "Git commit:\t", i.Commit)
	fmt.Fprintln(w, "Go Arch:\t", i.GoArch)
	fmt.Fprintln(w, "Go OS:\t\t", i.GoOS)
	fmt.Fprintln(w, "Go Version:\t", i.GoVersion)
}
