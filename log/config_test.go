// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{ErrorLevel, WarnLevel, InfoLevel, DebugLevel} {
		got, err := ParseLevel(l.String())
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", l, err)
		}
		if got != l {
			t.Fatalf("ParseLevel(%q): got %v, want %v", l, got, l)
		}
	}

	if _, err := ParseLevel("trace"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{TextFormat, JSONFormat} {
		got, err := ParseFormat(f.String())
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", f, err)
		}
		if got != f {
			t.Fatalf("ParseFormat(%q): got %v, want %v", f, got, f)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error")
	}
}

func TestLevelStringOutOfRange(t *testing.T) {
	if s := Level(0).String(); s != "Level(0)" {
		t.Fatalf("got %q", s)
	}
}
