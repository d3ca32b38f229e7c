// Copyright 2023-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cobrautil

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/exp/maps"
)

type DescribeFormat int

const (
	Plain DescribeFormat = iota
	OneLine
	JSON
)

// FlagsDescriber renders flag values, it is used to log the effective configuration.
type FlagsDescriber struct {
	Format          DescribeFormat
	ShowChangedOnly bool
	ShowHidden      bool
}

func (d FlagsDescriber) DescribeFlags(fs *pflag.FlagSet) ([]byte, error) {
	args := make(map[string]any, fs.NFlag())

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" {
			return
		}
		if f.Hidden && !d.ShowHidden {
			return
		}
		if !f.Changed && d.ShowChangedOnly {
			return
		}

		switch {
		case f.Value.Type() == "bool":
			args[f.Name] = f.Value
		case isSliceValue(f.Value):
			sv := f.Value.(pflag.SliceValue) //nolint:forcetypeassert // checked above
			if d.Format == JSON {
				args[f.Name] = sv.GetSlice()
			} else {
				args[f.Name] = strings.Join(sv.GetSlice(), ",")
			}
		default:
			args[f.Name] = f.Value.String()
		}
	})

	switch d.Format {
	case Plain, OneLine:
		sep := "\n"
		if d.Format == OneLine {
			sep = " "
		}
		keys := maps.Keys(args)
		sort.Strings(keys)
		var sb strings.Builder
		for i, name := range keys {
			if i > 0 {
				sb.WriteString(sep)
			}
			fmt.Fprintf(&sb, "%s=%v", name, args[name])
		}
		return []byte(sb.String()), nil
	case JSON:
		return json.Marshal(args)
	default:
		return nil, errors.New("unknown format")
	}
}

func isSliceValue(v pflag.Value) bool {
	_, ok := v.(pflag.SliceValue)
	return ok
}
