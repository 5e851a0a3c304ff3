// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wireconfig holds the build-time constants the wire codec (package
// aricbor) needs but which are properly catalog/ADM-defined rather than
// hardcoded: the timepoint epoch, and an interop toggle for an alternate
// tag-based time encoding. Narrowed down from Bureau's lib/config, which
// supported arbitrary multi-file layered configuration; this package has
// exactly one job and one source (a single optional YAML file), since every
// value it holds is a handful of wire constants, not application
// configuration.
package wireconfig

import (
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the wire-format constants used by package aricbor.
type Config struct {
	// Epoch is the reference instant for timepoint encoding. The DTN
	// reference schema uses 2000-01-01T00:00:00Z; do not assume POSIX
	// epoch.
	Epoch time.Time `yaml:"epoch"`

	// UseTimeTags, when true, wraps timepoint/timeperiod values in CBOR
	// tags 1 and TimeperiodTag instead of the default bare
	// [type_code, timeval] form. The bare form is what this codec's
	// reference decoder round-trips; tags exist for interop with peers
	// that expect them.
	UseTimeTags bool `yaml:"use_time_tags"`

	// TimeperiodTag is the CBOR tag number used for timeperiod values
	// when UseTimeTags is set. Timepoints always use tag 1.
	TimeperiodTag uint64 `yaml:"timeperiod_tag"`
}

// Default returns the configuration this codec ships with: the DTN
// reference epoch (2000-01-01T00:00:00Z), bare time encoding, and
// timeperiod tag 1003 held in reserve for UseTimeTags mode.
func Default() Config {
	return Config{
		Epoch:         time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		UseTimeTags:   false,
		TimeperiodTag: 1003,
	}
}

// LoadFile reads a wire configuration override from a single YAML file,
// starting from Default and overriding only the fields present in the
// file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Load(f)
}

// Load reads a wire configuration override from r.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	return cfg, nil
}
