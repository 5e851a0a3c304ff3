// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireconfig

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	wantEpoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.Epoch.Equal(wantEpoch) {
		t.Errorf("Epoch = %v, want %v", cfg.Epoch, wantEpoch)
	}
	if cfg.UseTimeTags {
		t.Error("UseTimeTags should default to false")
	}
	if cfg.TimeperiodTag != 1003 {
		t.Errorf("TimeperiodTag = %d, want 1003", cfg.TimeperiodTag)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	cfg, err := Load(strings.NewReader("use_time_tags: true\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.UseTimeTags {
		t.Error("UseTimeTags override was not applied")
	}
	// Fields absent from the YAML keep their Default() value.
	wantEpoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.Epoch.Equal(wantEpoch) {
		t.Errorf("Epoch = %v, want unchanged default %v", cfg.Epoch, wantEpoch)
	}
	if cfg.TimeperiodTag != 1003 {
		t.Errorf("TimeperiodTag = %d, want unchanged default 1003", cfg.TimeperiodTag)
	}
}

func TestLoadOverridesEpochAndTimeperiodTag(t *testing.T) {
	yaml := "epoch: 2024-01-01T00:00:00Z\ntimeperiod_tag: 2000\nuse_time_tags: true\n"
	cfg, err := Load(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wantEpoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.Epoch.Equal(wantEpoch) {
		t.Errorf("Epoch = %v, want %v", cfg.Epoch, wantEpoch)
	}
	if cfg.TimeperiodTag != 2000 {
		t.Errorf("TimeperiodTag = %d, want 2000", cfg.TimeperiodTag)
	}
	if !cfg.UseTimeTags {
		t.Error("UseTimeTags override was not applied")
	}
}

func TestLoadEmptyReaderReturnsDefault(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(empty) = %+v, want Default() = %+v", cfg, Default())
	}
}

func TestLoadFileMissingReturnsError(t *testing.T) {
	if _, err := LoadFile("/nonexistent/path/to/wireconfig.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
