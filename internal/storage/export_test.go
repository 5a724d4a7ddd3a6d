// ABOUTME: Tests for export, import, and backend copy.
// ABOUTME: Verifies JSON/YAML envelopes, Markdown layout, and round trips between stores.
package storage

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func seededYAMLStore(t *testing.T, ids ...string) *YAMLStore {
	t.Helper()
	store := NewYAMLStore(filepath.Join(t.TempDir(), "calibrations.yaml"))
	for _, id := range ids {
		if err := store.Add(testCalibration(id, "scene "+id)); err != nil {
			t.Fatalf("Add(%s) failed: %v", id, err)
		}
	}
	return store
}

func TestExportJSON(t *testing.T) {
	store := seededYAMLStore(t, "20250131-01", "20250131-02")

	raw, err := ExportJSON(store)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Version != ExportVersion {
		t.Errorf("Version = %q, want %q", data.Version, ExportVersion)
	}
	if data.Tool != "calibctl" {
		t.Errorf("Tool = %q, want calibctl", data.Tool)
	}
	if data.ExportedAt.IsZero() {
		t.Error("expected ExportedAt to be set")
	}
	if len(data.Calibrations) != 2 {
		t.Fatalf("expected 2 calibrations, got %d", len(data.Calibrations))
	}
}

func TestExportJSONEmptyStore(t *testing.T) {
	store := seededYAMLStore(t)

	raw, err := ExportJSON(store)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if !strings.Contains(string(raw), `"calibrations": []`) {
		t.Errorf("expected empty calibrations array, got:\n%s", raw)
	}
}

func TestExportYAML(t *testing.T) {
	store := seededYAMLStore(t, "20250131-01")

	raw, err := ExportYAML(store)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var data struct {
		Tool         string `yaml:"tool"`
		Calibrations []struct {
			ID      string `yaml:"id"`
			Cameras []struct {
				SerialNumber string `yaml:"serial_number"`
			} `yaml:"cameras"`
		} `yaml:"calibrations"`
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if data.Tool != "calibctl" {
		t.Errorf("Tool = %q, want calibctl", data.Tool)
	}
	if len(data.Calibrations) != 1 || data.Calibrations[0].ID != "20250131-01" {
		t.Fatalf("unexpected calibrations: %+v", data.Calibrations)
	}
	if len(data.Calibrations[0].Cameras) != 3 || data.Calibrations[0].Cameras[2].SerialNumber != "C-003" {
		t.Errorf("unexpected cameras: %+v", data.Calibrations[0].Cameras)
	}
}

func TestExportMarkdown(t *testing.T) {
	store := seededYAMLStore(t, "20250131-01")

	md, err := ExportMarkdown(store)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# Calibration Export - ",
		"## 20250131-01",
		"- **Scene:** scene 20250131-01",
		"| Name | Model | Serial | Position | Distortion | In Focus | FOV |",
		"| left | IMX477 | L-001 | rig left | yes | yes | 90 |",
		"| right | IMX477 | R-002 | rig right | yes | no | 90 |",
		"Checkerboard 9x6, 25mm squares",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestExportMarkdownEscapesPipes(t *testing.T) {
	store := NewYAMLStore(filepath.Join(t.TempDir(), "calibrations.yaml"))
	c := testCalibration("20250131-01", "scene")
	c.Cameras[0].Name = "left|top"
	if err := store.Add(c); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	md, err := ExportMarkdown(store)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.Contains(md, `| left\|top |`) {
		t.Errorf("expected escaped pipe in markdown:\n%s", md)
	}
}

func TestExportMarkdownEmpty(t *testing.T) {
	md, err := ExportMarkdown(seededYAMLStore(t))
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.Contains(md, "No calibrations found.") {
		t.Errorf("expected empty notice, got:\n%s", md)
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	src := seededYAMLStore(t, "20250131-01", "20250131-02")
	raw, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerInMemory failed: %v", err)
	}
	defer dst.Close()

	n, err := ImportJSON(dst, raw)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}

	want, _ := src.List()
	got, err := dst.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("imported data mismatch (-want +got):\n%s", diff)
	}
}

func TestImportJSONDuplicateAddsNothing(t *testing.T) {
	store := seededYAMLStore(t, "20250131-02")
	raw, err := ExportJSON(seededYAMLStore(t, "20250131-01", "20250131-02", "20250131-03"))
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	n, err := ImportJSON(store, raw)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("ImportJSON error = %v, want ErrDuplicateID", err)
	}
	if n != 0 {
		t.Errorf("imported %d, want 0", n)
	}

	all, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 || all[0].ID != "20250131-02" {
		t.Errorf("store changed by failed import: %+v", all)
	}
}

func TestImportJSONRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantDup bool
	}{
		{name: "null entry", raw: `{"calibrations":[{"id":"20250131-01","date":"2025-01-31"},null]}`},
		{name: "missing id", raw: `{"calibrations":[{"id":"20250131-01"},{"scene":"no id"}]}`},
		{name: "bad date", raw: `{"calibrations":[{"id":"20250131-01","date":"31/01/2025"}]}`},
		{name: "repeated id", raw: `{"calibrations":[{"id":"20250131-01"},{"id":"20250131-01"}]}`, wantDup: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededYAMLStore(t)

			n, err := ImportJSON(store, []byte(tt.raw))
			if err == nil {
				t.Fatal("expected import error")
			}
			if tt.wantDup && !errors.Is(err, ErrDuplicateID) {
				t.Errorf("error = %v, want ErrDuplicateID", err)
			}
			if n != 0 {
				t.Errorf("imported %d, want 0", n)
			}

			all, err := store.List()
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(all) != 0 {
				t.Errorf("store has %d records after failed import, want 0", len(all))
			}
		})
	}
}

func TestCopyIntoOverlappingStoreAddsNothing(t *testing.T) {
	src := seededYAMLStore(t, "20250131-01", "20250131-02")
	dst := seededYAMLStore(t, "20250131-02")

	if _, err := Copy(dst, src); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Copy error = %v, want ErrDuplicateID", err)
	}
	if _, err := dst.Get("20250131-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(20250131-01) error = %v, want ErrNotFound", err)
	}
}

func TestImportJSONInvalid(t *testing.T) {
	if _, err := ImportJSON(seededYAMLStore(t), []byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestCopyBetweenBackends(t *testing.T) {
	src := seededYAMLStore(t, "20250131-01", "20250201-01")

	dst, err := Open(filepath.Join(t.TempDir(), "calibrations.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer dst.Close()

	n, err := Copy(dst, src)
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if n != 2 {
		t.Errorf("copied %d, want 2", n)
	}

	want, _ := src.List()
	got, err := dst.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("copied data mismatch (-want +got):\n%s", diff)
	}
}
