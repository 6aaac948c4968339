package prompt

import (
	"errors"
	"reflect"
	"testing"

	usecaseerrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
)

func TestNewRegistry_LoadsEmbeddedTemplates(t *testing.T) {
	r, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	tmpl, resolved, err := r.Resolve("default", "")
	if err != nil {
		t.Fatalf("Resolve default failed: %v", err)
	}
	if resolved != "2.0" {
		t.Fatalf("expected latest default version 2.0, got %s", resolved)
	}
	if !tmpl.IsLatest {
		t.Fatal("resolved template must carry is_latest")
	}
	if tmpl.Content == "" {
		t.Fatal("resolved template has empty content")
	}
}

func TestResolve_LatestAlias(t *testing.T) {
	r, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	_, byEmpty, err := r.Resolve("daily_report", "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	_, byAlias, err := r.Resolve("daily_report", "latest")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if byEmpty != byAlias || byEmpty != "2.0" {
		t.Fatalf("latest alias mismatch: %q vs %q", byEmpty, byAlias)
	}
}

func TestResolve_ExplicitVersion(t *testing.T) {
	r, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	tmpl, resolved, err := r.Resolve("default", "1.0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved != "1.0" || tmpl.IsLatest {
		t.Fatalf("expected pinned 1.0, got %s (is_latest=%v)", resolved, tmpl.IsLatest)
	}
}

func TestResolve_MissingVersionNeverFallsBack(t *testing.T) {
	r, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	_, _, err = r.Resolve("default", "9.9")
	if !errors.Is(err, usecaseerrors.ErrVersionNotFound) {
		t.Fatalf("expected ErrVersionNotFound, got %v", err)
	}
}

func TestResolve_UnknownTemplate(t *testing.T) {
	r, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	_, _, err = r.Resolve("does_not_exist", "")
	if !errors.Is(err, usecaseerrors.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	first, v1, err := r.Resolve("leadership", "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, v2, err := r.Resolve("leadership", "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if v1 != v2 || first.Content != next.Content {
			t.Fatal("identical resolve inputs must give identical outputs")
		}
	}
}

func TestNewRegistryFromJSON_RejectsDuplicateLatest(t *testing.T) {
	data := []byte(`{"templates": {"broken": {
		"1.0": {"content": "a", "is_latest": true},
		"2.0": {"content": "b", "is_latest": true}
	}}}`)

	if _, err := NewRegistryFromJSON(data, nil); !errors.Is(err, usecaseerrors.ErrDuplicateLatest) {
		t.Fatalf("expected ErrDuplicateLatest, got %v", err)
	}
}

func TestNewRegistryFromJSON_RejectsMissingLatest(t *testing.T) {
	data := []byte(`{"templates": {"broken": {
		"1.0": {"content": "a", "is_latest": false}
	}}}`)

	if _, err := NewRegistryFromJSON(data, nil); !errors.Is(err, usecaseerrors.ErrNoLatestVersion) {
		t.Fatalf("expected ErrNoLatestVersion, got %v", err)
	}
}

func TestNewRegistryFromJSON_RejectsEmptyTemplate(t *testing.T) {
	data := []byte(`{"templates": {"broken": {}}}`)

	if _, err := NewRegistryFromJSON(data, nil); !errors.Is(err, usecaseerrors.ErrEmptyTemplate) {
		t.Fatalf("expected ErrEmptyTemplate, got %v", err)
	}
}

func TestListVersions_NumericOrder(t *testing.T) {
	data := []byte(`{"templates": {"t": {
		"10.0": {"content": "c", "is_latest": true},
		"9.0":  {"content": "b", "is_latest": false},
		"1.0":  {"content": "a", "is_latest": false}
	}}}`)

	r, err := NewRegistryFromJSON(data, nil)
	if err != nil {
		t.Fatalf("NewRegistryFromJSON failed: %v", err)
	}
	versions, err := r.ListVersions("t")
	if err != nil {
		t.Fatalf("ListVersions failed: %v", err)
	}
	if !reflect.DeepEqual(versions, []string{"1.0", "9.0", "10.0"}) {
		t.Fatalf("expected numeric ordering, got %v", versions)
	}
}

func TestListTemplates_SortedWithLatest(t *testing.T) {
	r, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	infos := r.ListTemplates()
	if len(infos) == 0 {
		t.Fatal("expected templates")
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Name >= infos[i].Name {
			t.Fatalf("templates not sorted: %s before %s", infos[i-1].Name, infos[i].Name)
		}
	}
	for _, info := range infos {
		if info.LatestVersion == "" {
			t.Fatalf("template %s has no latest version", info.Name)
		}
	}
}
