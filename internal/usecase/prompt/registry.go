package prompt

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	usecaseerrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	"go.uber.org/zap"
)

//go:embed prompt_templates.json
var embeddedTemplates []byte

// LatestVersion is the version alias that resolves to the version marked
// is_latest. The empty string resolves the same way.
const LatestVersion = "latest"

type templateFile struct {
	Templates map[string]map[string]templateEntry `json:"templates"`
}

type templateEntry struct {
	Content     string `json:"content"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	Author      string `json:"author"`
	IsLatest    bool   `json:"is_latest"`
}

// Registry holds every prompt template version, loaded once at construction
// and immutable afterwards. Resolution is exact: an explicitly requested
// version that does not exist is an error, never a silent fallback to latest.
type Registry struct {
	templates map[string]map[string]entities.TemplateVersion
	latest    map[string]string
	logger    *zap.Logger
}

// NewRegistry loads the registry from the embedded template data.
func NewRegistry(logger *zap.Logger) (*Registry, error) {
	return NewRegistryFromJSON(embeddedTemplates, logger)
}

// NewRegistryFromJSON loads the registry from raw JSON. Every template must
// have exactly one version marked is_latest; anything else fails the load so
// a broken template file is caught at startup, not at request time.
func NewRegistryFromJSON(data []byte, logger *zap.Logger) (*Registry, error) {
	var file templateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse template data: %w", err)
	}

	r := &Registry{
		templates: make(map[string]map[string]entities.TemplateVersion),
		latest:    make(map[string]string),
		logger:    logger,
	}

	for name, versions := range file.Templates {
		if len(versions) == 0 {
			return nil, fmt.Errorf("template %s: %w", name, usecaseerrors.ErrEmptyTemplate)
		}

		r.templates[name] = make(map[string]entities.TemplateVersion, len(versions))
		for version, entry := range versions {
			r.templates[name][version] = entities.TemplateVersion{
				Content:     entry.Content,
				Description: entry.Description,
				IsLatest:    entry.IsLatest,
				CreatedAt:   entry.CreatedAt,
				Author:      entry.Author,
			}
			if entry.IsLatest {
				if _, dup := r.latest[name]; dup {
					return nil, fmt.Errorf("template %s: %w", name, usecaseerrors.ErrDuplicateLatest)
				}
				r.latest[name] = version
			}
		}
		if _, ok := r.latest[name]; !ok {
			return nil, fmt.Errorf("template %s: %w", name, usecaseerrors.ErrNoLatestVersion)
		}
	}

	if logger != nil {
		logger.Info("✅ Prompt templates loaded", zap.Int("templates", len(r.templates)))
	}
	return r, nil
}

// Resolve returns the template content for the given name and version along
// with the concrete version it resolved to. Version "" or "latest" resolves
// to the version marked is_latest; any other version must exist exactly.
func (r *Registry) Resolve(name, version string) (entities.TemplateVersion, string, error) {
	versions, ok := r.templates[name]
	if !ok {
		return entities.TemplateVersion{}, "", fmt.Errorf("%w: %s", usecaseerrors.ErrTemplateNotFound, name)
	}

	resolved := version
	if resolved == "" || resolved == LatestVersion {
		resolved = r.latest[name]
	}

	tmpl, ok := versions[resolved]
	if !ok {
		return entities.TemplateVersion{}, "", fmt.Errorf("%w: %s@%s", usecaseerrors.ErrVersionNotFound, name, version)
	}
	return tmpl, resolved, nil
}

// LatestVersionOf returns the version marked is_latest for the template.
func (r *Registry) LatestVersionOf(name string) (string, error) {
	version, ok := r.latest[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", usecaseerrors.ErrTemplateNotFound, name)
	}
	return version, nil
}

// ListTemplates returns summary info for every template, sorted by name.
func (r *Registry) ListTemplates() []entities.TemplateInfo {
	infos := make([]entities.TemplateInfo, 0, len(r.templates))
	for name, versions := range r.templates {
		latest := r.latest[name]
		infos = append(infos, entities.TemplateInfo{
			Name:          name,
			LatestVersion: latest,
			Description:   versions[latest].Description,
			Versions:      sortVersions(versions),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// ListVersions returns every version of a template in ascending order.
func (r *Registry) ListVersions(name string) ([]string, error) {
	versions, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", usecaseerrors.ErrTemplateNotFound, name)
	}
	return sortVersions(versions), nil
}

// sortVersions orders version labels numerically when they parse as numbers
// ("2.0" after "1.0", "10.0" after "9.0"), lexically otherwise.
func sortVersions(versions map[string]entities.TemplateVersion) []string {
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.ParseFloat(out[i], 64)
		b, errB := strconv.ParseFloat(out[j], 64)
		if errA == nil && errB == nil {
			if a != b {
				return a < b
			}
			return out[i] < out[j]
		}
		return out[i] < out[j]
	})
	return out
}
