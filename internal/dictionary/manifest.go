package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/spellshare/internal/domain"
	"github.com/MrSnakeDoc/spellshare/internal/utils"
)

const (
	DefaultMaxSuggestions = 5
	DefaultMaxDistance    = 2
)

// Manifest is the top-level structure of the dictionaries file.
//
//	languages:
//	  en:
//	    name: English
//	    words: ./en_US.dic
//	    max_suggestions: 5
//	    max_distance: 2
type Manifest struct {
	Languages map[string]LanguageSpec `yaml:"languages"`
}

// LanguageSpec describes one dictionary variant.
type LanguageSpec struct {
	Name           string `yaml:"name"`
	Words          string `yaml:"words"`
	MaxSuggestions int    `yaml:"max_suggestions,omitempty"`
	MaxDistance    int    `yaml:"max_distance,omitempty"`
}

// Loader handles loading of the manifest and the word lists it points to.
type Loader struct {
	filePath string
}

// NewLoader creates a new manifest loader
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Path returns the manifest path.
func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the manifest. ${VAR} references are expanded from
// the environment before parsing.
func (l *Loader) Load() (*Manifest, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary manifest: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary manifest: %w", err)
	}
	if len(m.Languages) == 0 {
		return nil, fmt.Errorf("dictionary manifest %s declares no languages", l.filePath)
	}

	return &m, nil
}

// LoadAll loads the manifest and every word list it declares. One broken
// language fails the whole load so a reload never half-applies.
func (l *Loader) LoadAll() (map[domain.Language]*Dictionary, error) {
	m, err := l.Load()
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(m.Languages))
	for code := range m.Languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	baseDir := filepath.Dir(l.filePath)
	dicts := make(map[domain.Language]*Dictionary, len(codes))

	for _, code := range codes {
		entry := m.Languages[code]

		lang, err := domain.ParseLanguage(code)
		if err != nil {
			return nil, fmt.Errorf("invalid language in manifest: %w", err)
		}
		if _, dup := dicts[lang]; dup {
			return nil, fmt.Errorf("language %s is listed twice in manifest", lang)
		}
		if entry.Words == "" {
			return nil, fmt.Errorf("language %s: words path is empty", lang)
		}

		path := entry.Words
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		entries, err := readWordFile(path)
		if err != nil {
			return nil, fmt.Errorf("language %s: %w", lang, err)
		}

		dicts[lang] = New(lang, entries, Options{
			Name:           entry.Name,
			Source:         path,
			MaxSuggestions: entry.MaxSuggestions,
			MaxDistance:    entry.MaxDistance,
		})
	}

	return dicts, nil
}

func readWordFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer utils.Close(f)

	entries, err := ParseWordList(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	return entries, nil
}
