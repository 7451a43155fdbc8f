package dictionary

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/spellshare/internal/domain"
)

// Registry holds the loaded dictionaries and serves as the correctness
// oracle. Reloads swap the whole set at once.
type Registry struct {
	mu         sync.RWMutex
	dicts      map[domain.Language]*Dictionary
	lastReload time.Time
}

// Info describes a loaded dictionary.
type Info struct {
	Code           domain.Language `json:"code"`
	Name           string          `json:"name"`
	Words          int             `json:"words"`
	MaxSuggestions int             `json:"max_suggestions"`
	MaxDistance    int             `json:"max_distance"`
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{dicts: make(map[domain.Language]*Dictionary)}
}

// Replace swaps every dictionary for dicts.
func (r *Registry) Replace(dicts map[domain.Language]*Dictionary) {
	next := make(map[domain.Language]*Dictionary, len(dicts))
	for lang, d := range dicts {
		next[lang] = d
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.dicts = next
	r.lastReload = time.Now()
}

// Get returns the dictionary for lang.
func (r *Registry) Get(lang domain.Language) (*Dictionary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.dicts[lang]
	return d, ok
}

// Supports reports whether a dictionary is loaded for lang.
func (r *Registry) Supports(lang domain.Language) bool {
	_, ok := r.Get(lang)
	return ok
}

// Languages lists the loaded dictionaries ordered by code.
func (r *Registry) Languages() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, 0, len(r.dicts))
	for _, d := range r.dicts {
		out = append(out, Info{
			Code:           d.lang,
			Name:           d.name,
			Words:          d.Size(),
			MaxSuggestions: d.maxSuggestions,
			MaxDistance:    d.maxDistance,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Len returns the number of loaded dictionaries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.dicts)
}

// LastReload returns when the set was last replaced.
func (r *Registry) LastReload() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastReload
}

// IsCorrect implements domain.Oracle.
func (r *Registry) IsCorrect(word string, lang domain.Language) (bool, error) {
	d, err := r.lookup(lang)
	if err != nil {
		return false, err
	}
	return d.IsCorrect(word), nil
}

// Suggest implements domain.Oracle.
func (r *Registry) Suggest(word string, lang domain.Language) ([]string, error) {
	d, err := r.lookup(lang)
	if err != nil {
		return nil, err
	}
	return d.Suggest(word), nil
}

func (r *Registry) lookup(lang domain.Language) (*Dictionary, error) {
	d, ok := r.Get(lang)
	if !ok {
		return nil, fmt.Errorf("%w: no dictionary loaded for %q", domain.ErrOracleUnavailable, lang)
	}
	return d, nil
}
