package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"scribe/interfaces"
	"scribe/model"
)

const fileExt = ".json"

var ErrNotDeclared = errors.New("model not declared in manifest")

// Declaration is one model as declared by the world.
type Declaration struct {
	Name      string     `json:"name"`
	ClassHash model.Felt `json:"class_hash"`
	Schema    model.Ty   `json:"schema"`
}

type manifestFile struct {
	Models []Declaration `json:"models"`
}

// Parser answers world schema lookups from manifest files in a directory.
type Parser struct {
	dir string

	mu      sync.RWMutex
	byClass map[model.Felt]Declaration
	byName  map[string]Declaration
}

var _ interfaces.WorldReader = (*Parser)(nil)

func NewParser(dir string) *Parser {
	return &Parser{
		dir:     dir,
		byClass: make(map[model.Felt]Declaration),
		byName:  make(map[string]Declaration),
	}
}

// Load parses every manifest in the directory.
func (p *Parser) Load() error {
	slog.Info("Reading manifests from path", "dir", p.dir)
	files, err := os.ReadDir(p.dir)
	if err != nil {
		return fmt.Errorf("read manifest dir: %w", err)
	}
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == fileExt {
			if err := p.Parse(filepath.Join(p.dir, file.Name())); err != nil {
				return err
			}
		}
	}
	slog.Info("declared models", "models", p.Names())
	return nil
}

// Parse adds the declarations of one manifest file. A later declaration of
// the same name replaces the earlier one for name lookups; class hash lookups
// keep every version.
func (p *Parser) Parse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var mf manifestFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, d := range mf.Models {
		m := model.Model{Name: d.Name, ClassHash: d.ClassHash, Schema: d.Schema}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, d := range mf.Models {
		if !d.ClassHash.IsZero() {
			p.byClass[d.ClassHash] = d
		}
		p.byName[d.Name] = d
		slog.Debug("model declared", "name", d.Name, "class_hash", d.ClassHash.Hex(), "file", path)
	}
	return nil
}

// ModelSchema returns the shape declared for classHash, falling back to the
// latest declaration of name.
func (p *Parser) ModelSchema(_ context.Context, name string, classHash model.Felt) (model.Ty, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if d, ok := p.byClass[classHash]; ok {
		if d.Name != name {
			return model.Ty{}, fmt.Errorf("class %s declares model %s, not %s", classHash.Hex(), d.Name, name)
		}
		return d.Schema.Clone(), nil
	}
	if d, ok := p.byName[name]; ok {
		return d.Schema.Clone(), nil
	}
	return model.Ty{}, fmt.Errorf("%w: %s (class %s)", ErrNotDeclared, name, classHash.Hex())
}

// Names lists the declared model names.
func (p *Parser) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.byName))
	for n := range p.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
