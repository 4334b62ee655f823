package profile

import (
	"embed"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yaml
var embeddedPresets embed.FS

// EmbeddedFS returns the bundled preset files.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedPresets, "presets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Embedded loads the bundled presets.
func Embedded() (*Store, error) {
	return LoadFS(EmbeddedFS())
}

// Store holds profiles by name.
type Store struct {
	profiles map[string]Profile
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{profiles: make(map[string]Profile)}
}

// Get returns the profile registered under name.
func (s *Store) Get(name string) (Profile, bool) {
	if s == nil {
		return Profile{}, false
	}
	p, ok := s.profiles[strings.TrimSpace(name)]
	return p, ok
}

// Names returns the sorted profile names.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any profiles.
func (s *Store) Empty() bool {
	return s == nil || len(s.profiles) == 0
}

// Merge copies other into s. Profiles in other replace same-named ones in s,
// which lets user files override the presets.
func (s *Store) Merge(other *Store) {
	if s == nil || other == nil {
		return
	}
	for name, p := range other.profiles {
		s.profiles[name] = p
	}
}

func (s *Store) add(p Profile) error {
	if _, exists := s.profiles[p.Name]; exists {
		return errors.Newf("profile: duplicate profile %q (file %s)", p.Name, p.Source)
	}
	s.profiles[p.Name] = p
	return nil
}

// LoadFS walks fsys and parses every JSON/YAML profile document. Duplicate
// names across files are rejected.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isProfileFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return errors.Wrapf(err, "profile: read %s", path)
		}
		return loadInto(store, data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single profile document from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "profile: read %s", path)
	}
	store := NewStore()
	if err := loadInto(store, data, path); err != nil {
		return nil, err
	}
	return store, nil
}

// Load reads path as a directory tree or a single file.
func Load(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "profile: stat %s", path)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}
	return LoadFile(path)
}

type documentFile struct {
	Profiles map[string]Profile `json:"profiles" yaml:"profiles"`
}

func loadInto(store *Store, data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	for rawName, p := range doc.Profiles {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return errors.Newf("profile: file %s defines a profile with an empty name", source)
		}
		p.Name = name
		p.Source = source
		if err := validate(p); err != nil {
			return err
		}
		if err := store.add(p); err != nil {
			return err
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, errors.Newf("profile: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, errors.Wrapf(err, "profile: parse %s", source)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, errors.Wrapf(err, "profile: parse %s", source)
	}
	return doc, nil
}

func validate(p Profile) error {
	if p.Count != nil && *p.Count < 0 {
		return p.errorf("count %d is negative", *p.Count)
	}
	if p.Count != nil && len(p.Lines) > 0 && *p.Count > len(p.Lines) {
		return p.errorf("count %d exceeds the %d configured lines", *p.Count, len(p.Lines))
	}
	for i, line := range p.Lines {
		if strings.TrimSpace(line) == "" {
			return p.errorf("line %d is empty", i)
		}
	}
	return nil
}

func isProfileFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
