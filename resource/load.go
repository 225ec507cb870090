package resource

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// LoadYAML reads a resource document from r into the table for tag.
//
// Two shapes are accepted and may be mixed:
//
//	MOCK0001_Title: Do not panic
//	MOCK0002:
//	  Title: Empty function body
//	  MessageFormat: function %s has an empty body
func (s *Store) LoadYAML(r io.Reader, tag language.Tag) error {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode yaml resources: %w", err)
	}
	return s.load(doc, tag)
}

// LoadJSON reads a resource document from r into the table for tag.
// The accepted shapes are the same as for LoadYAML.
func (s *Store) LoadJSON(r io.Reader, tag language.Tag) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read json resources: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	var doc map[string]any
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode json resources: %w", err)
	}
	return s.load(doc, tag)
}

func (s *Store) load(doc map[string]any, tag language.Tag) error {
	values := make(map[string]string, len(doc))
	for key, raw := range doc {
		switch v := raw.(type) {
		case map[string]any:
			for prop, text := range v {
				str, err := cast.ToStringE(text)
				if err != nil {
					return fmt.Errorf("resource %s_%s: %w", key, prop, err)
				}
				values[key+"_"+prop] = str
			}
		default:
			str, err := cast.ToStringE(v)
			if err != nil {
				return fmt.Errorf("resource %s: %w", key, err)
			}
			values[key] = str
		}
	}
	s.SetAll(tag, values)
	return nil
}

// LoadFS loads every resource file found directly under dir in fsys.
// Files are named <name>.<lang>.<ext> (rules.zh-Hans.yaml) or <name>.<ext> for
// the default language; ext is yaml, yml or json.
func (s *Store) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read resource dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := path.Ext(name)
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}
		tag, err := tagFromFileName(name, s.def)
		if err != nil {
			return err
		}
		if err := s.loadFile(fsys, path.Join(dir, name), ext, tag); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadFile(fsys fs.FS, name, ext string, tag language.Tag) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	if ext == ".json" {
		err = s.LoadJSON(f, tag)
	} else {
		err = s.LoadYAML(f, tag)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func tagFromFileName(name string, def language.Tag) (language.Tag, error) {
	base := strings.TrimSuffix(name, path.Ext(name))
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return def, nil
	}
	tag, err := language.Parse(base[idx+1:])
	if err != nil {
		return language.Und, fmt.Errorf("resource file %s: bad language %q: %w", name, base[idx+1:], err)
	}
	return tag, nil
}
