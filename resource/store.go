package resource

import (
	"sync"

	"golang.org/x/text/language"
)

// Store is an in-memory Provider holding one table of strings per language.
// Lookups for a language the store has no table for are matched to the closest
// known language; keys missing there are looked up in the default language.
type Store struct {
	mu      sync.RWMutex
	def     language.Tag
	tags    []language.Tag // tags[0] is always the default language
	tables  map[language.Tag]map[string]string
	matcher language.Matcher
}

// NewStore creates an empty store whose default language is def.
func NewStore(def language.Tag) *Store {
	s := &Store{
		def:    def,
		tables: make(map[language.Tag]map[string]string),
	}
	s.addTagLocked(def)
	return s
}

// Default returns the default language.
func (s *Store) Default() language.Tag {
	return s.def
}

// Set stores value under key for tag.
func (s *Store) Set(tag language.Tag, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addTagLocked(tag)
	s.tables[tag][key] = value
}

// SetAll stores every entry of values for tag.
func (s *Store) SetAll(tag language.Tag, values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addTagLocked(tag)
	table := s.tables[tag]
	for k, v := range values {
		table[k] = v
	}
}

func (s *Store) addTagLocked(tag language.Tag) {
	if _, ok := s.tables[tag]; ok {
		return
	}
	s.tables[tag] = make(map[string]string)
	s.tags = append(s.tags, tag)
	s.matcher = language.NewMatcher(s.tags)
}

// Languages returns the languages the store has tables for, default first.
func (s *Store) Languages() []language.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]language.Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Lookup implements Provider.
func (s *Store) Lookup(key string, tag language.Tag) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if table, ok := s.tables[tag]; ok {
		if v, ok := table[key]; ok {
			return v, true
		}
	} else if tag != language.Und {
		_, idx, conf := s.matcher.Match(tag)
		if conf != language.No {
			if v, ok := s.tables[s.tags[idx]][key]; ok {
				return v, true
			}
		}
	}

	v, ok := s.tables[s.def][key]
	return v, ok
}

// Len returns the number of keys stored for tag.
func (s *Store) Len(tag language.Tag) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[tag])
}
