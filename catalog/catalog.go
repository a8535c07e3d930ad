// --- gradpath-server/catalog/catalog.go ---
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"gradpath-server/models"
	"gradpath-server/utils"
)

// Store holds the read-only reference data: per-program course catalogs and
// requirement tables. It is loaded once at startup and refreshed periodically,
// so lookups take a read lock.
type Store struct {
	mu               sync.RWMutex
	catalogPath      string
	requirementsPath string

	programs     map[string][]models.CatalogEntry
	byCode       map[string]map[string]models.CatalogEntry // program -> code -> entry
	globalByCode map[string]models.CatalogEntry            // first program listing a code wins
	codeByTitle  map[string]string                         // normalized title -> code
	requirements map[string]models.RequirementTable
}

type requirementsFile struct {
	Programs map[string]models.RequirementTable `yaml:"programs"`
}

// Load reads the catalog JSON and requirements YAML resources from disk.
func Load(catalogPath, requirementsPath string) (*Store, error) {
	s := &Store{
		catalogPath:      catalogPath,
		requirementsPath: requirementsPath,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads both resource files. On any error the previously loaded data
// stays in place.
func (s *Store) Reload() error {
	catalogData, err := os.ReadFile(s.catalogPath)
	if err != nil {
		return fmt.Errorf("failed to read catalog resource: %w", err)
	}
	var programs map[string][]models.CatalogEntry
	if err := json.Unmarshal(catalogData, &programs); err != nil {
		return fmt.Errorf("failed to parse catalog resource: %w", err)
	}

	reqData, err := os.ReadFile(s.requirementsPath)
	if err != nil {
		return fmt.Errorf("failed to read requirements resource: %w", err)
	}
	var reqFile requirementsFile
	if err := yaml.Unmarshal(reqData, &reqFile); err != nil {
		return fmt.Errorf("failed to parse requirements resource: %w", err)
	}

	byCode := make(map[string]map[string]models.CatalogEntry)
	globalByCode := make(map[string]models.CatalogEntry)
	codeByTitle := make(map[string]string)
	for program, entries := range programs {
		codes := make(map[string]models.CatalogEntry, len(entries))
		for _, e := range entries {
			codes[e.Code] = e
			if _, seen := globalByCode[e.Code]; !seen {
				globalByCode[e.Code] = e
			}
			key := utils.NormalizeKey(e.Title)
			if _, seen := codeByTitle[key]; !seen && key != "" {
				codeByTitle[key] = e.Code
			}
		}
		byCode[program] = codes
	}

	requirements := make(map[string]models.RequirementTable, len(reqFile.Programs))
	for program, table := range reqFile.Programs {
		table.Program = program
		requirements[program] = table
	}

	s.mu.Lock()
	s.programs = programs
	s.byCode = byCode
	s.globalByCode = globalByCode
	s.codeByTitle = codeByTitle
	s.requirements = requirements
	s.mu.Unlock()
	return nil
}

// Programs returns the known program identifiers, sorted.
func (s *Store) Programs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.programs))
	for p := range s.programs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Entries returns the catalog entries for one program, in resource order.
func (s *Store) Entries(program string) []models.CatalogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.programs[program]
}

// Lookup finds a course by code within one program's catalog.
func (s *Store) Lookup(program, code string) (models.CatalogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.byCode[program][code]
	return entry, ok
}

// LookupGlobal finds a course by code across every program.
func (s *Store) LookupGlobal(code string) (models.CatalogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.globalByCode[code]
	return entry, ok
}

// CodeForTitle recovers a course code from a title, matched case-, diacritic-
// and whitespace-insensitively across every program.
func (s *Store) CodeForTitle(title string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.codeByTitle[utils.NormalizeKey(title)]
	return code, ok
}

// Requirements returns the requirement table for one program. The second return
// is false when the program has no table; callers must then fall back to zero
// category requirements and a default total.
func (s *Store) Requirements(program string) (models.RequirementTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.requirements[program]
	return table, ok
}
