package section

import (
	"fmt"
	"strings"

	"lifeplanner/internal/vault"
)

// Repository is the storage contract the section services need.
// Satisfied by [vault.Storage].
type Repository interface {
	Read(path string) (string, error)
	Write(path, content string) error
}

// SimpleService manages a single-body document (Mission, Values, ...).
// The document is a title heading followed by free text.
type SimpleService struct {
	repo    Repository
	docType vault.DocType
	title   string
	baseDir string
}

// NewSimpleService returns a service for one fixed-purpose document.
func NewSimpleService(repo Repository, docType vault.DocType, title, baseDir string) *SimpleService {
	return &SimpleService{repo: repo, docType: docType, title: title, baseDir: baseDir}
}

// Load returns the document body, seeding an empty document on first touch.
func (s *SimpleService) Load() (string, error) {
	path := vault.DocPath(s.docType, s.baseDir)

	content, err := s.repo.Read(path)
	if err != nil {
		return "", err
	}

	if content == "" {
		writeErr := s.repo.Write(path, s.serialize(""))
		if writeErr != nil {
			return "", writeErr
		}

		return "", nil
	}

	return parseSimpleBody(content), nil
}

// Save replaces the document body.
func (s *SimpleService) Save(body string) error {
	return s.repo.Write(vault.DocPath(s.docType, s.baseDir), s.serialize(body))
}

func (s *SimpleService) serialize(body string) string {
	lines := []string{"# " + s.title, ""}

	trimmed := strings.TrimSpace(body)
	if trimmed != "" {
		lines = append(lines, trimmed)
	} else {
		lines = append(lines, "- ")
	}

	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

// parseSimpleBody returns everything after the first heading line, trimmed.
func parseSimpleBody(content string) string {
	var body []string

	started := false

	for _, line := range strings.Split(content, "\n") {
		if !started {
			if strings.HasPrefix(line, "#") {
				started = true
			}

			continue
		}

		body = append(body, line)
	}

	return strings.TrimSpace(strings.Join(body, "\n"))
}

// Service manages a multi-section document described by a definition list
// (the Exercises workbook).
type Service struct {
	repo        Repository
	docType     vault.DocType
	docTitle    string
	baseDir     string
	defaultTags []string
}

// NewService returns a multi-section document service.
func NewService(repo Repository, docType vault.DocType, docTitle, baseDir string, defaultTags []string) *Service {
	return &Service{repo: repo, docType: docType, docTitle: docTitle, baseDir: baseDir, defaultTags: defaultTags}
}

// LoadSections reads the document and returns one body per definition,
// normalized (legacy inlined question prompts stripped) and default-filled.
// A missing document is seeded with the definition defaults.
func (s *Service) LoadSections(defs []Def) (map[string]string, error) {
	path := vault.DocPath(s.docType, s.baseDir)

	content, err := s.repo.Read(path)
	if err != nil {
		return nil, err
	}

	if content == "" {
		seed := Serialize(s.docTitle, defs, nil, s.defaultTags)

		writeErr := s.repo.Write(path, seed)
		if writeErr != nil {
			return nil, fmt.Errorf("seeding %s: %w", s.docType, writeErr)
		}

		return FillDefaults(defs, nil), nil
	}

	return FillDefaults(defs, Normalize(defs, Parse(content))), nil
}

// SaveSections writes the document with the given section bodies.
func (s *Service) SaveSections(defs []Def, values map[string]string) error {
	return s.repo.Write(vault.DocPath(s.docType, s.baseDir), Serialize(s.docTitle, defs, values, s.defaultTags))
}

// TableService manages a single-table document.
type TableService struct {
	repo        Repository
	docType     vault.DocType
	title       string
	columns     []string
	baseDir     string
	defaultTags []string
}

// NewTableService returns a table document service with fixed columns.
func NewTableService(repo Repository, docType vault.DocType, title string, columns []string, baseDir string, defaultTags []string) *TableService {
	return &TableService{
		repo:        repo,
		docType:     docType,
		title:       title,
		columns:     columns,
		baseDir:     baseDir,
		defaultTags: defaultTags,
	}
}

// LoadRows reads the table rows, seeding an empty table on first touch.
func (s *TableService) LoadRows() ([][]string, error) {
	path := vault.DocPath(s.docType, s.baseDir)

	content, err := s.repo.Read(path)
	if err != nil {
		return nil, err
	}

	if content == "" {
		seed := SerializeTable(s.title, s.columns, nil, s.defaultTags)

		writeErr := s.repo.Write(path, seed)
		if writeErr != nil {
			return nil, fmt.Errorf("seeding %s: %w", s.docType, writeErr)
		}

		return nil, nil
	}

	return ParseTable(content), nil
}

// SaveRows replaces the table rows.
func (s *TableService) SaveRows(rows [][]string) error {
	return s.repo.Write(vault.DocPath(s.docType, s.baseDir), SerializeTable(s.title, s.columns, rows, s.defaultTags))
}
