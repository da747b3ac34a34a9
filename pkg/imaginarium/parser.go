package imaginarium

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/gitrdm/imaginarium/internal/metrics"
)

// ParseContext carries the state of one load session: the current source
// file and line for diagnostics, and the set of files already loaded so
// per-referent definition files load at most once. One ParseContext is
// created per LoadDefinitions call (or per
// interactively-typed statement) and is safe to discard afterward.
type ParseContext struct {
	Ontology *Ontology

	// DefinitionsDir is consulted (best-effort) when a common noun is
	// first introduced, to load "<name>.gen".
	DefinitionsDir string

	SourceFile  string
	SourceLine  int
	LoadedFiles map[string]bool

	RunID uuid.UUID
	log   *slog.Logger
}

// NewParseContext creates a context for one load session against o.
func NewParseContext(o *Ontology, definitionsDir string) *ParseContext {
	return &ParseContext{
		Ontology:       o,
		DefinitionsDir: definitionsDir,
		LoadedFiles:    make(map[string]bool),
		RunID:          uuid.New(),
		log:            o.log,
	}
}

// Pattern is one entry in the ordered sentence-pattern table. Action
// scans constituents off c and, on a full match, performs
// the ontology mutation and returns (true, nil). On a clean non-match (no
// cut crossed) it returns (false, nil) and must leave the cursor wherever
// it likes — ParseAndExecute restores the cursor to the sentence start
// before trying the next pattern. Once a pattern's cut marker is crossed,
// a later scan failure must be reported as (true, *GrammaticalError)
// rather than silently falling through.
type Pattern struct {
	Name   string
	Action func(pc *ParseContext, c *Cursor) (matched bool, err error)
}

// Patterns is the ordered list of sentence patterns tried by
// ParseAndExecute, built in patterns.go. Declaration order is dispatch
// order.
var Patterns []Pattern

// ParseAndExecute tries each pattern in Patterns, in order, against
// sentence. The first pattern whose Action reports a full match has
// already performed its mutation; ParseAndExecute returns nil. If no
// pattern matches, it returns UnknownSentencePattern in the
// shape of a GrammaticalError with no PatternName set.
func ParseAndExecute(pc *ParseContext, sentence string) error {
	clean := stripComment(sentence)
	clean = strings.TrimRight(strings.TrimSpace(clean), ". ")
	if clean == "" {
		return nil
	}
	tokens := Tokenize(clean)
	for _, p := range Patterns {
		c := NewCursor(tokens)
		matched, err := p.Action(pc, c)
		if err != nil {
			if ge, ok := err.(*GrammaticalError); ok && ge.PatternName == "" {
				ge.PatternName = p.Name
			}
			return err
		}
		if matched {
			return nil
		}
	}
	return &GrammaticalError{Sentence: clean}
}

// stripComment removes a trailing "#" or "//" line comment.
func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return line
}

// LoadDefinitions loads every ".gen" file in dir, in directory (sorted)
// order, one statement per line. If collectErrors is false,
// the first DefinitionLoad error aborts the whole load and is returned
// directly; if true, every error is collected and returned together via a
// LoadErrors, letting the caller report all of them at once.
func LoadDefinitions(o *Ontology, dir string, collectErrors bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".gen") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	pc := NewParseContext(o, dir)
	var errs LoadErrors
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := loadFile(pc, path, &errs, collectErrors); err != nil {
			return err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func loadFile(pc *ParseContext, path string, errs *LoadErrors, collectErrors bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pc.SourceFile = path
	pc.LoadedFiles[path] = true
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		pc.SourceLine = lineNo
		line := scanner.Text()
		if strings.TrimSpace(stripComment(line)) == "" {
			continue
		}
		if err := ParseAndExecute(pc, line); err != nil {
			dl := &DefinitionLoad{File: path, Line: lineNo, Text: line, Err: err}
			pc.log.Warn("definition load error", slog.String("file", path), slog.Int("line", lineNo), slog.String("error", err.Error()))
			metrics.ParseErrors.WithLabelValues(errorTaxonomy(err)).Inc()
			if !collectErrors {
				return dl
			}
			*errs = append(*errs, dl)
		}
	}
	return scanner.Err()
}

// errorTaxonomy classifies an error for the imaginarium_parse_errors_total
// metric's "taxonomy" label.
func errorTaxonomy(err error) string {
	switch err.(type) {
	case *GrammaticalError:
		return "grammatical"
	case *NameCollision:
		return "name_collision"
	case *UnknownReferent:
		return "unknown_referent"
	case *MorphologyUnknown:
		return "morphology"
	case *Contradiction:
		return "contradiction"
	default:
		return "other"
	}
}

// LoadErrors collects every DefinitionLoad error encountered while loading
// a definitions directory with collectErrors=true.
type LoadErrors []*DefinitionLoad

func (e LoadErrors) Error() string {
	parts := make([]string, len(e))
	for i, d := range e {
		parts[i] = d.Error()
	}
	return strings.Join(parts, "; ")
}

// maybeLoadReferentFile best-effort loads "<name>.gen" from the
// definitions directory the first time a referent named name is
// introduced. A missing file is logged at Debug and is not an error (see
// DESIGN.md for why that choice is deliberate).
func maybeLoadReferentFile(pc *ParseContext, name string) {
	if pc.DefinitionsDir == "" {
		return
	}
	path := filepath.Join(pc.DefinitionsDir, name+".gen")
	if pc.LoadedFiles[path] {
		return
	}
	pc.LoadedFiles[path] = true
	if _, err := os.Stat(path); err != nil {
		pc.log.Debug("no per-referent definition file", slog.String("path", path))
		return
	}
	var errs LoadErrors
	if err := loadFile(pc, path, &errs, true); err != nil {
		pc.log.Warn("failed to load per-referent definition file", slog.String("path", path), slog.String("error", err.Error()))
	}
}

// loadListFile reads "<name>.txt" from the definitions directory for a
// list-sourced menu property (one value per line, trimmed, non-empty).
// Tokens are lower-cased by the time the list name reaches
// here, so the directory is scanned case-insensitively. found is false when
// there is no definitions directory or no matching file.
func loadListFile(pc *ParseContext, name string) ([]string, bool) {
	if pc.DefinitionsDir == "" {
		return nil, false
	}
	entries, err := os.ReadDir(pc.DefinitionsDir)
	if err != nil {
		return nil, false
	}
	want := strings.ToLower(name) + ".txt"
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(e.Name()) != want {
			continue
		}
		data, err := os.ReadFile(filepath.Join(pc.DefinitionsDir, e.Name()))
		if err != nil {
			pc.log.Warn("failed to read list file", slog.String("path", e.Name()), slog.String("error", err.Error()))
			return nil, false
		}
		var values []string
		for _, line := range strings.Split(string(data), "\n") {
			if v := strings.TrimSpace(line); v != "" {
				values = append(values, v)
			}
		}
		return values, true
	}
	pc.log.Debug("no list file for property", slog.String("list", name))
	return nil, false
}
