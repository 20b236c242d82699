package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema document validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/collections/0/fields/2/type")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed, empty for semantic checks
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate validates raw YAML bytes as a schema document. Structural
// problems are caught by the embedded JSON Schema; a structurally sound
// document then goes through Check for the semantic rules.
// The error return is for I/O or schema compilation failures only.
func Validate(data []byte) (*ValidationResult, error) {
	js, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	if err := js.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		return &ValidationResult{Valid: false, Issues: extractIssues(validationErr)}, nil
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	issues := s.Check()
	if len(issues) > 0 {
		return &ValidationResult{Valid: false, Issues: issues}, nil
	}
	return &ValidationResult{Valid: true}, nil
}

// ValidateFile reads a file and validates it as a schema document.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

var validTypeSet = func() map[string]bool {
	m := make(map[string]bool, len(ValidTypes))
	for _, t := range ValidTypes {
		m[t] = true
	}
	return m
}()

// Check runs the semantic validations JSON Schema cannot express on an
// already-parsed schema: field names unique within each nesting level,
// type tags drawn from ValidTypes, and reference targets that name
// existing collections. It is the path for schemas built in code; Validate
// applies the same checks after the structural pass.
func (s *Schema) Check() []ValidationIssue {
	var issues []ValidationIssue

	known := make(map[string]bool, len(s.Collections))
	for _, c := range s.Collections {
		known[c.Name] = true
	}

	for ci, c := range s.Collections {
		path := fmt.Sprintf("/collections/%d", ci)
		checkFields(c.Fields, path, c.Name, known, &issues)
	}

	return issues
}

// checkFields validates one nesting level of fields and recurses into
// object nesting.
func checkFields(fields []Field, path, collection string, known map[string]bool, issues *[]ValidationIssue) {
	seen := make(map[string]bool, len(fields))
	for fi, f := range fields {
		fpath := fmt.Sprintf("%s/fields/%d", path, fi)

		if seen[f.Name] {
			*issues = append(*issues, ValidationIssue{
				Path:    fpath + "/name",
				Message: fmt.Sprintf("duplicate field name %q in collection %q", f.Name, collection),
			})
		}
		seen[f.Name] = true

		if !validTypeSet[f.Type] {
			*issues = append(*issues, ValidationIssue{
				Path:    fpath + "/type",
				Message: fmt.Sprintf("unknown field type %q", f.Type),
			})
		}

		if f.Type == TypeReference {
			for _, target := range f.Collections {
				if !known[target] {
					*issues = append(*issues, ValidationIssue{
						Path:    fpath + "/collections",
						Message: fmt.Sprintf("reference target %q is not a collection", target),
					})
				}
			}
		}

		if len(f.Fields) > 0 {
			checkFields(f.Fields, fpath, collection, known, issues)
		}
	}
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf
// errors with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "anyOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
