package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://questionbank.json"

// bankSchema describes the on-disk question bank. Struct tags cover the
// per-field rules; the schema rejects structurally wrong documents early with
// a precise location.
const bankSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "question", "answers", "correctAnswer"],
    "properties": {
      "id":                {"type": "integer", "minimum": 1},
      "question":          {"type": "string", "minLength": 1},
      "answers":           {"type": "array", "minItems": 2, "items": {"type": "string"}},
      "correctAnswer":     {"type": "integer", "minimum": 0},
      "explanation":       {"type": "string"},
      "image":             {"type": ["string", "null"]},
      "isDiemLiet":        {"type": "boolean"},
      "isTrafficSign":     {"type": "boolean"},
      "isSaHinh":          {"type": "boolean"},
      "isKhaiNiemQuyTac":  {"type": "boolean"},
      "isVanHoaGiaoThong": {"type": "boolean"},
      "isKyThuatLaiXe":    {"type": "boolean"},
      "category":          {"type": "string"}
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error

	validate = validator.New(validator.WithRequiredStructEnabled())
)

func bankJSONSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(bankSchema), &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Decode validates raw bank JSON and returns the questions in file order
// without building a Bank. Maintenance tools use it to rewrite the file.
func Decode(data []byte) ([]Question, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := bankJSONSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	for i := range questions {
		if err := validate.Struct(questions[i]); err != nil {
			return nil, fmt.Errorf("question at index %d: %w", i, err)
		}
	}
	return questions, nil
}

// Parse validates raw bank JSON and builds a Bank.
func Parse(data []byte) (*Bank, error) {
	questions, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return New(questions)
}

// Load reads and parses the bank file at path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	bank, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return bank, nil
}

// Encode renders questions as indented JSON with a trailing newline.
func Encode(questions []Question) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(questions); err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes questions to path, keeping a backup of the previous file when
// backupPath is non-empty.
func Save(path string, questions []Question, backupPath string) error {
	if backupPath != "" {
		prev, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read for backup: %w", err)
		}
		if err := os.WriteFile(backupPath, prev, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
	}
	data, err := Encode(questions)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write question bank: %w", err)
	}
	return nil
}
