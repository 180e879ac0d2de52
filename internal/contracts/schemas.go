package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"rental-bff/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Сначала регистрируем все схемы как ресурсы, затем компилируем
	err := fs.WalkDir(schemas.StorageFS, "storage", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemas.StorageFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("add schema resource %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	err = fs.WalkDir(schemas.StorageFS, "storage", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			log.Printf("WARNING: could not compile schema %s: %v. Skipping.", path, err)
			return nil
		}
		key := generateKeyFromPath(path)
		if key != "" {
			compiledSchemas[key] = schema
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and compiling schemas: %v", err)
	}
}

// generateKeyFromPath преобразует "storage/selected-currency/v1.json" в "selected_currency/v1".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "storage/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}
	return strings.ReplaceAll(parts[0], "-", "_") + "/" + parts[1]
}

// HasSchema сообщает, описан ли ключ хранилища схемой.
func HasSchema(storageKey string) bool {
	_, ok := compiledSchemas[storageKey+"/v1"]
	return ok
}

// ValidateStoredValue проверяет JSON-значение ключа хранилища по его схеме.
// Ключи без схемы не проверяются.
func ValidateStoredValue(storageKey string, raw []byte) error {
	schema, ok := compiledSchemas[storageKey+"/v1"]
	if !ok {
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("stored value for '%s' is not a valid JSON: %w", storageKey, err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed for '%s': %w", storageKey, err)
	}
	return nil
}
