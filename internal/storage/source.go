// Package storage reads the publication source file and keeps a SQLite
// cache of the normalized, deduplicated collection.
package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/commitlab/pubs/internal/publication"
)

//go:embed publications.schema.json
var publicationsSchemaJSON string

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("publications.schema.json", strings.NewReader(publicationsSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("publications.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

// decodeDocument decodes a single JSON value and rejects trailing content.
func decodeDocument(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("source is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("source contains trailing content")
	}
	return value, nil
}

// validate checks the document shape: a list of objects. Field contents are
// left to the normalizer.
func validate(raw []byte) error {
	value, err := decodeDocument(raw)
	if err != nil {
		return fmt.Errorf("decoding publications JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("publications JSON does not match schema: %w", err)
	}
	return nil
}

// DecodeSource validates and decodes a publications document.
func DecodeSource(raw []byte) ([]publication.RawRecord, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	var records []publication.RawRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parsing publications: %w", err)
	}
	return records, nil
}

// ReadSource reads and decodes the publications file at path.
func ReadSource(path string) ([]publication.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading publications file: %w", err)
	}
	return DecodeSource(data)
}

// LoadRecords reads the source and normalizes every record, in source order.
func LoadRecords(path string) ([]publication.Record, error) {
	raws, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return publication.NormalizeAll(raws), nil
}

// ReadDocuments reads the source as generic objects so that fields this
// program does not model survive a rewrite.
func ReadDocuments(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading publications file: %w", err)
	}
	if err := validate(data); err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var docs []map[string]any
	if err := decoder.Decode(&docs); err != nil {
		return nil, fmt.Errorf("parsing publications: %w", err)
	}
	return docs, nil
}

// WriteDocuments writes docs as an indented JSON list.
func WriteDocuments(path string, docs []map[string]any) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding publications: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing publications file: %w", err)
	}
	return nil
}
