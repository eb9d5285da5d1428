package archive

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"biosphere-server/internal/shared/errors"
)

const schemaURL = "https://biosphere.local/schemas/document.schema.json"

//go:embed schema/document.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to load document schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Validate checks raw JSON against the document schema and the supported
// schema version.
func Validate(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return errors.WrapValidation("document is not valid JSON", err)
	}

	s, err := documentSchema()
	if err != nil {
		return errors.WrapInternal("document schema unavailable", err)
	}
	if err := s.Validate(v); err != nil {
		return errors.WrapValidation("document does not match schema", err)
	}

	var head struct {
		SchemaVersion int `json:"SchemaVersion"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return errors.WrapValidation("document header is invalid", err)
	}
	if head.SchemaVersion > SchemaVersion {
		return errors.Validationf("schema version %d is newer than supported version %d", head.SchemaVersion, SchemaVersion)
	}
	return nil
}

func Marshal(doc Document) ([]byte, error) {
	if doc.SchemaVersion == 0 {
		doc.SchemaVersion = SchemaVersion
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal validates raw before decoding it.
func Unmarshal(raw []byte) (Document, error) {
	var doc Document
	if err := Validate(raw); err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, errors.WrapValidation("failed to decode document", err)
	}
	return doc, nil
}

func Encode(w io.Writer, doc Document) error {
	raw, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if _, err := w.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func Decode(r io.Reader) (Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read document: %w", err)
	}
	return Unmarshal(raw)
}

// Compressed reports whether path names a zstd compressed document.
func Compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// WriteFile writes doc to path, zstd compressed when path ends in ".zst".
func WriteFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if !Compressed(path) {
		bw := bufio.NewWriter(f)
		if err := Encode(bw, doc); err != nil {
			return err
		}
		return bw.Flush()
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to start compression: %w", err)
	}
	if err := Encode(enc, doc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if !Compressed(path) {
		return Decode(bufio.NewReader(f))
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		return Document{}, fmt.Errorf("failed to start decompression: %w", err)
	}
	defer dec.Close()
	return Decode(dec)
}
