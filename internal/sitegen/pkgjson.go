package sitegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/sitestamp/internal/config"
	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
	"git.home.luguber.info/inful/sitestamp/internal/logfields"
	"git.home.luguber.info/inful/sitestamp/internal/tokens"
)

// Configuration paths feeding the package.json fields.
const (
	siteNamePath        = "site.name"
	siteDescriptionPath = "site.description"
	siteURLPath         = "site.url"
)

// orderedObject is a JSON object that remembers its key order so the rewritten
// manifest diffs cleanly against the template.
type orderedObject struct {
	keys   []string
	values map[string]json.RawMessage
}

func decodeOrderedObject(data []byte) (*orderedObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}

	obj := &orderedObject{values: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		obj.set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}
	return obj, nil
}

func (o *orderedObject) set(key string, raw json.RawMessage) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = raw
}

func (o *orderedObject) setString(key, value string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	o.set(key, json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")))
	return nil
}

// MarshalJSON emits the object with its original key order.
func (o *orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(o.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode renders the object with 2-space indentation and a trailing newline.
func (o *orderedObject) encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PackageRewriter rewrites the template's package.json for one organization.
type PackageRewriter struct {
	templateRoot string
	outputRoot   string
	file         string
	logger       *slog.Logger
}

// NewPackageRewriter creates a rewriter for the given manifest file name.
func NewPackageRewriter(templateRoot, outputRoot, file string, logger *slog.Logger) *PackageRewriter {
	if logger == nil {
		logger = slog.Default()
	}
	if file == "" {
		file = PackageFile
	}
	return &PackageRewriter{templateRoot: templateRoot, outputRoot: outputRoot, file: file, logger: logger}
}

// Rewrite overwrites name, description and homepage from site.name,
// site.description and site.url. Fields whose configuration value is absent
// keep their template value. A missing manifest is skipped silently and
// reported as (false, nil).
func (p *PackageRewriter) Rewrite(doc *config.Document) (bool, error) {
	src, err := resolveUnder(p.templateRoot, p.file)
	if err != nil {
		return false, p.fail(errors.PackageError("invalid package path").WithCause(err))
	}
	dst, err := resolveUnder(p.outputRoot, p.file)
	if err != nil {
		return false, p.fail(errors.PackageError("invalid package path").WithCause(err))
	}

	// #nosec G304 -- src is validated to stay under the template root.
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			p.logger.Debug("No package.json in template", logfields.File(p.file))
			return false, nil
		}
		return false, p.fail(errors.PackageError("failed to read package.json").WithCause(err))
	}

	obj, err := decodeOrderedObject(data)
	if err != nil {
		return false, p.fail(errors.NewError(errors.CategoryValidation, "package.json is not a valid JSON object").Warning().WithCause(err))
	}

	fields := []struct {
		key    string
		value  string
		exists bool
	}{
		{key: "name"},
		{key: "description"},
		{key: "homepage"},
	}
	if v, ok := doc.Lookup(siteNamePath); ok {
		fields[0].value, fields[0].exists = Slug(tokens.FormatScalar(v)), true
	}
	if v, ok := doc.Lookup(siteDescriptionPath); ok {
		fields[1].value, fields[1].exists = tokens.FormatScalar(v), true
	}
	if v, ok := doc.Lookup(siteURLPath); ok {
		fields[2].value, fields[2].exists = tokens.FormatScalar(v), true
	}
	for _, f := range fields {
		if !f.exists {
			continue
		}
		if err := obj.setString(f.key, f.value); err != nil {
			return false, p.fail(errors.PackageError("failed to encode package field").WithContext("field", f.key).WithCause(err))
		}
	}

	out, err := obj.encode()
	if err != nil {
		return false, p.fail(errors.PackageError("failed to encode package.json").WithCause(err))
	}
	if err := os.MkdirAll(p.outputRoot, 0o750); err != nil {
		return false, p.fail(errors.PackageError("failed to create output directory").WithCause(err))
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil { // #nosec G306 -- package.json is a public manifest.
		return false, p.fail(errors.PackageError("failed to write package.json").WithCause(err))
	}

	p.logger.Info("Processed package manifest", logfields.File(p.file))
	return true, nil
}

func (p *PackageRewriter) fail(b *errors.ErrorBuilder) error {
	err := b.WithContext("file", p.file).Build()
	p.logger.Warn(fmt.Sprintf("Skipping package.json: %s", err.Message()), logfields.File(p.file), logfields.Error(err.Cause()))
	return err
}
