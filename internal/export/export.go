// Package export writes components to disk as source bundles, standalone
// preview pages and React wrappers.
package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
	apperrors "github.com/alexisbeaulieu97/architect/pkg/errors"
)

const filePerm os.FileMode = 0o644

var (
	literalEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")
	commentEscaper = strings.NewReplacer("*/", "*\\/")
)

// BaseName is the file stem used for every file exported from c.
func BaseName(c artifact.Component) string {
	if c.Slug != "" {
		return c.Slug
	}
	return artifact.Slugify(c.Prompt)
}

// WriteBundle writes one `<slug>.component.<ext>` file per non-empty
// section and returns the written paths keyed by section.
func WriteBundle(dir string, c artifact.Component) (map[artifact.Section]string, error) {
	blocks := c.Blocks()
	written := make(map[artifact.Section]string, len(artifact.Sections))
	for _, section := range artifact.Sections {
		content := blocks.Get(section)
		if strings.TrimSpace(content) == "" {
			continue
		}
		path := filepath.Join(dir, BaseName(c)+".component."+string(section))
		if err := writeFileAtomic(path, []byte(content+"\n"), filePerm); err != nil {
			return written, apperrors.NewExportError(path, err)
		}
		written[section] = path
	}
	return written, nil
}

// WritePreview writes a rendered document as `<slug>.preview.html`.
func WritePreview(dir string, c artifact.Component, document string) (string, error) {
	path := filepath.Join(dir, BaseName(c)+".preview.html")
	if err := writeFileAtomic(path, []byte(document), filePerm); err != nil {
		return "", apperrors.NewExportError(path, err)
	}
	return path, nil
}

// WriteTSX writes the React wrapper of c as `<slug>.tsx`.
func WriteTSX(dir string, c artifact.Component) (string, error) {
	path := filepath.Join(dir, BaseName(c)+".tsx")
	if err := writeFileAtomic(path, []byte(TSX(c)), filePerm); err != nil {
		return "", apperrors.NewExportError(path, err)
	}
	return path, nil
}

// TSX wraps the stylesheet and template of c in a React component that
// injects both as raw HTML. The class source is kept in a block comment for
// reference.
func TSX(c artifact.Component) string {
	lines := []string{
		"// AUTO-EXPORTED by architect",
		`import React from "react";`,
		"",
		"// Original TypeScript logic",
		"/*",
		commentEscaper.Replace(c.Source),
		"*/",
		"",
		"// Styles (original SCSS)",
		"const styles = `",
		literalEscaper.Replace(c.Style),
		"`;",
		"",
		"export default function ComponentPreview() {",
		"  return (",
		"    <>",
		"      <style dangerouslySetInnerHTML={{ __html: styles }} />",
		"      <div",
		`        className="preview-wrapper"`,
		"        dangerouslySetInnerHTML={{",
		"          __html: `" + literalEscaper.Replace(c.Template) + "`,",
		"        }}",
		"      />",
		"    </>",
		"  );",
		"}",
		"",
	}
	return strings.Join(lines, "\n")
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".architect-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}
