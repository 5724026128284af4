package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"

	"sentidash/ui/templates/fragments"
)

//go:embed templates/layout/*.html templates/dashboard/*.html static/*
var embeddedFiles embed.FS

// parseTemplates loads every registered template from the embedded files
func parseTemplates() (*template.Template, error) {
	paths := fragments.GetAllTemplatePaths()
	patterns := make([]string, len(paths))
	for i, p := range paths {
		patterns[i] = "templates/" + p
	}

	templates, err := template.New("").ParseFS(embeddedFiles, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	for _, p := range paths {
		if templates.Lookup(p) == nil {
			return nil, fmt.Errorf("template %s is not defined", p)
		}
	}
	return templates, nil
}

// staticFiles returns the embedded static directory
func staticFiles() fs.FS {
	sub, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[Static] Error creating static filesystem: %v", err)
		return embeddedFiles
	}
	return sub
}

// execute renders a template to a buffer so errors surface before anything is written
func execute(templates *template.Template, name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("Template error for %s: %v", name, err)
		log.Printf("Template data type: %T", data)
		return nil, err
	}
	return buf.Bytes(), nil
}
