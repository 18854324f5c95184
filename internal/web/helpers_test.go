package web

import (
	"io/fs"
	"testing"

	assets "github.com/justestif/go-moodtunes/web"
)

func mustLoadTemplates(t *testing.T) *Templates {
	t.Helper()
	sub, err := fs.Sub(assets.TemplatesFS, "templates")
	if err != nil {
		t.Fatalf("fs.Sub() error = %v", err)
	}
	tmpl, err := NewTemplates(sub)
	if err != nil {
		t.Fatalf("NewTemplates() error = %v", err)
	}
	return tmpl
}
