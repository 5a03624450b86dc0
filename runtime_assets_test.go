package stationreg

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestRuntimeAssetsFSContainsRuntimeScript(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "stationreg-runtime.js")
	if err != nil {
		t.Fatalf("expected runtime script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "data-validate-url") {
		t.Fatalf("expected runtime script to target data-validate-url controls")
	}
}

func TestEmbeddedTemplatesContainForm(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
}

func TestGenerateRegistrationHTML(t *testing.T) {
	selector, err := DefaultThemeSelector("")
	if err != nil {
		t.Fatalf("theme selector: %v", err)
	}
	output, err := GenerateRegistrationHTML(context.Background(), RenderOptions{}, WithThemeSelector(selector))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(output)
	if !strings.Contains(html, "Police Station Registration") {
		t.Fatalf("expected page title in output")
	}
	if !strings.Contains(html, `data-theme="emergensync"`) {
		t.Fatalf("expected theme marker in output")
	}
}
