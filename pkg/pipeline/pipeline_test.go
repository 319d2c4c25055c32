package pipeline

import (
	"math"
	"testing"

	"github.com/matzehuels/wikigraph/pkg/errors"
)

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", opts.Category, DefaultCategory)
	}
	if opts.Lang != DefaultLang {
		t.Errorf("Lang = %q, want %q", opts.Lang, DefaultLang)
	}
	if opts.Downsize != DefaultDownsize {
		t.Errorf("Downsize = %v, want %v", opts.Downsize, DefaultDownsize)
	}
	if len(opts.Formats) != 3 {
		t.Errorf("Formats = %v, want dot, svg and html", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestValidateAndSetDefaults_NormalizesCategory(t *testing.T) {
	opts := Options{Category: "category:main_topic  classifications"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Category != "Main topic classifications" {
		t.Errorf("Category = %q", opts.Category)
	}
}

func TestValidateAndSetDefaults_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative depth", Options{Depth: -1}, errors.ErrCodeInvalidInput},
		{"depth too large", Options{Depth: MaxDepth + 1}, errors.ErrCodeInvalidInput},
		{"negative downsize", Options{Downsize: -2}, errors.ErrCodeInvalidInput},
		{"NaN downsize", Options{Downsize: math.NaN()}, errors.ErrCodeInvalidInput},
		{"infinite downsize", Options{Downsize: math.Inf(1)}, errors.ErrCodeInvalidInput},
		{"negative infinite downsize", Options{Downsize: math.Inf(-1)}, errors.ErrCodeInvalidInput},
		{"font size overflow", Options{Downsize: 1e6, Depth: 2}, errors.ErrCodeInvalidInput},
		{"font size overflow at max depth", Options{Downsize: 100, Depth: MaxDepth}, errors.ErrCodeInvalidInput},
		{"negative max nodes", Options{MaxNodes: -1}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
		{"bad category", Options{Category: "A|B"}, errors.ErrCodeInvalidCategory},
		{"bad language", Options{Lang: "EN!"}, errors.ErrCodeInvalidLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestValidateAndSetDefaults_LargeDownsize(t *testing.T) {
	opts := Options{Downsize: 100, Depth: 4}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("root font size 1e9 should be accepted: %v", err)
	}
}

func TestValidateAndSetDefaults_Idempotent(t *testing.T) {
	opts := Options{Category: "life"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	opts.Depth = -5 // ignored once validated
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op: %v", err)
	}
}

func TestOptions_Wants(t *testing.T) {
	opts := Options{Formats: []string{"dot", "html"}}
	if !opts.Wants("dot") || !opts.Wants("html") {
		t.Error("Wants should report requested formats")
	}
	if opts.Wants("svg") {
		t.Error("Wants(svg) = true for dot,html")
	}
}

func TestOptions_CrawlOptions(t *testing.T) {
	opts := Options{Depth: 3, MaxNodes: 50, PruneThreshold: -1}
	co := opts.CrawlOptions()
	if co.Depth != 3 || co.MaxNodes != 50 || co.PruneThreshold != -1 {
		t.Errorf("CrawlOptions() = %+v", co)
	}
}
