package wiki

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Life", "Life"},
		{"life", "Life"},
		{"  Life  ", "Life"},
		{"Category:Life", "Life"},
		{"category:life", "Life"},
		{"CATEGORY: Physics", "Physics"},
		{"Main_topic_classifications", "Main topic classifications"},
		{"main  topic   classifications", "Main topic classifications"},
		{"Star Trek: The Next Generation", "Star Trek: The Next Generation"},
		{"ästhetik", "Ästhetik"},
		{"", ""},
		{"Category:", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripNamespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Category:Life", "Life"},
		{"Kategorie:Leben", "Leben"},
		{"Category:Star Trek: Voyager", "Star Trek: Voyager"},
		{"Life", "Life"},
	}

	for _, tt := range tests {
		if got := StripNamespace(tt.input); got != tt.want {
			t.Errorf("StripNamespace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("Main topic classifications"); got != "Main_topic_classifications" {
		t.Errorf("FileName() = %q", got)
	}
}
