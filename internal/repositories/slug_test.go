package repositories

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{"latin", []string{"Fix leaking sink", "Sofia", "Plumbing"}, "fix-leaking-sink-sofia-plumbing"},
		{"punctuation collapses", []string{"Fix... the sink!!", "Sofia"}, "fix-the-sink-sofia"},
		{"cyrillic transliterates", []string{"Поправка на мивка", "София"}, "popravka-na-mivka-sofiya"},
		{"mixed digits", []string{"Paint 3 rooms", "Plovdiv"}, "paint-3-rooms-plovdiv"},
		{"empty segments skipped", []string{"", "Sofia", ""}, "sofia"},
		{"all symbols", []string{"!!!", "???"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slugify(tt.segments...); got != tt.want {
				t.Errorf("slugify(%v) = %q, want %q", tt.segments, got, tt.want)
			}
		})
	}
}

func TestSlugifyTruncation(t *testing.T) {
	long := strings.Repeat("verylongword ", 20)
	slug := slugify(long, "sofia")
	if len(slug) > maxSlugLength {
		t.Errorf("slug length %d exceeds %d", len(slug), maxSlugLength)
	}
	if strings.HasSuffix(slug, "-") {
		t.Errorf("truncated slug ends with a hyphen: %q", slug)
	}
	if strings.Contains(slug, "--") {
		t.Errorf("slug contains doubled hyphens: %q", slug)
	}
}
