package driveapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateQualifiedName(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "나의 포트폴리오 2026-08-31", DateQualifiedName("나의 포트폴리오", now))
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "나의 포트폴리오", CleanTitle("나의 포트폴리오 2026-08-31"))
	assert.Equal(t, "나의 포트폴리오", CleanTitle("나의 포트폴리오 2026-08-31_3"))
	assert.Equal(t, "deck", CleanTitle("deck"))
}

func TestNextAvailableName(t *testing.T) {
	base := "포트폴리오 2026-08-31"

	cases := []struct {
		name     string
		existing []string
		want     string
	}{
		{"no collision", []string{"other 2026-08-31"}, base},
		{"exact collision", []string{base}, base + "_1"},
		{"suffix collision", []string{base, base + "_1", base + "_2"}, base + "_3"},
		{"gap keeps highest", []string{base + "_5"}, base + "_6"},
		{"ignores non numeric suffix", []string{base + "_final"}, base},
		{"ignores different base", []string{"포트폴리오 2026-08-30_4"}, base},
		{"empty folder", nil, base},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextAvailableName(base, tc.existing))
		})
	}
}

func TestFilterPresentations(t *testing.T) {
	files := []FileInfo{
		{ID: "a", MimeType: PresentationMimeType},
		{ID: "b", MimeType: "image/png"},
		{ID: "c", MimeType: PresentationMimeType},
	}
	decks := FilterPresentations(files)
	assert.Len(t, decks, 2)
	assert.Equal(t, "a", decks[0].ID)
	assert.Equal(t, "c", decks[1].ID)
}
