package driveapi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	trailingDatePattern   = regexp.MustCompile(`\s+\d{4}-\d{2}-\d{2}$`)
	trailingSuffixPattern = regexp.MustCompile(`_\d+$`)
)

// DateQualifiedName builds the stored deck filename: the run title
// followed by the generation date.
func DateQualifiedName(title string, now time.Time) string {
	return fmt.Sprintf("%s %s", title, now.Format("2006-01-02"))
}

// CleanTitle strips the date qualifier and any collision suffix, for
// display on the cover slide.
func CleanTitle(name string) string {
	name = trailingSuffixPattern.ReplaceAllString(name, "")
	return trailingDatePattern.ReplaceAllString(name, "")
}

// NextAvailableName resolves a filename collision against the existing
// names in the destination folder. With no exact collision the base
// name is returned unchanged; otherwise the suffix is one more than
// the highest existing numeric suffix for that base.
func NextAvailableName(base string, existing []string) string {
	collision := false
	highest := 0
	prefix := base + "_"

	for _, name := range existing {
		if name == base {
			collision = true
			continue
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
		if err != nil || n <= 0 {
			continue
		}
		collision = true
		if n > highest {
			highest = n
		}
	}

	if !collision {
		return base
	}
	return fmt.Sprintf("%s_%d", base, highest+1)
}
