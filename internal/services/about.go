package services

import (
	"regexp"
	"strings"

	"github.com/desertthunder/pseudology/internal/models"
)

var sectionHeader = regexp.MustCompile(`## Section \d+:[^\n]*\r?\n`)

// ParseAbout splits the about document into its site and profile descriptions.
//
// The document is expected to carry "## Section 1:" and "## Section 2:" header lines. When those
// are not found, it is split on "## Section" and the first line of each part is dropped. Sections
// that are still missing become [models.Placeholder]. Single newlines are doubled so each line of the
// source document renders as its own paragraph.
func ParseAbout(text string) models.About {
	text = strings.TrimPrefix(text, "\uFEFF")

	sections := sectionHeader.Split(text, -1)
	if len(sections) < 3 {
		if rough := strings.Split(text, "## Section"); len(rough) >= 3 {
			sections = make([]string, len(rough))
			for i, part := range rough {
				if _, rest, ok := strings.Cut(part, "\n"); ok {
					sections[i] = rest
				}
			}
		}
	}

	return models.About{
		SiteDescription:    section(sections, 1),
		ProfileDescription: section(sections, 2),
	}
}

func section(sections []string, i int) string {
	if i >= len(sections) {
		return models.Placeholder
	}

	s := strings.TrimSpace(strings.ReplaceAll(sections[i], "\r\n", "\n"))
	if s == "" {
		return models.Placeholder
	}
	return strings.ReplaceAll(s, "\n", "\n\n")
}
