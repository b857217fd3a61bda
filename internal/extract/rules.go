package extract

import (
	"strings"

	"wiki-quiz/internal/domain"
)

// EntityRule assigns infobox values to an entity category when the row label
// contains any of Keywords.
type EntityRule struct {
	Category string
	Keywords []string
}

// EntityRules is evaluated in order; the first rule whose keyword matches wins.
type EntityRules []EntityRule

// DefaultEntityRules classifies infobox rows the way wiki biographies and
// organisation pages label them.
var DefaultEntityRules = EntityRules{
	{Category: domain.EntityPeople, Keywords: []string{"birth", "born", "name", "founder"}},
	{Category: domain.EntityOrganizations, Keywords: []string{"organization", "company", "institution"}},
	{Category: domain.EntityLocations, Keywords: []string{"place", "location", "country", "city"}},
}

// Classify returns the category for a lowercased infobox label, or "" when no rule matches.
func (r EntityRules) Classify(label string) string {
	for _, rule := range r {
		for _, kw := range rule.Keywords {
			if strings.Contains(label, kw) {
				return rule.Category
			}
		}
	}
	return ""
}

// DefaultSectionExclusions drops headings for editorial and reference material.
var DefaultSectionExclusions = []string{"edit", "reference", "note"}

// Field limits applied to every extracted document.
const (
	MaxSummaryLength     = 600
	MinSummarySource     = 100
	MaxSections          = 15
	MaxSectionLabel      = 100
	MaxEntitiesPerKind   = 5
	MaxEntityValueLength = 80
	MaxFullTextLength    = 8000
	MinParagraphLength   = 20
	BoldScanParagraphs   = 5
	MinBoldLength        = 5
	MaxBoldLength        = 50
	MaxBoldWords         = 4
)

var summaryMetaMarkers = []string{"wikipedia", "disambiguation"}
