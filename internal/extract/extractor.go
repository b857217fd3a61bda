// Package extract turns raw wiki article markup into a normalized domain.Document.
//
// Every field degrades to an empty default when the markup does not carry it;
// only a failure to parse the markup at all is reported as an error.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/textnorm"
)

const unknownTitle = "Unknown"

// Extractor applies per-field heuristics to article markup.
type Extractor struct {
	rules             EntityRules
	sectionExclusions []string
	logger            *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithEntityRules replaces the infobox keyword table.
func WithEntityRules(rules EntityRules) Option {
	return func(e *Extractor) {
		e.rules = rules
	}
}

// WithSectionExclusions replaces the lowercase markers that disqualify a heading.
func WithSectionExclusions(markers []string) Option {
	return func(e *Extractor) {
		e.sectionExclusions = markers
	}
}

// WithLogger sets the logger used for extraction diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Extractor with the default keyword tables.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		rules:             DefaultEntityRules,
		sectionExclusions: DefaultSectionExclusions,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds a Document from rawMarkup.
func (e *Extractor) Extract(rawMarkup, sourceURL string) (*domain.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawMarkup))
	if err != nil {
		return nil, domain.NewFetchFailureError(sourceURL, err)
	}

	content := doc.Find("div#mw-content-text").First()

	// Summary, sections and entities read the untouched tree; full text strips
	// superscripts and edit links in place, so it runs last.
	result := &domain.Document{
		URL:         sourceURL,
		Title:       e.title(doc),
		Summary:     e.summary(content),
		Sections:    e.sections(content),
		KeyEntities: e.entities(doc, content),
		RawMarkup:   rawMarkup,
	}
	result.FullText = e.fullText(content)

	e.logger.Debug("Extracted document",
		zap.String("url", sourceURL),
		zap.String("title", result.Title),
		zap.Int("summary_length", textnorm.Length(result.Summary)),
		zap.Int("sections", len(result.Sections)),
		zap.Int("full_text_length", textnorm.Length(result.FullText)),
	)

	return result, nil
}

func (e *Extractor) title(doc *goquery.Document) string {
	heading := doc.Find("h1.firstHeading").First()
	if heading.Length() == 0 {
		return unknownTitle
	}
	title := textnorm.Normalize(nodeText(heading, ""))
	if title == "" {
		return unknownTitle
	}
	return title
}

func (e *Extractor) summary(content *goquery.Selection) string {
	var summary string
	content.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		raw := nodeText(p, " ")
		if textnorm.Length(raw) < MinSummarySource {
			return true
		}
		lower := strings.ToLower(raw)
		for _, marker := range summaryMetaMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
		cleaned := textnorm.Normalize(raw)
		if cleaned == "" {
			return true
		}
		summary = textnorm.Truncate(cleaned, MaxSummaryLength)
		return false
	})
	return summary
}

// headingLabel reads the label of an h2/h3. Older markup wraps it in
// span.mw-headline; newer markup puts it directly in the heading next to the
// edit link.
func headingLabel(heading *goquery.Selection) string {
	if span := heading.Find("span.mw-headline").First(); span.Length() > 0 {
		return nodeText(span, "")
	}
	clone := heading.Clone()
	clone.Find(".mw-editsection").Remove()
	return nodeText(clone, "")
}

func (e *Extractor) sections(content *goquery.Selection) []string {
	sections := []string{}
	content.Find("h2, h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		label := headingLabel(h)
		if label == "" || label == "Contents" || textnorm.Length(label) >= MaxSectionLabel {
			return true
		}
		lower := strings.ToLower(label)
		for _, marker := range e.sectionExclusions {
			if strings.Contains(lower, marker) {
				return true
			}
		}
		if cleaned := textnorm.Normalize(label); cleaned != "" {
			sections = append(sections, cleaned)
		}
		return len(sections) < MaxSections
	})
	return sections
}

func (e *Extractor) entities(doc *goquery.Document, content *goquery.Selection) domain.KeyEntities {
	entities := domain.NewKeyEntities()

	doc.Find("table.infobox").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		label := strings.ToLower(nodeText(cells.Eq(0), " "))
		value := nodeText(cells.Eq(1), " ")
		if value == "" || textnorm.Length(value) > MaxEntityValueLength {
			return
		}
		list := entities.Category(e.rules.Classify(label))
		if list == nil {
			return
		}
		if cleaned := textnorm.Normalize(value); cleaned != "" {
			*list = appendUnique(*list, cleaned)
		}
	})

	if len(entities.People) == 0 {
		paragraphs := content.Find("p")
		lead := paragraphs.Slice(0, min(BoldScanParagraphs, paragraphs.Length()))
		lead.Find("b").Each(func(_ int, b *goquery.Selection) {
			text := nodeText(b, " ")
			n := textnorm.Length(text)
			if n <= MinBoldLength || n >= MaxBoldLength {
				return
			}
			if isDigits(text) || len(strings.Fields(text)) > MaxBoldWords {
				return
			}
			if cleaned := textnorm.Normalize(text); cleaned != "" {
				entities.People = appendUnique(entities.People, cleaned)
			}
		})
	}

	entities.People = capList(entities.People, MaxEntitiesPerKind)
	entities.Organizations = capList(entities.Organizations, MaxEntitiesPerKind)
	entities.Locations = capList(entities.Locations, MaxEntitiesPerKind)
	return entities
}

func (e *Extractor) fullText(content *goquery.Selection) string {
	if content.Length() == 0 {
		return ""
	}
	content.Find("script, style, sup, span.mw-editsection").Remove()

	var parts []string
	content.Find("p, h2, h3").Each(func(_ int, el *goquery.Selection) {
		if goquery.NodeName(el) == "p" {
			raw := nodeText(el, " ")
			if textnorm.Length(raw) <= MinParagraphLength {
				return
			}
			if cleaned := textnorm.Normalize(raw); cleaned != "" {
				parts = append(parts, cleaned)
			}
			return
		}
		label := textnorm.Normalize(headingLabel(el))
		if label != "" && label != "Contents" {
			parts = append(parts, "\n"+label+"\n")
		}
	})

	return textnorm.Truncate(strings.Join(parts, "\n"), MaxFullTextLength)
}

func capList(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
