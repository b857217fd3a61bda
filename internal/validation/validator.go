package validation

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"wiki-quiz/internal/domain"
)

// Pagination bounds for list endpoints.
const (
	DefaultLimit = 100
	MaxLimit     = 100
	maxURLLength = 2048
)

var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateWikiURL checks that raw is an http(s) Wikipedia article URL.
func (v *Validator) ValidateWikiURL(raw string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return append(errors, domain.NewMissingFieldError("url"))
	}
	if len(raw) > maxURLLength {
		return append(errors, domain.NewOutOfRangeError("url", len(raw), 1, maxURLLength))
	}
	if !IsWikiArticleURL(raw) {
		errors = append(errors, domain.NewInvalidFormatError("url", raw))
	}
	return errors
}

// ValidatePagination parses skip and limit query values, applying defaults for
// empty input.
func (v *Validator) ValidatePagination(skipStr, limitStr string) (skip, limit int, errors domain.ValidationErrors) {
	limit = DefaultLimit

	if skipStr != "" {
		n, err := strconv.Atoi(skipStr)
		switch {
		case err != nil:
			errors = append(errors, domain.NewInvalidFormatError("skip", skipStr))
		case n < 0:
			errors = append(errors, domain.NewOutOfRangeError("skip", n, 0, math.MaxInt32))
		default:
			skip = n
		}
	}

	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		switch {
		case err != nil:
			errors = append(errors, domain.NewInvalidFormatError("limit", limitStr))
		case n < 1 || n > MaxLimit:
			errors = append(errors, domain.NewOutOfRangeError("limit", n, 1, MaxLimit))
		default:
			limit = n
		}
	}
	return skip, limit, errors
}

// ValidateQuizID validates a quiz identifier path parameter.
func (v *Validator) ValidateQuizID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !validULID.MatchString(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}
	return errors
}

// IsWikiArticleURL reports whether raw points at a Wikipedia article.
func IsWikiArticleURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host != "wikipedia.org" && !strings.HasSuffix(host, ".wikipedia.org") {
		return false
	}
	return strings.HasPrefix(u.Path, "/wiki/") && len(u.Path) > len("/wiki/")
}
