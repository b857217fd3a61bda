package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiki-quiz/internal/domain"
)

func TestValidateWikiURL(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		url      string
		wantCode domain.ErrorCode
	}{
		{"english article", "https://en.wikipedia.org/wiki/Alan_Turing", ""},
		{"other language", "https://de.wikipedia.org/wiki/Berlin", ""},
		{"mobile host", "https://en.m.wikipedia.org/wiki/Berlin", ""},
		{"surrounding spaces", "  https://en.wikipedia.org/wiki/Berlin  ", ""},
		{"empty", "", domain.CodeMissingField},
		{"blank", "   ", domain.CodeMissingField},
		{"not wikipedia", "https://example.com/wiki/Berlin", domain.CodeInvalidFormat},
		{"lookalike host", "https://wikipedia.org.evil.com/wiki/Berlin", domain.CodeInvalidFormat},
		{"no wiki path", "https://en.wikipedia.org/w/index.php?title=Berlin", domain.CodeInvalidFormat},
		{"bare wiki path", "https://en.wikipedia.org/wiki/", domain.CodeInvalidFormat},
		{"ftp scheme", "ftp://en.wikipedia.org/wiki/Berlin", domain.CodeInvalidFormat},
		{"garbage", "not a url", domain.CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateWikiURL(tt.url)
			if tt.wantCode == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantCode, errs[0].Code)
			assert.Equal(t, "url", errs[0].Field)
		})
	}
}

func TestValidatePagination(t *testing.T) {
	v := NewValidator()

	skip, limit, errs := v.ValidatePagination("", "")
	assert.Empty(t, errs)
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultLimit, limit)

	skip, limit, errs = v.ValidatePagination("20", "10")
	assert.Empty(t, errs)
	assert.Equal(t, 20, skip)
	assert.Equal(t, 10, limit)

	_, _, errs = v.ValidatePagination("-1", "0")
	require.Len(t, errs, 2)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)
	assert.Equal(t, "limit", errs[1].Field)

	_, _, errs = v.ValidatePagination("abc", "101")
	require.Len(t, errs, 2)
	assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)
	assert.Equal(t, domain.CodeOutOfRange, errs[1].Code)
}

func TestValidateQuizID(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.ValidateQuizID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
	assert.Equal(t, domain.CodeMissingField, v.ValidateQuizID("")[0].Code)
	assert.Equal(t, domain.CodeInvalidFormat, v.ValidateQuizID("123")[0].Code)
}
