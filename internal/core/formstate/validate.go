package formstate

import (
	"math"
	"strconv"
	"strings"

	"listing-admin-service/internal/core/domain"
)

// Validate проверяет форму перед отправкой. Нормализацию не блокирует:
// Normalize работает и с невалидной формой, например для предпросмотра.
func Validate(v Values) error {
	var issues []domain.ValidationIssue
	fail := func(path, msg string) {
		issues = append(issues, domain.ValidationIssue{Path: path, Message: msg})
	}

	if strings.TrimSpace(v.Title) == "" {
		fail("/title", "title is required")
	}

	if text := strings.TrimSpace(v.Price); text != "" {
		n, err := strconv.ParseFloat(text, 64)
		switch {
		case err != nil || math.IsNaN(n) || math.IsInf(n, 0):
			fail("/price", "price must be a number")
		case n < 0:
			fail("/price", "price must not be negative")
		}
	}

	areas := []struct {
		path string
		area *domain.Area
	}{
		{"/carpetArea", v.CarpetArea},
		{"/builtUpArea", v.BuiltUpArea},
		{"/superBuiltUpArea", v.SuperBuiltUpArea},
		{"/landArea", v.LandArea},
	}
	for _, a := range areas {
		if a.area == nil {
			continue
		}
		if a.area.Unit != "" && !a.area.Unit.IsValid() {
			fail(a.path+"/unit", "unknown area unit "+strconv.Quote(string(a.area.Unit)))
		}
		if a.area.Value < 0 {
			fail(a.path+"/value", "area must not be negative")
		}
	}

	for i, d := range v.Documents {
		labelSet, urlSet := strings.TrimSpace(d.Label) != "", strings.TrimSpace(d.URL) != ""
		if labelSet != urlSet {
			fail("/documents/"+strconv.Itoa(i), "document needs both label and url")
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return domain.NewValidationError(domain.SourceForm, issues)
}
