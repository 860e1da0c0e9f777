package validation

import (
	"errors"
	"regexp"
	"strconv"

	"listing-admin-service/internal/contracts"
	"listing-admin-service/internal/core/domain"
)

// Candidate - один из вариантов обертки ответа апстрима.
// Unwrap достает содержимое; ok=false значит, что ответ не подходит под эту обертку.
type Candidate struct {
	Name   string
	Path   string
	Unwrap func(payload any) (inner any, ok bool)
}

// Result - итог попытки одного кандидата.
type Result[T any] struct {
	Candidate  string
	Applicable bool
	Value      T
	Err        error
}

func (r Result[T]) OK() bool { return r.Applicable && r.Err == nil }

// ListingCandidates - порядок разбора одиночного объявления.
var ListingCandidates = []Candidate{
	{Name: "plain", Path: "", Unwrap: asObject},
	{Name: "data", Path: "/data", Unwrap: field("data", asObject)},
	{Name: "data.data", Path: "/data/data", Unwrap: field("data", field("data", asObject))},
}

// ListCandidates - порядок разбора ответа со списком.
var ListCandidates = []Candidate{
	{Name: "items", Path: "", Unwrap: withKey("items")},
	{Name: "data.items", Path: "/data", Unwrap: field("data", withKey("items"))},
	{Name: "data.data.items", Path: "/data/data", Unwrap: field("data", field("data", withKey("items")))},
	{Name: "array", Path: "", Unwrap: asArray},
}

// SimilarCandidates - порядок разбора похожих объявлений.
var SimilarCandidates = []Candidate{
	{Name: "array", Path: "", Unwrap: asArray},
	{Name: "data", Path: "/data", Unwrap: field("data", asArray)},
	{Name: "items", Path: "/items", Unwrap: field("items", asArray)},
}

func asObject(v any) (any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asArray(v any) (any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func withKey(key string) func(any) (any, bool) {
	return func(v any) (any, bool) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		_, has := m[key]
		return m, has
	}
}

func field(key string, next func(any) (any, bool)) func(any) (any, bool) {
	return func(v any) (any, bool) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		inner, ok := m[key]
		if !ok {
			return nil, false
		}
		return next(inner)
	}
}

// Try перебирает кандидатов по порядку и возвращает первый успешный результат.
// Если успешных нет, ошибкой становится ошибка последнего подходящего кандидата:
// он дальше всех продвинулся внутрь обертки.
func Try[T any](payload any, candidates []Candidate, parse func(inner any, path string) (T, error)) (Result[T], []Result[T]) {
	attempts := make([]Result[T], 0, len(candidates))
	for _, c := range candidates {
		inner, ok := c.Unwrap(payload)
		if !ok {
			attempts = append(attempts, Result[T]{Candidate: c.Name})
			continue
		}
		value, err := parse(inner, c.Path)
		res := Result[T]{Candidate: c.Name, Applicable: true, Value: value, Err: err}
		attempts = append(attempts, res)
		if err == nil {
			return res, attempts
		}
	}

	for i := len(attempts) - 1; i >= 0; i-- {
		if attempts[i].Applicable {
			return attempts[i], attempts
		}
	}
	return Result[T]{
		Err: domain.NewValidationError(domain.SourcePayload, []domain.ValidationIssue{
			{Path: "", Message: "unrecognized response envelope"},
		}),
	}, attempts
}

// ParseListing разбирает одиночное объявление в любой из известных оберток.
func ParseListing(payload any) (WireListing, error) {
	res, _ := Try(payload, ListingCandidates, ValidateListing)
	return res.Value, res.Err
}

// WireListingPage - провалидированная страница списка.
type WireListingPage struct {
	Items []WireListing
	Total int
}

// ParseListingList разбирает ответ со списком объявлений.
func ParseListingList(payload any) (WireListingPage, error) {
	res, _ := Try(payload, ListCandidates, parseListEnvelope)
	return res.Value, res.Err
}

func parseListEnvelope(inner any, path string) (WireListingPage, error) {
	if arr, ok := inner.([]any); ok {
		items, err := validateItems(arr, path)
		if err != nil {
			return WireListingPage{}, err
		}
		return WireListingPage{Items: items, Total: len(items)}, nil
	}

	obj := inner.(map[string]any)
	if err := contracts.Validate(contracts.ListingListSchema, obj); err != nil {
		issues := prefixed(contracts.Issues(err), path)
		verr := domain.NewValidationError(domain.SourcePayload, issues)
		verr.Index = indexFromPath(verr.Path, path+"/items")
		return WireListingPage{}, verr
	}

	total, present, valid := coerceNumber(obj["total"])
	if !valid || !present {
		return WireListingPage{}, domain.NewValidationError(domain.SourcePayload, []domain.ValidationIssue{
			{Path: path + "/total", Message: "expected number"},
		})
	}

	items, err := validateItems(obj["items"].([]any), path+"/items")
	if err != nil {
		return WireListingPage{}, err
	}
	return WireListingPage{Items: items, Total: int(total)}, nil
}

// validateItems проверяет элементы по порядку и останавливается на первом плохом.
func validateItems(arr []any, path string) ([]WireListing, error) {
	out := make([]WireListing, 0, len(arr))
	for i, item := range arr {
		w, err := ValidateListing(item, path+"/"+strconv.Itoa(i))
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				idx := i
				verr.Index = &idx
			}
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

var leadingIndex = regexp.MustCompile(`^/(\d+)`)

func indexFromPath(path, prefix string) *int {
	if len(path) <= len(prefix) || path[:len(prefix)] != prefix {
		return nil
	}
	m := leadingIndex.FindStringSubmatch(path[len(prefix):])
	if m == nil {
		return nil
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &idx
}

// ParseSimilar разбирает похожие объявления. Невалидные элементы отбрасываются,
// их ошибки возвращаются вторым значением для логирования.
func ParseSimilar(payload any) ([]WireListing, []*domain.ValidationError) {
	type similar struct {
		items   []WireListing
		dropped []*domain.ValidationError
	}

	res, _ := Try(payload, SimilarCandidates, func(inner any, path string) (similar, error) {
		var out similar
		for i, item := range inner.([]any) {
			w, err := ValidateListing(item, path+"/"+strconv.Itoa(i))
			if err != nil {
				var verr *domain.ValidationError
				if errors.As(err, &verr) {
					idx := i
					verr.Index = &idx
					out.dropped = append(out.dropped, verr)
				}
				continue
			}
			out.items = append(out.items, w)
		}
		return out, nil
	})
	if !res.OK() {
		return nil, nil
	}
	return res.Value.items, res.Value.dropped
}
