package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"listing-admin-service/internal/core/domain"
)

// Ответ со списком заявок бывает обернут по-разному, поэтому разбор терпимый:
// неизвестная форма дает пустой список, а не ошибку.

var (
	nestedItemKeys = []string{"items", "data", "results", "interests", "records", "list"}
	directItemKeys = []string{"items", "results", "interests", "records", "list", "entries"}

	interestIDKeys      = []string{"id", "_id", "interestId", "interest_id", "uuid"}
	interestNameKeys    = []string{"name", "fullName", "full_name", "contact_name"}
	interestPhoneKeys   = []string{"phone", "phoneNumber", "phone_number", "mobile", "mobileNumber"}
	interestEmailKeys   = []string{"email", "emailAddress", "email_address", "contact_email"}
	interestMessageKeys = []string{"message", "notes", "note", "content", "body", "comment"}
	interestCreatedKeys = []string{"createdAt", "created_at", "created", "submittedAt", "submitted_at", "timestamp"}

	pageKeys       = []string{"page", "currentPage", "current_page", "pageNumber"}
	pageSizeKeys   = []string{"pageSize", "page_size", "perPage", "per_page", "limit"}
	totalItemsKeys = []string{"totalItems", "total_items", "count", "total"}
	totalPagesKeys = []string{"totalPages", "total_pages"}
)

// ParseInterestPage нормализует ответ со списком заявок.
// page и pageSize - значения из запроса, они используются, если апстрим не прислал пагинацию.
func ParseInterestPage(payload any, page, pageSize int) domain.InterestPage {
	rawItems, rawPagination := unwrapInterests(payload)

	items := make([]domain.Interest, 0, len(rawItems))
	for i, raw := range rawItems {
		items = append(items, mapInterest(raw, i))
	}

	return domain.InterestPage{
		Items:      items,
		Pagination: normalizePagination(rawPagination, page, pageSize, len(items)),
	}
}

func unwrapInterests(payload any) ([]any, any) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, nil
	}

	if arr, ok := obj["data"].([]any); ok {
		return arr, firstPresent(obj, "pagination", "meta")
	}

	for _, key := range []string{"data", "result"} {
		nested, ok := obj[key].(map[string]any)
		if !ok {
			continue
		}
		if items, found := firstValue(nested, nestedItemKeys); found {
			if arr, ok := items.([]any); ok {
				return arr, firstPresent(nested, "pagination", "meta")
			}
		} else {
			return nil, firstPresent(nested, "pagination", "meta")
		}
		break
	}

	items, _ := firstValue(obj, directItemKeys)
	arr, _ := items.([]any)
	return arr, firstPresent(obj, "pagination", "meta")
}

func firstValue(obj map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstPresent(obj map[string]any, keys ...string) any {
	v, _ := firstValue(obj, keys)
	return v
}

func mapInterest(raw any, index int) domain.Interest {
	item, _ := raw.(map[string]any)
	if item == nil {
		item = map[string]any{}
	}

	id, ok := readString(item, interestIDKeys)
	if !ok {
		id = fallbackInterestID(item, index)
	}
	name, ok := readString(item, interestNameKeys)
	if !ok {
		name = "Unknown"
	}
	phone, _ := readString(item, interestPhoneKeys)

	return domain.Interest{
		ID:        id,
		Name:      name,
		Phone:     phone,
		Email:     readOptional(item, interestEmailKeys),
		Message:   readOptional(item, interestMessageKeys),
		CreatedAt: readOptional(item, interestCreatedKeys),
	}
}

func fallbackInterestID(item map[string]any, index int) string {
	fallback := strconv.Itoa(index)
	for _, key := range []string{"phone", "email", "name"} {
		if v, ok := readString(item, []string{key}); ok {
			fallback = v
			break
		}
	}
	return fmt.Sprintf("interest-%s-%d", fallback, index)
}

func readString(obj map[string]any, keys []string) (string, bool) {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s, true
			}
		case float64:
			if !math.IsNaN(t) && !math.IsInf(t, 0) {
				return strconv.FormatFloat(t, 'f', -1, 64), true
			}
		}
	}
	return "", false
}

func readOptional(obj map[string]any, keys []string) *string {
	if s, ok := readString(obj, keys); ok {
		return &s
	}
	return nil
}

func readNumber(obj map[string]any, keys []string) (int, bool) {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		if n, present, valid := coerceNumber(v); present && valid {
			return int(n), true
		}
	}
	return 0, false
}

func normalizePagination(raw any, page, pageSize, itemCount int) domain.InterestPagination {
	pages := func(total, size int) int {
		if size <= 0 {
			return 1
		}
		return max(1, int(math.Ceil(float64(total)/float64(size))))
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.InterestPagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: itemCount,
			TotalPages: pages(itemCount, pageSize),
		}
	}

	p := domain.InterestPagination{Page: page, PageSize: pageSize, TotalItems: itemCount}
	if v, ok := readNumber(obj, pageKeys); ok {
		p.Page = v
	}
	if v, ok := readNumber(obj, pageSizeKeys); ok {
		p.PageSize = v
	}
	if v, ok := readNumber(obj, totalItemsKeys); ok {
		p.TotalItems = v
	}
	if v, ok := readNumber(obj, totalPagesKeys); ok {
		p.TotalPages = v
	} else {
		p.TotalPages = pages(p.TotalItems, p.PageSize)
	}
	return p
}
