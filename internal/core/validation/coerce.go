package validation

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"listing-admin-service/internal/core/domain"
)

// reader читает поля одного JSON-объекта, приводя типы и собирая проблемы.
// Отсутствующее поле и null равнозначны: результат - nil.
type reader struct {
	obj    map[string]any
	path   string
	issues *[]domain.ValidationIssue
}

func newReader(obj map[string]any, path string, issues *[]domain.ValidationIssue) reader {
	return reader{obj: obj, path: path, issues: issues}
}

func (r reader) at(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return r.path + "/" + key
}

func (r reader) fail(key, message string) {
	*r.issues = append(*r.issues, domain.ValidationIssue{Path: r.at(key), Message: message})
}

func (r reader) failAt(path, message string) {
	*r.issues = append(*r.issues, domain.ValidationIssue{Path: path, Message: message})
}

func (r reader) raw(key string) (any, bool) {
	v, ok := r.obj[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r reader) str(key string) *string {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, "expected string")
		return nil
	}
	return &s
}

func (r reader) num(key string) *float64 {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	n, present, valid := coerceNumber(v)
	if !valid {
		r.fail(key, "expected number")
		return nil
	}
	if !present {
		return nil
	}
	return &n
}

func (r reader) boolean(key string) *bool {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	b, present, valid := coerceBool(v)
	if !valid {
		r.fail(key, "expected boolean")
		return nil
	}
	if !present {
		return nil
	}
	return &b
}

func (r reader) datetime(key string) *string {
	s := r.str(key)
	if s == nil || *s == "" {
		return nil
	}
	if !isDateTime(*s) {
		r.fail(key, "invalid datetime")
		return nil
	}
	return s
}

func (r reader) strList(key string) []string {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		r.fail(key, "expected array")
		return nil
	}
	out := make([]string, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			r.failAt(r.at(key)+"/"+strconv.Itoa(i), "expected string")
			continue
		}
		out = append(out, s)
	}
	return out
}

// object возвращает ридер вложенного объекта; ok=false для отсутствующего поля или null.
func (r reader) object(key string) (reader, bool) {
	v, ok := r.raw(key)
	if !ok {
		return reader{}, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		r.fail(key, "expected object")
		return reader{}, false
	}
	return newReader(m, r.at(key), r.issues), true
}

// coerceNumber приводит числа и числовые строки к float64.
// Пустая строка означает отсутствие значения (present=false), а не ошибку.
func coerceNumber(v any) (n float64, present bool, valid bool) {
	switch t := v.(type) {
	case float64:
		return t, true, !math.IsNaN(t) && !math.IsInf(t, 0)
	case int:
		return float64(t), true, true
	case int64:
		return float64(t), true, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false, false
		}
		return f, true, true
	}
	return 0, false, false
}

// coerceBool принимает bool, строки "true"/"false"/"1"/"0"/"yes"/"no" и числа 1/0.
func coerceBool(v any) (b bool, present bool, valid bool) {
	switch t := v.(type) {
	case bool:
		return t, true, true
	case float64:
		switch t {
		case 1:
			return true, true, true
		case 0:
			return false, true, true
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "":
			return false, false, true
		case "true", "1", "yes":
			return true, true, true
		case "false", "0", "no":
			return false, true, true
		}
	}
	return false, false, false
}

// isDateTime проверяет ISO-8601 с обязательным смещением (Z или ±hh:mm).
func isDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}
