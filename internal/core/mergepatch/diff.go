// Package mergepatch строит и применяет JSON Merge Patch (RFC 7386)
// для снимков формы объявления.
//
// Снимки - это обобщенный JSON (map[string]any, []any, string, float64, bool, nil).
// Отсутствие ключа в map означает "не задано", ключ со значением nil - явный null.
package mergepatch

// Diff возвращает минимальный патч, который переводит baseline в current.
// Пустой результат означает, что изменений нет.
func Diff(current, baseline map[string]any) map[string]any {
	patch := make(map[string]any)

	for key, cur := range current {
		base, inBase := baseline[key]
		if v, keep := DiffValue(cur, base, true, inBase); keep {
			patch[key] = v
		}
	}

	for key := range baseline {
		if _, inCurrent := current[key]; inCurrent {
			continue
		}
		// Поле пропало из формы - удаляем его на сервере.
		patch[key] = nil
	}

	return patch
}

// DiffValue сравнивает одно значение. currentSet/baselineSet - присутствует ли ключ.
// keep=false значит, что значение в патч не попадает.
func DiffValue(current, baseline any, currentSet, baselineSet bool) (value any, keep bool) {
	switch {
	case !currentSet && !baselineSet:
		return nil, false
	case !currentSet:
		return nil, true
	case !baselineSet:
		return clone(current), true
	}

	if Equal(current, baseline) {
		return nil, false
	}

	curObj, curIsObj := current.(map[string]any)
	baseObj, baseIsObj := baseline.(map[string]any)
	if !curIsObj || !baseIsObj {
		// null, примитивы, массивы и смена типа заменяются целиком.
		return clone(current), true
	}

	sub := Diff(curObj, baseObj)
	if len(sub) == 0 {
		return nil, false
	}
	return sub, true
}

func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = clone(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = clone(inner)
		}
		return out
	default:
		return v
	}
}
