package mergepatch

// Apply применяет патч к target по правилам RFC 7386. target не изменяется.
// null в патче удаляет ключ, объекты сливаются рекурсивно, остальное заменяется.
func Apply(target any, patch any) any {
	patchObj, ok := patch.(map[string]any)
	if !ok {
		return clone(patch)
	}

	targetObj, ok := target.(map[string]any)
	if !ok {
		targetObj = map[string]any{}
	}

	out := make(map[string]any, len(targetObj))
	for k, v := range targetObj {
		out[k] = clone(v)
	}

	for k, v := range patchObj {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = Apply(out[k], v)
	}
	return out
}

// ApplyObject - Apply для снимков формы.
func ApplyObject(target, patch map[string]any) map[string]any {
	return Apply(target, patch).(map[string]any)
}
