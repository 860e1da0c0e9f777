package media

import "strings"

// Reduce применяет событие к состоянию и возвращает новое состояние.
// Исходное состояние не изменяется. После любого события Primary валиден.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case Reset:
		next := e.State.clone()
		next.Primary = EnsurePrimary(next.Existing, next.NewItems, next.Primary)
		return next

	case AddNew:
		if len(e.Uploads) == 0 {
			return s
		}
		next := s.clone()
		preferred := next.Primary
		if preferred == nil && len(next.ActiveExisting()) == 0 {
			preferred = NewSelection(len(next.NewItems))
		}
		for _, u := range e.Uploads {
			next.NewItems = append(next.NewItems, NewImage{Upload: u})
		}
		next.Primary = EnsurePrimary(next.Existing, next.NewItems, preferred)
		return next

	case SetExistingAlt:
		next := s.clone()
		for i := range next.Existing {
			if next.Existing[i].ID == e.ID {
				next.Existing[i].Alt = e.Alt
			}
		}
		return next

	case SetNewAlt:
		if e.Index < 0 || e.Index >= len(s.NewItems) {
			return s
		}
		next := s.clone()
		next.NewItems[e.Index].Alt = e.Alt
		return next

	case SetPrimaryExisting:
		for _, img := range s.Existing {
			if !img.Removed && img.ID == e.ID {
				next := s.clone()
				next.Primary = ExistingSelection(e.ID)
				return next
			}
		}
		return s

	case SetPrimaryNew:
		if e.Index < 0 || e.Index >= len(s.NewItems) {
			return s
		}
		next := s.clone()
		next.Primary = NewSelection(e.Index)
		return next

	case RemoveExisting:
		next := s.clone()
		for i := range next.Existing {
			if next.Existing[i].ID == e.ID {
				next.Existing[i].Removed = true
			}
		}
		preferred := next.Primary
		if s.IsPrimaryExisting(e.ID) {
			preferred = nil
		}
		next.Primary = EnsurePrimary(next.Existing, next.NewItems, preferred)
		return next

	case ReplaceExisting:
		next := s.clone()
		alt := ""
		for i := range next.Existing {
			if next.Existing[i].ID == e.ID {
				if alt == "" {
					alt = next.Existing[i].Alt
				}
				next.Existing[i].Removed = true
			}
		}
		next.NewItems = append(next.NewItems, NewImage{Upload: e.Upload, Alt: alt, ReplacesID: e.ID})
		preferred := next.Primary
		if s.IsPrimaryExisting(e.ID) {
			// Замена главного изображения остается главной.
			preferred = NewSelection(len(next.NewItems) - 1)
		}
		next.Primary = EnsurePrimary(next.Existing, next.NewItems, preferred)
		return next

	case RemoveNew:
		if e.Index < 0 || e.Index >= len(s.NewItems) {
			return s
		}
		next := s.clone()
		next.NewItems = append(next.NewItems[:e.Index], next.NewItems[e.Index+1:]...)
		preferred := next.Primary
		if preferred != nil && preferred.Kind == SelectNew {
			switch {
			case preferred.Index == e.Index:
				preferred = nil
			case preferred.Index > e.Index:
				preferred = NewSelection(preferred.Index - 1)
			}
		}
		next.Primary = EnsurePrimary(next.Existing, next.NewItems, preferred)
		return next

	case RemoveExistingVideo:
		url := strings.TrimSpace(e.URL)
		next := s.clone()
		for i := range next.Videos.Existing {
			if next.Videos.Existing[i].URL == url {
				next.Videos.Existing[i].Removed = true
			}
		}
		return next

	case AddExternalVideo:
		url := strings.TrimSpace(e.URL)
		if url == "" {
			return s
		}
		for _, known := range s.Videos.External {
			if known == url {
				return s
			}
		}
		next := s.clone()
		next.Videos.External = append(next.Videos.External, url)
		return next

	case RemoveExternalVideo:
		url := strings.TrimSpace(e.URL)
		next := s.clone()
		next.Videos.External = next.Videos.External[:0]
		for _, known := range s.Videos.External {
			if known != url {
				next.Videos.External = append(next.Videos.External, known)
			}
		}
		return next

	case AddNewVideos:
		if len(e.Uploads) == 0 {
			return s
		}
		next := s.clone()
		next.Videos.New = append(next.Videos.New, e.Uploads...)
		return next

	case RemoveNewVideo:
		if e.Index < 0 || e.Index >= len(s.Videos.New) {
			return s
		}
		next := s.clone()
		next.Videos.New = append(next.Videos.New[:e.Index], next.Videos.New[e.Index+1:]...)
		return next
	}

	return s
}
