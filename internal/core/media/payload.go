package media

import "strings"

// PayloadImage - новое изображение в составе отправки.
type PayloadImage struct {
	Upload     Upload `json:"upload"`
	Alt        string `json:"alt"`
	IsPrimary  bool   `json:"isPrimary"`
	ReplacesID string `json:"replacesId,omitempty"`
}

// Payload - медиа-часть отправки объявления, идет рядом с merge patch.
type Payload struct {
	NewImages            []PayloadImage `json:"newImages"`
	NewVideos            []Upload       `json:"newVideos"`
	ExternalVideoURLs    []string       `json:"externalVideoUrls"`
	RemoveImageIDs       []string       `json:"removeImageIds"`
	RemoveVideoURLs      []string       `json:"removeVideoUrls"`
	PrimaryNewImageIndex *int           `json:"primaryNewImageIndex,omitempty"`
}

// HasChanges сообщает, нужно ли отправлять что-либо кроме патча.
func (p Payload) HasChanges() bool {
	return len(p.NewImages) > 0 ||
		len(p.NewVideos) > 0 ||
		len(p.ExternalVideoURLs) > 0 ||
		len(p.RemoveImageIDs) > 0 ||
		len(p.RemoveVideoURLs) > 0
}

// BuildPayload собирает медиа-часть отправки из состояния сессии.
// Ссылки и идентификаторы обрезаются по пробелам и не повторяются.
func BuildPayload(s State) Payload {
	var p Payload

	for i, item := range s.NewItems {
		isPrimary := s.Primary != nil && s.Primary.Kind == SelectNew && s.Primary.Index == i
		p.NewImages = append(p.NewImages, PayloadImage{
			Upload:     item.Upload,
			Alt:        item.Alt,
			IsPrimary:  isPrimary,
			ReplacesID: item.ReplacesID,
		})
	}
	if s.Primary != nil && s.Primary.Kind == SelectNew {
		idx := s.Primary.Index
		p.PrimaryNewImageIndex = &idx
	}

	p.NewVideos = append(p.NewVideos, s.Videos.New...)
	p.ExternalVideoURLs = uniqueTrimmed(s.Videos.External)

	var removedImages []string
	for _, img := range s.Existing {
		if img.Removed {
			removedImages = append(removedImages, img.ID)
		}
	}
	p.RemoveImageIDs = uniqueTrimmed(removedImages)

	var removedVideos []string
	for _, v := range s.Videos.Existing {
		if v.Removed {
			removedVideos = append(removedVideos, v.URL)
		}
	}
	p.RemoveVideoURLs = uniqueTrimmed(removedVideos)

	return p
}

func uniqueTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
