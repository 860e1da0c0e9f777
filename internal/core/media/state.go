// Package media ведет состояние изображений и видео в сессии редактирования
// объявления: что уже есть на сервере, что загружено заново и какое фото главное.
package media

import (
	"fmt"
	"strings"

	"listing-admin-service/internal/core/domain"
)

// Upload - файл, загруженный в сессию и еще не отправленный апстриму.
// Сам файл лежит в BlobStore под BlobID.
type Upload struct {
	BlobID      string `json:"blobId"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// ExistingImage - изображение, уже сохраненное на сервере.
type ExistingImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Removed bool   `json:"removed"`
}

// NewImage - новое изображение. ReplacesID задан, если оно заменяет существующее.
type NewImage struct {
	Upload     Upload `json:"upload"`
	Alt        string `json:"alt"`
	ReplacesID string `json:"replacesId,omitempty"`
}

type SelectionKind string

const (
	SelectExisting SelectionKind = "existing"
	SelectNew      SelectionKind = "new"
)

// Selection - выбранное главное изображение: существующее по ID или новое по индексу.
type Selection struct {
	Kind  SelectionKind `json:"kind"`
	ID    string        `json:"id,omitempty"`
	Index int           `json:"index,omitempty"`
}

func ExistingSelection(id string) *Selection {
	return &Selection{Kind: SelectExisting, ID: id}
}

func NewSelection(index int) *Selection {
	return &Selection{Kind: SelectNew, Index: index}
}

// String возвращает "existing:<id>" или "new:<index>".
func (s *Selection) String() string {
	if s == nil {
		return ""
	}
	if s.Kind == SelectNew {
		return fmt.Sprintf("new:%d", s.Index)
	}
	return "existing:" + s.ID
}

type ExistingVideo struct {
	URL     string `json:"url"`
	Removed bool   `json:"removed"`
}

// Videos - видео объявления: сохраненные, загруженные файлы и внешние ссылки.
type Videos struct {
	Existing []ExistingVideo `json:"existing"`
	New      []Upload        `json:"new"`
	External []string        `json:"external"`
}

// State - медиа одной сессии. Primary указывает на не удаленное существующее
// изображение или на элемент NewItems, либо nil, если изображений нет.
type State struct {
	Existing []ExistingImage `json:"existing"`
	NewItems []NewImage      `json:"newItems"`
	Primary  *Selection      `json:"primary"`
	Videos   Videos          `json:"videos"`
}

// FromListing строит начальное состояние по сохраненному объявлению.
// Изображение без ID получает в качестве ID свой URL.
func FromListing(l domain.Listing) State {
	var st State
	var primaryID string

	for _, img := range l.Images {
		id := img.URL
		if img.ID != nil && *img.ID != "" {
			id = *img.ID
		}
		if img.URL == "" || id == "" {
			continue
		}
		alt := ""
		if img.Alt != nil {
			alt = *img.Alt
		}
		st.Existing = append(st.Existing, ExistingImage{ID: id, URL: img.URL, Alt: alt})
		if img.IsPrimary && primaryID == "" {
			primaryID = id
		}
	}

	var preferred *Selection
	if primaryID != "" {
		preferred = ExistingSelection(primaryID)
	}
	st.Primary = EnsurePrimary(st.Existing, nil, preferred)

	for _, u := range l.VideoURLs {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		st.Videos.Existing = append(st.Videos.Existing, ExistingVideo{URL: u})
	}
	return st
}

// EnsurePrimary выбирает главное изображение: preferred, если оно еще валидно,
// иначе первое не удаленное существующее, иначе первое новое, иначе nil.
func EnsurePrimary(existing []ExistingImage, newItems []NewImage, preferred *Selection) *Selection {
	if preferred != nil {
		switch preferred.Kind {
		case SelectExisting:
			for _, img := range existing {
				if !img.Removed && img.ID == preferred.ID {
					return ExistingSelection(preferred.ID)
				}
			}
		case SelectNew:
			if preferred.Index >= 0 && preferred.Index < len(newItems) {
				return NewSelection(preferred.Index)
			}
		}
	}

	for _, img := range existing {
		if !img.Removed {
			return ExistingSelection(img.ID)
		}
	}
	if len(newItems) > 0 {
		return NewSelection(0)
	}
	return nil
}

// ActiveExisting возвращает не удаленные существующие изображения.
func (s State) ActiveExisting() []ExistingImage {
	var out []ExistingImage
	for _, img := range s.Existing {
		if !img.Removed {
			out = append(out, img)
		}
	}
	return out
}

// IsPrimaryExisting сообщает, выбрано ли существующее изображение главным.
func (s State) IsPrimaryExisting(id string) bool {
	return s.Primary != nil && s.Primary.Kind == SelectExisting && s.Primary.ID == id
}

// ActiveVideoURLs - сохраненные и не удаленные видео плюс внешние ссылки.
func (s State) ActiveVideoURLs() []string {
	out := make([]string, 0, len(s.Videos.Existing)+len(s.Videos.External))
	for _, v := range s.Videos.Existing {
		if v.Removed {
			continue
		}
		if u := strings.TrimSpace(v.URL); u != "" {
			out = append(out, u)
		}
	}
	for _, u := range s.Videos.External {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// Uploads возвращает все файлы, на которые ссылается состояние.
func (s State) Uploads() []Upload {
	out := make([]Upload, 0, len(s.NewItems)+len(s.Videos.New))
	for _, item := range s.NewItems {
		out = append(out, item.Upload)
	}
	return append(out, s.Videos.New...)
}

// ReleasedUploads - файлы из before, на которые after больше не ссылается.
func ReleasedUploads(before, after State) []Upload {
	kept := make(map[string]struct{})
	for _, u := range after.Uploads() {
		kept[u.BlobID] = struct{}{}
	}

	var out []Upload
	for _, u := range before.Uploads() {
		if _, ok := kept[u.BlobID]; !ok {
			out = append(out, u)
		}
	}
	return out
}

func (s State) clone() State {
	out := State{
		Existing: append([]ExistingImage(nil), s.Existing...),
		NewItems: append([]NewImage(nil), s.NewItems...),
		Videos: Videos{
			Existing: append([]ExistingVideo(nil), s.Videos.Existing...),
			New:      append([]Upload(nil), s.Videos.New...),
			External: append([]string(nil), s.Videos.External...),
		},
	}
	if s.Primary != nil {
		p := *s.Primary
		out.Primary = &p
	}
	return out
}
