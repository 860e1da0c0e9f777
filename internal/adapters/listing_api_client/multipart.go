package listing_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/port"
)

// multipartBody отдает тело отправки потоком, файлы читаются из хранилища по мере записи.
func (c *ListingAPIClient) multipartBody(ctx context.Context, sub port.ListingSubmission) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := WriteSubmission(ctx, mw, sub, c.openBlob)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	return pr, mw.FormDataContentType()
}

func (c *ListingAPIClient) openBlob(ctx context.Context, blobID string) (io.ReadCloser, error) {
	if c.blobs == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	return c.blobs.Open(ctx, blobID)
}

// OpenFunc открывает содержимое загруженного файла.
type OpenFunc func(ctx context.Context, blobID string) (io.ReadCloser, error)

// WriteSubmission пишет поля отправки объявления. Файлы дублируются
// под старыми именами полей images и videos, их до сих пор читают некоторые бэкенды.
func WriteSubmission(ctx context.Context, mw *multipart.Writer, sub port.ListingSubmission, open OpenFunc) error {
	patch := sub.Patch
	if patch == nil {
		patch = map[string]any{}
	}
	listingJSON, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to marshal listing patch: %w", err)
	}
	if err := mw.WriteField("listing", string(listingJSON)); err != nil {
		return err
	}

	m := sub.Media
	for _, img := range m.NewImages {
		for _, field := range []string{"images[]", "images"} {
			if err := writeFile(ctx, mw, field, img.Upload, open); err != nil {
				return err
			}
		}
		if err := mw.WriteField("imageAlts[]", strings.TrimSpace(img.Alt)); err != nil {
			return err
		}
		if img.ReplacesID != "" {
			if err := mw.WriteField("replaceImageIds[]", img.ReplacesID); err != nil {
				return err
			}
		}
	}

	if m.PrimaryNewImageIndex != nil {
		if err := mw.WriteField("primaryImageIndex", strconv.Itoa(*m.PrimaryNewImageIndex)); err != nil {
			return err
		}
	}

	for _, video := range m.NewVideos {
		for _, field := range []string{"videos[]", "videos"} {
			if err := writeFile(ctx, mw, field, video, open); err != nil {
				return err
			}
		}
	}

	lists := []struct {
		field  string
		values []string
	}{
		{"externalVideoUrls[]", m.ExternalVideoURLs},
		{"removeImageIds[]", m.RemoveImageIDs},
		{"removeVideoUrls[]", m.RemoveVideoURLs},
	}
	for _, l := range lists {
		for _, v := range l.values {
			if v = strings.TrimSpace(v); v == "" {
				continue
			}
			if err := mw.WriteField(l.field, v); err != nil {
				return err
			}
		}
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(ctx context.Context, mw *multipart.Writer, field string, up media.Upload, open OpenFunc) error {
	src, err := open(ctx, up.BlobID)
	if err != nil {
		return fmt.Errorf("failed to open upload %s: %w", up.BlobID, err)
	}
	defer src.Close()

	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	name := up.Name
	if name == "" {
		name = up.BlobID
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(name)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to copy upload %s: %w", up.BlobID, err)
	}
	return nil
}
