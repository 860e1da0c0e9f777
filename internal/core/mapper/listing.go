package mapper

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/validation"

	"github.com/mmcloughlin/geohash"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GeohashPrecision - точность geohash (9 символов, около 5 метров).
const GeohashPrecision = 9

// ToListing превращает провалидированную запись в каноническое объявление.
// Функция чистая: вход не изменяется, повторный вызов дает равный результат.
func ToListing(w validation.WireListing) (domain.Listing, error) {
	l := domain.Listing{
		ID:         w.ID,
		Slug:       w.Slug,
		ExternalID: w.ExternalID,

		Category:           w.Category,
		TransactionType:    normalizeEnum(w.TransactionType, domain.TransactionTypes),
		Status:             normalizeEnum(w.Status, domain.ListingStatuses),
		ConstructionStatus: normalizeEnum(w.ConstructionStatus, domain.ConstructionStatuses),

		Title:            w.Title,
		Subtitle:         w.Subtitle,
		Description:      w.Description,
		Highlights:       nonEmpty(w.Highlights),
		Ownership:        w.Ownership,
		YearBuilt:        w.YearBuilt,
		PossessionDate:   w.PossessionDate,
		MaintenanceTerms: w.MaintenanceTerms,

		PlotLengthFt: w.PlotLengthFt,
		PlotWidthFt:  w.PlotWidthFt,
		FrontageFt:   w.FrontageFt,
		RoadWidthFt:  w.RoadWidthFt,
		PlotFacing:   w.PlotFacing,
		CornerPlot:   w.CornerPlot,

		Bedrooms:            w.Bedrooms,
		Bathrooms:           w.Bathrooms,
		Balconies:           w.Balconies,
		Furnishing:          w.Furnishing,
		FloorNumber:         w.FloorNumber,
		TotalFloors:         w.TotalFloors,
		HasLift:             w.HasLift,
		CoveredParkingCount: w.CoveredParkingCount,
		OpenParkingCount:    w.OpenParkingCount,
		VaastuCompliant:     w.VaastuCompliant,
		UnitFacing:          w.UnitFacing,

		Price:        w.Price,
		PricePerSqft: w.PricePerSqft,
		PriceBreakup: copyPriceBreakup(w.PriceBreakup),

		Address:      w.Address,
		AddressParts: ToAddressParts(w.AddressParts),
		Geo:          toGeo(w.Geo),

		SocietyName:    w.SocietyName,
		ProjectName:    w.ProjectName,
		ReraID:         w.ReraID,
		ReraRegistered: w.ReraRegistered,
		Amenities:      nonEmpty(w.Amenities),
		Tags:           nonEmpty(w.Tags),

		Images:         ToImages(w.Images),
		VideoURLs:      nonEmpty(w.VideoURLs),
		VirtualTourURL: w.VirtualTourURL,
		Documents:      toDocuments(w.Documents),

		ListedByType:   w.ListedByType,
		ListedByName:   w.ListedByName,
		ContactNumber:  w.ContactNumber,
		ContactEmail:   w.ContactEmail,
		WhatsAppNumber: w.WhatsAppNumber,
		Verified:       w.Verified,
		Broker:         copyBroker(w.Broker),

		IsFeatured:  w.IsFeatured,
		FeaturedAt:  w.FeaturedAt,
		PublishedAt: w.PublishedAt,
		PostedAt:    w.PostedAt,
		ArchivedAt:  w.ArchivedAt,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		SEO:         copySEO(w.SEO),
		Analytics:   copyAnalytics(w.Analytics),
		Extra:       maps.Clone(w.Extra),
	}

	areas := []struct {
		name string
		in   *validation.WireArea
		out  **domain.Area
	}{
		{"carpetArea", w.CarpetArea, &l.CarpetArea},
		{"builtUpArea", w.BuiltUpArea, &l.BuiltUpArea},
		{"superBuiltUpArea", w.SuperBuiltUpArea, &l.SuperBuiltUpArea},
		{"landArea", w.LandArea, &l.LandArea},
	}
	for _, a := range areas {
		if a.in == nil {
			continue
		}
		area, err := NormalizeArea(*a.in)
		if err != nil {
			return domain.Listing{}, &domain.TransformationError{Op: "map listing", Path: "/" + a.name, Reason: err.Error()}
		}
		*a.out = &area
	}

	return l, nil
}

// ToListings маппит список; первая ошибка прерывает маппинг.
func ToListings(ws []validation.WireListing) ([]domain.Listing, error) {
	out := make([]domain.Listing, 0, len(ws))
	for i, w := range ws {
		l, err := ToListing(w)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// NormalizeArea: голое число считается квадратными футами, объект проходит как есть.
func NormalizeArea(a validation.WireArea) (domain.Area, error) {
	if a.Unit == nil {
		return domain.Area{Value: a.Value, Unit: domain.AreaUnitSqft}, nil
	}
	if !a.Unit.IsValid() {
		return domain.Area{}, fmt.Errorf("unconvertible area unit %q", string(*a.Unit))
	}
	return domain.Area{Value: a.Value, Unit: *a.Unit}, nil
}

// ToImages приводит изображения к объектам и гарантирует ровно одно главное.
// Если помечено несколько, главным остается первое помеченное.
func ToImages(in []validation.WireImage) []domain.Media {
	out := make([]domain.Media, 0, len(in))
	for _, img := range in {
		if strings.TrimSpace(img.URL) == "" {
			continue
		}
		m := domain.Media{
			ID:        img.ID,
			URL:       img.URL,
			Kind:      img.Kind,
			Order:     img.Order,
			Alt:       img.Alt,
			CreatedAt: img.CreatedAt,
			UpdatedAt: img.UpdatedAt,
		}
		if img.IsPrimary != nil {
			m.IsPrimary = *img.IsPrimary
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil
	}

	primary := -1
	for i := range out {
		if !out[i].IsPrimary {
			continue
		}
		if primary >= 0 {
			out[i].IsPrimary = false
			continue
		}
		primary = i
	}
	if primary < 0 {
		out[0].IsPrimary = true
	}
	return out
}

// ToAddressParts подставляет город и штат по умолчанию, в том числе когда адреса нет совсем.
func ToAddressParts(ap *validation.WireAddressParts) domain.AddressParts {
	parts := domain.AddressParts{City: domain.DefaultCity, State: domain.DefaultState}
	if ap == nil {
		return parts
	}
	parts.Line1 = ap.Line1
	parts.Line2 = ap.Line2
	parts.Locality = ap.Locality
	parts.Landmark = ap.Landmark
	parts.Pincode = ap.Pincode
	if ap.City != nil {
		parts.City = *ap.City
	}
	if ap.State != nil {
		parts.State = *ap.State
	}
	return parts
}

func toGeo(g *validation.WireGeo) *domain.Geo {
	if g == nil {
		return nil
	}
	return &domain.Geo{
		Lat:            g.Lat,
		Lng:            g.Lng,
		AccuracyMeters: g.AccuracyMeters,
		Hash:           geohash.EncodeWithPrecision(g.Lat, g.Lng, GeohashPrecision),
	}
}

var lowerCaser = cases.Lower(language.Und)

// normalizeEnum приводит "Under Offer" и "under-offer" к "under_offer",
// если такое значение есть в known. Незнакомое значение возвращается как есть.
func normalizeEnum(s *string, known []string) *string {
	if s == nil {
		return nil
	}
	v := lowerCaser.String(strings.TrimSpace(*s))
	v = strings.Join(strings.FieldsFunc(v, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
	if !slices.Contains(known, v) {
		return s
	}
	return &v
}

func nonEmpty(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}

func toDocuments(in []domain.DocumentRef) []domain.DocumentRef {
	if len(in) == 0 {
		return nil
	}
	return append([]domain.DocumentRef(nil), in...)
}

func copyPriceBreakup(pb *domain.PriceBreakup) *domain.PriceBreakup {
	if pb == nil {
		return nil
	}
	c := *pb
	return &c
}

func copyBroker(b *domain.Broker) *domain.Broker {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

func copySEO(s *domain.SEO) *domain.SEO {
	if s == nil {
		return nil
	}
	c := *s
	c.Keywords = nonEmpty(s.Keywords)
	return &c
}

func copyAnalytics(a *domain.Analytics) *domain.Analytics {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// ToWire сериализует объявление обратно в форму апстрима.
// Проекция стабильна: ToListing(Validate(ToWire(l))) == l.
// Поля из Extra не перекрывают поля модели.
func ToWire(l domain.Listing) (map[string]any, error) {
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing projection: %w", err)
	}
	for k, v := range l.Extra {
		if _, known := out[k]; !known {
			out[k] = v
		}
	}
	return out, nil
}
