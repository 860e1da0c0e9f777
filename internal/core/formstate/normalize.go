package formstate

import (
	"math"
	"strconv"
	"strings"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/media"
)

// Snapshot - нормализованные значения формы в виде обобщенного JSON.
// Отсутствующий ключ - "не задано", ключ со значением nil - явный null.
type Snapshot = map[string]any

// ParsePrice разбирает текст поля цены. Пустой или нечисловой текст дает 0.
func ParsePrice(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// ParseCSV делит строку по запятым, обрезает пробелы, выкидывает пустые
// и повторяющиеся элементы с сохранением порядка.
func ParseCSV(text string) []string {
	return dedupe(strings.Split(text, ","))
}

func dedupe(values []string) []string {
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

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func finite(n *float64) bool {
	return n != nil && !math.IsNaN(*n) && !math.IsInf(*n, 0)
}

func stringList(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

type snapshotBuilder struct {
	out Snapshot
}

func (b snapshotBuilder) text(key, value string) {
	if !blank(value) {
		b.out[key] = value
	}
}

func (b snapshotBuilder) number(key string, value *float64) {
	if finite(value) {
		b.out[key] = *value
	}
}

func (b snapshotBuilder) flag(key string, value *bool) {
	if value != nil {
		b.out[key] = *value
	}
}

func (b snapshotBuilder) list(key string, field CSVField) {
	if field.Null {
		b.out[key] = nil
		return
	}
	if items := ParseCSV(field.Text); len(items) > 0 {
		b.out[key] = stringList(items)
	}
}

func (b snapshotBuilder) area(key string, value *domain.Area) {
	if value == nil || math.IsNaN(value.Value) || math.IsInf(value.Value, 0) {
		return
	}
	unit := value.Unit
	if unit == "" {
		unit = domain.AreaUnitSqft
	}
	b.out[key] = map[string]any{"value": value.Value, "unit": string(unit)}
}

// object добавляет вложенный объект, только если в нем есть хотя бы одно поле.
func (b snapshotBuilder) object(key string, fill func(sub snapshotBuilder)) {
	sub := snapshotBuilder{out: Snapshot{}}
	fill(sub)
	if len(sub.out) > 0 {
		b.out[key] = sub.out
	}
}

// Normalize приводит значения формы и состояние медиа к снимку.
// Одинаковый вход всегда дает одинаковый снимок, поэтому снимок исходного
// объявления служит базой для merge patch.
func Normalize(v Values, m media.State) Snapshot {
	b := snapshotBuilder{out: Snapshot{
		"title": strings.TrimSpace(v.Title),
		"price": ParsePrice(v.Price),
	}}

	b.text("slug", v.Slug)
	b.text("externalId", v.ExternalID)
	b.text("category", v.Category)
	b.text("transactionType", v.TransactionType)
	b.text("status", v.Status)
	b.text("constructionStatus", v.ConstructionStatus)
	b.text("description", v.Description)
	b.text("subtitle", v.Subtitle)
	b.list("highlights", v.Highlights)
	b.text("ownership", v.Ownership)
	b.number("yearBuilt", v.YearBuilt)
	b.text("possessionDate", v.PossessionDate)
	b.number("pricePerSqft", v.PricePerSqft)
	b.text("maintenanceTerms", v.MaintenanceTerms)

	b.area("carpetArea", v.CarpetArea)
	b.area("builtUpArea", v.BuiltUpArea)
	b.area("superBuiltUpArea", v.SuperBuiltUpArea)
	b.area("landArea", v.LandArea)

	b.number("plotLengthFt", v.PlotLengthFt)
	b.number("plotWidthFt", v.PlotWidthFt)
	b.number("frontageFt", v.FrontageFt)
	b.number("roadWidthFt", v.RoadWidthFt)
	b.text("plotFacing", v.PlotFacing)
	b.flag("cornerPlot", v.CornerPlot)

	b.number("bedrooms", v.Bedrooms)
	b.number("bathrooms", v.Bathrooms)
	b.number("balconies", v.Balconies)
	b.text("furnishing", v.Furnishing)
	b.number("floorNumber", v.FloorNumber)
	b.number("totalFloors", v.TotalFloors)
	b.flag("hasLift", v.HasLift)
	b.text("unitFacing", v.UnitFacing)
	b.number("coveredParkingCount", v.CoveredParkingCount)
	b.number("openParkingCount", v.OpenParkingCount)
	b.flag("vaastuCompliant", v.VaastuCompliant)

	b.object("priceBreakup", func(sub snapshotBuilder) {
		pb := v.PriceBreakup
		sub.number("basePrice", pb.BasePrice)
		sub.number("maintenanceMonthly", pb.MaintenanceMonthly)
		sub.number("parkingCharges", pb.ParkingCharges)
		sub.number("clubMembershipCharges", pb.ClubMembershipCharges)
		sub.number("registrationCharges", pb.RegistrationCharges)
		sub.number("gstPercent", pb.GstPercent)
		sub.flag("negotiable", pb.Negotiable)
		sub.flag("allInclusive", pb.AllInclusive)
		sub.number("bookingAmount", pb.BookingAmount)
	})

	b.text("address", v.Address)
	b.object("addressParts", func(sub snapshotBuilder) {
		ap := v.AddressParts
		sub.text("line1", ap.Line1)
		sub.text("line2", ap.Line2)
		sub.text("locality", ap.Locality)
		sub.text("landmark", ap.Landmark)
		sub.text("city", ap.City)
		sub.text("state", ap.State)
		sub.text("pincode", ap.Pincode)
	})
	if v.Geo != nil {
		geo := map[string]any{"lat": v.Geo.Lat, "lng": v.Geo.Lng}
		if finite(v.Geo.AccuracyMeters) {
			geo["accuracyMeters"] = *v.Geo.AccuracyMeters
		}
		b.out["geo"] = geo
	}

	b.text("societyName", v.SocietyName)
	b.text("projectName", v.ProjectName)
	b.text("reraId", v.ReraID)
	b.flag("reraRegistered", v.ReraRegistered)
	b.list("amenities", v.Amenities)
	b.list("tags", v.Tags)

	if active := m.ActiveExisting(); len(active) > 0 {
		images := make([]any, 0, len(active))
		for _, img := range active {
			var alt any
			if !blank(img.Alt) {
				alt = img.Alt
			}
			images = append(images, map[string]any{
				"id":        img.ID,
				"url":       img.URL,
				"alt":       alt,
				"isPrimary": m.IsPrimaryExisting(img.ID),
			})
		}
		b.out["images"] = images
	}

	b.text("virtualTourUrl", v.VirtualTourURL)
	b.out["videoUrls"] = stringList(m.ActiveVideoURLs())

	var documents []any
	for _, d := range v.Documents {
		if blank(d.Label) || blank(d.URL) {
			continue
		}
		doc := map[string]any{"label": strings.TrimSpace(d.Label), "url": strings.TrimSpace(d.URL)}
		if !blank(d.Kind) {
			doc["kind"] = strings.TrimSpace(d.Kind)
		}
		documents = append(documents, doc)
	}
	if len(documents) > 0 {
		b.out["documents"] = documents
	}

	b.text("listedByType", v.ListedByType)
	b.text("listedByName", v.ListedByName)
	b.text("contactNumber", v.ContactNumber)
	b.text("contactEmail", v.ContactEmail)
	b.text("whatsAppNumber", v.WhatsAppNumber)
	b.flag("verified", v.Verified)
	b.object("broker", func(sub snapshotBuilder) {
		sub.text("id", v.Broker.ID)
		sub.text("name", v.Broker.Name)
		sub.text("phone", v.Broker.Phone)
		sub.text("email", v.Broker.Email)
		sub.text("type", v.Broker.Type)
	})

	b.flag("isFeatured", v.IsFeatured)

	b.object("seo", func(sub snapshotBuilder) {
		sub.text("title", v.SEO.Title)
		sub.text("description", v.SEO.Description)
		// Очищенные ключевые слова сами по себе не делают SEO заполненным.
		if items := ParseCSV(v.SEO.Keywords.Text); len(items) > 0 && !v.SEO.Keywords.Null {
			sub.out["keywords"] = stringList(items)
		}
	})
	if seo, ok := b.out["seo"].(map[string]any); ok && v.SEO.Keywords.Null {
		seo["keywords"] = nil
	}

	return b.out
}
