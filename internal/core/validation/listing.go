package validation

import (
	"strconv"

	"listing-admin-service/internal/contracts"
	"listing-admin-service/internal/core/domain"
)

// WireArea - площадь в том виде, в каком ее прислал апстрим.
// Unit == nil означает "голое" число без единицы.
type WireArea struct {
	Value float64
	Unit  *domain.AreaUnit
}

// WireImage - изображение в одном из двух форматов: строка-URL (Bare) или объект.
type WireImage struct {
	URL       string
	Bare      bool
	ID        *string
	Kind      *string
	Order     *float64
	Alt       *string
	IsPrimary *bool
	CreatedAt *string
	UpdatedAt *string
}

type WireAddressParts struct {
	Line1, Line2, Locality, Landmark, City, State, Pincode *string
}

type WireGeo struct {
	Lat            float64
	Lng            float64
	AccuracyMeters *float64
}

// WireListing - провалидированная запись апстрима, еще не каноническая.
// Неизвестные поля сохраняются в Extra.
type WireListing struct {
	ID         string
	Slug       *string
	ExternalID *string

	Category           *string
	TransactionType    *string
	Status             *string
	ConstructionStatus *string

	Title            string
	Subtitle         *string
	Description      *string
	Highlights       []string
	Ownership        *string
	YearBuilt        *float64
	PossessionDate   *string
	MaintenanceTerms *string

	CarpetArea       *WireArea
	BuiltUpArea      *WireArea
	SuperBuiltUpArea *WireArea
	LandArea         *WireArea

	PlotLengthFt *float64
	PlotWidthFt  *float64
	FrontageFt   *float64
	RoadWidthFt  *float64
	PlotFacing   *string
	CornerPlot   *bool

	Bedrooms            *float64
	Bathrooms           *float64
	Balconies           *float64
	Furnishing          *string
	FloorNumber         *float64
	TotalFloors         *float64
	HasLift             *bool
	CoveredParkingCount *float64
	OpenParkingCount    *float64
	VaastuCompliant     *bool
	UnitFacing          *string

	Price        float64
	PricePerSqft *float64
	PriceBreakup *domain.PriceBreakup

	Address      *string
	AddressParts *WireAddressParts
	Geo          *WireGeo

	SocietyName    *string
	ProjectName    *string
	ReraID         *string
	ReraRegistered *bool
	Amenities      []string
	Tags           []string

	Images         []WireImage
	VideoURLs      []string
	VirtualTourURL *string
	Documents      []domain.DocumentRef

	ListedByType   *string
	ListedByName   *string
	ContactNumber  *string
	ContactEmail   *string
	WhatsAppNumber *string
	Verified       *bool
	Broker         *domain.Broker

	IsFeatured  *bool
	FeaturedAt  *string
	PublishedAt *string
	PostedAt    *string
	ArchivedAt  *string
	CreatedAt   *string
	UpdatedAt   *string
	SEO         *domain.SEO
	Analytics   *domain.Analytics

	Extra map[string]any
}

var knownFields = map[string]struct{}{}

func init() {
	for _, k := range []string{
		"id", "slug", "externalId", "category", "transactionType", "status", "constructionStatus",
		"title", "subtitle", "description", "highlights", "ownership", "yearBuilt", "possessionDate",
		"maintenanceTerms", "carpetArea", "builtUpArea", "superBuiltUpArea", "landArea",
		"plotLengthFt", "plotWidthFt", "frontageFt", "roadWidthFt", "plotFacing", "cornerPlot",
		"bedrooms", "bathrooms", "balconies", "furnishing", "floorNumber", "totalFloors", "hasLift",
		"coveredParkingCount", "openParkingCount", "vaastuCompliant", "unitFacing",
		"price", "pricePerSqft", "priceBreakup", "address", "addressParts", "geo",
		"societyName", "projectName", "reraId", "reraRegistered", "amenities", "tags",
		"images", "videoUrls", "virtualTourUrl", "documents",
		"listedByType", "listedByName", "contactNumber", "contactEmail", "whatsAppNumber", "verified", "broker",
		"isFeatured", "featuredAt", "publishedAt", "postedAt", "archivedAt", "createdAt", "updatedAt",
		"seo", "analytics",
	} {
		knownFields[k] = struct{}{}
	}
}

// ValidateListing проверяет одну запись без конверта.
// path - JSON pointer записи внутри исходного ответа, он становится префиксом путей в ошибке.
func ValidateListing(v any, path string) (WireListing, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return WireListing{}, domain.NewValidationError(domain.SourcePayload, []domain.ValidationIssue{
			{Path: path, Message: "expected object"},
		})
	}

	if err := contracts.Validate(contracts.ListingSchema, obj); err != nil {
		return WireListing{}, domain.NewValidationError(domain.SourcePayload, prefixed(contracts.Issues(err), path))
	}

	var issues []domain.ValidationIssue
	w := decodeListing(newReader(obj, path, &issues))
	if len(issues) > 0 {
		return WireListing{}, domain.NewValidationError(domain.SourcePayload, issues)
	}
	return w, nil
}

func prefixed(issues []domain.ValidationIssue, path string) []domain.ValidationIssue {
	if path == "" {
		return issues
	}
	out := make([]domain.ValidationIssue, len(issues))
	for i, is := range issues {
		out[i] = domain.ValidationIssue{Path: path + is.Path, Message: is.Message}
	}
	return out
}

func decodeListing(r reader) WireListing {
	w := WireListing{
		Slug:               r.str("slug"),
		ExternalID:         r.str("externalId"),
		Category:           r.str("category"),
		TransactionType:    r.str("transactionType"),
		Status:             r.str("status"),
		ConstructionStatus: r.str("constructionStatus"),

		Subtitle:         r.str("subtitle"),
		Description:      r.str("description"),
		Highlights:       r.strList("highlights"),
		Ownership:        r.str("ownership"),
		YearBuilt:        r.num("yearBuilt"),
		PossessionDate:   r.datetime("possessionDate"),
		MaintenanceTerms: r.str("maintenanceTerms"),

		CarpetArea:       r.area("carpetArea"),
		BuiltUpArea:      r.area("builtUpArea"),
		SuperBuiltUpArea: r.area("superBuiltUpArea"),
		LandArea:         r.area("landArea"),

		PlotLengthFt: r.num("plotLengthFt"),
		PlotWidthFt:  r.num("plotWidthFt"),
		FrontageFt:   r.num("frontageFt"),
		RoadWidthFt:  r.num("roadWidthFt"),
		PlotFacing:   r.str("plotFacing"),
		CornerPlot:   r.boolean("cornerPlot"),

		Bedrooms:            r.num("bedrooms"),
		Bathrooms:           r.num("bathrooms"),
		Balconies:           r.num("balconies"),
		Furnishing:          r.str("furnishing"),
		FloorNumber:         r.num("floorNumber"),
		TotalFloors:         r.num("totalFloors"),
		HasLift:             r.boolean("hasLift"),
		CoveredParkingCount: r.num("coveredParkingCount"),
		OpenParkingCount:    r.num("openParkingCount"),
		VaastuCompliant:     r.boolean("vaastuCompliant"),
		UnitFacing:          r.str("unitFacing"),

		PricePerSqft: r.num("pricePerSqft"),
		Address:      r.str("address"),

		SocietyName:    r.str("societyName"),
		ProjectName:    r.str("projectName"),
		ReraID:         r.str("reraId"),
		ReraRegistered: r.boolean("reraRegistered"),
		Amenities:      r.strList("amenities"),
		Tags:           r.strList("tags"),

		Images:         r.images("images"),
		VideoURLs:      r.strList("videoUrls"),
		VirtualTourURL: r.str("virtualTourUrl"),
		Documents:      r.documents("documents"),

		ListedByType:   r.str("listedByType"),
		ListedByName:   r.str("listedByName"),
		ContactNumber:  r.str("contactNumber"),
		ContactEmail:   r.str("contactEmail"),
		WhatsAppNumber: r.str("whatsAppNumber"),
		Verified:       r.boolean("verified"),

		IsFeatured:  r.boolean("isFeatured"),
		FeaturedAt:  r.datetime("featuredAt"),
		PublishedAt: r.datetime("publishedAt"),
		PostedAt:    r.datetime("postedAt"),
		ArchivedAt:  r.datetime("archivedAt"),
		CreatedAt:   r.datetime("createdAt"),
		UpdatedAt:   r.datetime("updatedAt"),
	}

	if id := r.str("id"); id != nil {
		w.ID = *id
	}
	if title := r.str("title"); title != nil {
		w.Title = *title
	}

	switch price := r.num("price"); {
	case price == nil:
		if _, present := r.raw("price"); present {
			// пустая строка вместо обязательной цены
			r.fail("price", "required")
		}
	case *price < 0:
		r.fail("price", "must be non-negative")
	default:
		w.Price = *price
	}

	if pb, ok := r.object("priceBreakup"); ok {
		w.PriceBreakup = &domain.PriceBreakup{
			BasePrice:             pb.num("basePrice"),
			MaintenanceMonthly:    pb.num("maintenanceMonthly"),
			ParkingCharges:        pb.num("parkingCharges"),
			ClubMembershipCharges: pb.num("clubMembershipCharges"),
			RegistrationCharges:   pb.num("registrationCharges"),
			GstPercent:            pb.num("gstPercent"),
			BookingAmount:         pb.num("bookingAmount"),
			Negotiable:            pb.boolean("negotiable"),
			AllInclusive:          pb.boolean("allInclusive"),
		}
	}

	if ap, ok := r.object("addressParts"); ok {
		w.AddressParts = &WireAddressParts{
			Line1:    ap.str("line1"),
			Line2:    ap.str("line2"),
			Locality: ap.str("locality"),
			Landmark: ap.str("landmark"),
			City:     ap.str("city"),
			State:    ap.str("state"),
			Pincode:  ap.str("pincode"),
		}
	}

	if g, ok := r.object("geo"); ok {
		lat, lng := g.num("lat"), g.num("lng")
		switch {
		case lat == nil:
			g.fail("lat", "required")
		case lng == nil:
			g.fail("lng", "required")
		default:
			w.Geo = &WireGeo{Lat: *lat, Lng: *lng, AccuracyMeters: g.num("accuracyMeters")}
		}
	}

	if b, ok := r.object("broker"); ok {
		w.Broker = &domain.Broker{
			ID:    b.str("id"),
			Name:  b.str("name"),
			Phone: b.str("phone"),
			Email: b.str("email"),
			Type:  b.str("type"),
		}
	}

	if s, ok := r.object("seo"); ok {
		w.SEO = &domain.SEO{
			Title:       s.str("title"),
			Description: s.str("description"),
			Keywords:    s.strList("keywords"),
		}
	}

	if a, ok := r.object("analytics"); ok {
		w.Analytics = &domain.Analytics{
			Views:     a.num("views"),
			Saves:     a.num("saves"),
			Inquiries: a.num("inquiries"),
		}
	}

	for k, v := range r.obj {
		if _, known := knownFields[k]; known {
			continue
		}
		if w.Extra == nil {
			w.Extra = make(map[string]any)
		}
		w.Extra[k] = v
	}

	return w
}

// area принимает число, числовую строку или объект {value, unit}.
func (r reader) area(key string) *WireArea {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}

	if obj, isObj := v.(map[string]any); isObj {
		sub := newReader(obj, r.at(key), r.issues)
		value := sub.num("value")
		unitStr := sub.str("unit")
		if value == nil {
			sub.fail("value", "required")
			return nil
		}
		if unitStr == nil {
			sub.fail("unit", "required")
			return nil
		}
		unit := domain.AreaUnit(*unitStr)
		if !unit.IsValid() {
			sub.fail("unit", "unknown area unit")
			return nil
		}
		return &WireArea{Value: *value, Unit: &unit}
	}

	n, present, valid := coerceNumber(v)
	if !valid {
		r.fail(key, "expected number or {value, unit}")
		return nil
	}
	if !present {
		return nil
	}
	return &WireArea{Value: n}
}

// images принимает смешанный массив строк-URL и объектов.
func (r reader) images(key string) []WireImage {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		r.fail(key, "expected array")
		return nil
	}

	out := make([]WireImage, 0, len(arr))
	for i, item := range arr {
		itemKey := key + "/" + strconv.Itoa(i)
		switch t := item.(type) {
		case string:
			if !isAbsoluteURL(t) {
				r.failAt(r.path+"/"+itemKey, "invalid url")
				continue
			}
			out = append(out, WireImage{URL: t, Bare: true})
		case map[string]any:
			sub := newReader(t, r.path+"/"+itemKey, r.issues)
			url := sub.str("url")
			if url == nil || !isAbsoluteURL(*url) {
				sub.fail("url", "invalid url")
				continue
			}
			out = append(out, WireImage{
				URL:       *url,
				ID:        sub.str("id"),
				Kind:      sub.str("kind"),
				Order:     sub.num("order"),
				Alt:       sub.str("alt"),
				IsPrimary: sub.boolean("isPrimary"),
				CreatedAt: sub.datetime("createdAt"),
				UpdatedAt: sub.datetime("updatedAt"),
			})
		default:
			r.failAt(r.path+"/"+itemKey, "expected url or image object")
		}
	}
	return out
}

func (r reader) documents(key string) []domain.DocumentRef {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		r.fail(key, "expected array")
		return nil
	}

	out := make([]domain.DocumentRef, 0, len(arr))
	for i, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			r.failAt(r.path+"/"+key+"/"+strconv.Itoa(i), "expected object")
			continue
		}
		sub := newReader(obj, r.path+"/"+key+"/"+strconv.Itoa(i), r.issues)
		label, url := sub.str("label"), sub.str("url")
		if label == nil || url == nil {
			sub.fail("label", "label and url are required")
			continue
		}
		out = append(out, domain.DocumentRef{
			ID:        sub.str("id"),
			Label:     *label,
			URL:       *url,
			Kind:      sub.str("kind"),
			CreatedAt: sub.datetime("createdAt"),
			UpdatedAt: sub.datetime("updatedAt"),
		})
	}
	return out
}
