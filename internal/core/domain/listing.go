package domain

// AreaUnit - единица измерения площади.
type AreaUnit string

const (
	AreaUnitSqft    AreaUnit = "sqft"
	AreaUnitSqyd    AreaUnit = "sqyd"
	AreaUnitSqm     AreaUnit = "sqm"
	AreaUnitAcre    AreaUnit = "acre"
	AreaUnitHectare AreaUnit = "hectare"
	AreaUnitDecimal AreaUnit = "decimal"
	AreaUnitBiswa   AreaUnit = "biswa"
	AreaUnitGuntha  AreaUnit = "guntha"
)

// AreaUnits перечисляет все допустимые единицы в порядке показа.
var AreaUnits = []AreaUnit{
	AreaUnitSqft, AreaUnitSqyd, AreaUnitSqm, AreaUnitAcre,
	AreaUnitHectare, AreaUnitDecimal, AreaUnitBiswa, AreaUnitGuntha,
}

// IsValid сообщает, известна ли единица.
func (u AreaUnit) IsValid() bool {
	for _, known := range AreaUnits {
		if u == known {
			return true
		}
	}
	return false
}

const (
	DefaultCity  = "Puri"
	DefaultState = "Odisha"
)

// Area - площадь, всегда в виде пары {value, unit}.
type Area struct {
	Value float64  `json:"value"`
	Unit  AreaUnit `json:"unit"`
}

// Media - изображение объявления. Не более одного элемента списка имеет IsPrimary.
type Media struct {
	ID        *string  `json:"id,omitempty"`
	URL       string   `json:"url"`
	Kind      *string  `json:"kind,omitempty"`
	Order     *float64 `json:"order,omitempty"`
	Alt       *string  `json:"alt,omitempty"`
	IsPrimary bool     `json:"isPrimary"`
	CreatedAt *string  `json:"createdAt,omitempty"`
	UpdatedAt *string  `json:"updatedAt,omitempty"`
}

type DocumentRef struct {
	ID        *string `json:"id,omitempty"`
	Label     string  `json:"label"`
	URL       string  `json:"url"`
	Kind      *string `json:"kind,omitempty"`
	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type PriceBreakup struct {
	BasePrice             *float64 `json:"basePrice,omitempty"`
	MaintenanceMonthly    *float64 `json:"maintenanceMonthly,omitempty"`
	ParkingCharges        *float64 `json:"parkingCharges,omitempty"`
	ClubMembershipCharges *float64 `json:"clubMembershipCharges,omitempty"`
	RegistrationCharges   *float64 `json:"registrationCharges,omitempty"`
	GstPercent            *float64 `json:"gstPercent,omitempty"`
	BookingAmount         *float64 `json:"bookingAmount,omitempty"`
	Negotiable            *bool    `json:"negotiable,omitempty"`
	AllInclusive          *bool    `json:"allInclusive,omitempty"`
}

// AddressParts - структурированный адрес. City и State заполнены всегда.
type AddressParts struct {
	Line1    *string `json:"line1,omitempty"`
	Line2    *string `json:"line2,omitempty"`
	Locality *string `json:"locality,omitempty"`
	Landmark *string `json:"landmark,omitempty"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Pincode  *string `json:"pincode,omitempty"`
}

// Geo - координаты объекта. Hash вычисляется при маппинге и наружу не отдается.
type Geo struct {
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	AccuracyMeters *float64 `json:"accuracyMeters,omitempty"`
	Hash           string   `json:"-"`
}

type Broker struct {
	ID    *string `json:"id,omitempty"`
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	Type  *string `json:"type,omitempty"`
}

type SEO struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

type Analytics struct {
	Views     *float64 `json:"views,omitempty"`
	Saves     *float64 `json:"saves,omitempty"`
	Inquiries *float64 `json:"inquiries,omitempty"`
}

// Listing - каноническое объявление о недвижимости.
// nil у указателя означает "не задано"; такие поля никогда не приводятся к нулевым значениям.
type Listing struct {
	ID         string  `json:"id"`
	Slug       *string `json:"slug,omitempty"`
	ExternalID *string `json:"externalId,omitempty"`

	Category           *string `json:"category,omitempty"`
	TransactionType    *string `json:"transactionType,omitempty"`
	Status             *string `json:"status,omitempty"`
	ConstructionStatus *string `json:"constructionStatus,omitempty"`

	Title          string   `json:"title"`
	Subtitle       *string  `json:"subtitle,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Highlights     []string `json:"highlights,omitempty"`
	Ownership      *string  `json:"ownership,omitempty"`
	YearBuilt      *float64 `json:"yearBuilt,omitempty"`
	PossessionDate *string  `json:"possessionDate,omitempty"`

	CarpetArea       *Area `json:"carpetArea,omitempty"`
	BuiltUpArea      *Area `json:"builtUpArea,omitempty"`
	SuperBuiltUpArea *Area `json:"superBuiltUpArea,omitempty"`
	LandArea         *Area `json:"landArea,omitempty"`

	PlotLengthFt *float64 `json:"plotLengthFt,omitempty"`
	PlotWidthFt  *float64 `json:"plotWidthFt,omitempty"`
	FrontageFt   *float64 `json:"frontageFt,omitempty"`
	RoadWidthFt  *float64 `json:"roadWidthFt,omitempty"`
	PlotFacing   *string  `json:"plotFacing,omitempty"`
	CornerPlot   *bool    `json:"cornerPlot,omitempty"`

	Bedrooms            *float64 `json:"bedrooms,omitempty"`
	Bathrooms           *float64 `json:"bathrooms,omitempty"`
	Balconies           *float64 `json:"balconies,omitempty"`
	Furnishing          *string  `json:"furnishing,omitempty"`
	FloorNumber         *float64 `json:"floorNumber,omitempty"`
	TotalFloors         *float64 `json:"totalFloors,omitempty"`
	HasLift             *bool    `json:"hasLift,omitempty"`
	CoveredParkingCount *float64 `json:"coveredParkingCount,omitempty"`
	OpenParkingCount    *float64 `json:"openParkingCount,omitempty"`
	VaastuCompliant     *bool    `json:"vaastuCompliant,omitempty"`
	UnitFacing          *string  `json:"unitFacing,omitempty"`

	Price            float64       `json:"price"`
	PricePerSqft     *float64      `json:"pricePerSqft,omitempty"`
	PriceBreakup     *PriceBreakup `json:"priceBreakup,omitempty"`
	MaintenanceTerms *string       `json:"maintenanceTerms,omitempty"`

	Address      *string      `json:"address,omitempty"`
	AddressParts AddressParts `json:"addressParts"`
	Geo          *Geo         `json:"geo,omitempty"`

	SocietyName    *string  `json:"societyName,omitempty"`
	ProjectName    *string  `json:"projectName,omitempty"`
	ReraID         *string  `json:"reraId,omitempty"`
	ReraRegistered *bool    `json:"reraRegistered,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
	Tags           []string `json:"tags,omitempty"`

	Images         []Media       `json:"images,omitempty"`
	VideoURLs      []string      `json:"videoUrls,omitempty"`
	VirtualTourURL *string       `json:"virtualTourUrl,omitempty"`
	Documents      []DocumentRef `json:"documents,omitempty"`

	ListedByType   *string `json:"listedByType,omitempty"`
	ListedByName   *string `json:"listedByName,omitempty"`
	ContactNumber  *string `json:"contactNumber,omitempty"`
	ContactEmail   *string `json:"contactEmail,omitempty"`
	WhatsAppNumber *string `json:"whatsAppNumber,omitempty"`
	Verified       *bool   `json:"verified,omitempty"`
	Broker         *Broker `json:"broker,omitempty"`

	IsFeatured  *bool      `json:"isFeatured,omitempty"`
	FeaturedAt  *string    `json:"featuredAt,omitempty"`
	PublishedAt *string    `json:"publishedAt,omitempty"`
	PostedAt    *string    `json:"postedAt,omitempty"`
	ArchivedAt  *string    `json:"archivedAt,omitempty"`
	CreatedAt   *string    `json:"createdAt,omitempty"`
	UpdatedAt   *string    `json:"updatedAt,omitempty"`
	SEO         *SEO       `json:"seo,omitempty"`
	Analytics   *Analytics `json:"analytics,omitempty"`

	// Extra - поля апстрима, которых нет в модели. Клиентам не отдаются,
	// но возвращаются апстриму в ToWire.
	Extra map[string]any `json:"-"`
}

// PrimaryImage возвращает главное изображение или nil для пустого списка.
func (l *Listing) PrimaryImage() *Media {
	for i := range l.Images {
		if l.Images[i].IsPrimary {
			return &l.Images[i]
		}
	}
	if len(l.Images) > 0 {
		return &l.Images[0]
	}
	return nil
}

// ListingPage - страница результатов поиска.
type ListingPage struct {
	Items []Listing `json:"items"`
	Total int       `json:"total"`
}

// ListingQuery - параметры поиска, передаются апстриму как есть.
type ListingQuery struct {
	City               string
	Q                  string
	Sort               string
	Page               *int
	PerPage            *int
	MinPrice           *float64
	MaxPrice           *float64
	Bedrooms           *int
	BHK                *int
	Furnishing         string
	ConstructionStatus string
	Category           string
	Status             string
}
