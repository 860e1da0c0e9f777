// Package formstate описывает значения формы объявления в админке
// и приводит их к снимку, который сравнивается с исходным объявлением.
package formstate

import (
	"bytes"
	"encoding/json"
	"strings"

	"listing-admin-service/internal/core/domain"
)

// CSVField - список, который редактируется одной строкой через запятую.
// Null=true означает, что список явно очищен и в снимке должен стать null.
//
// В JSON принимается строка, массив строк или null.
type CSVField struct {
	Text string
	Null bool
}

func CSV(text string) CSVField { return CSVField{Text: text} }

func (f CSVField) MarshalJSON() ([]byte, error) {
	if f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Text)
}

func (f *CSVField) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = CSVField{Null: true}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*f = CSVField{Text: text}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*f = CSVField{Text: strings.Join(list, ", ")}
	return nil
}

// PriceBreakupValues - числа nil, если поле очищено. Булевы nil, если не выбраны.
type PriceBreakupValues struct {
	BasePrice             *float64 `json:"basePrice"`
	MaintenanceMonthly    *float64 `json:"maintenanceMonthly"`
	ParkingCharges        *float64 `json:"parkingCharges"`
	ClubMembershipCharges *float64 `json:"clubMembershipCharges"`
	RegistrationCharges   *float64 `json:"registrationCharges"`
	GstPercent            *float64 `json:"gstPercent"`
	BookingAmount         *float64 `json:"bookingAmount"`
	Negotiable            *bool    `json:"negotiable"`
	AllInclusive          *bool    `json:"allInclusive"`
}

type AddressPartsValues struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	Locality string `json:"locality"`
	Landmark string `json:"landmark"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

type DocumentValues struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Kind  string `json:"kind"`
}

type BrokerValues struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

type SEOValues struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    CSVField `json:"keywords"`
}

// GeoValues - координаты, форма их не редактирует, а только сохраняет.
type GeoValues struct {
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	AccuracyMeters *float64 `json:"accuracyMeters,omitempty"`
}

// Values - значения формы объявления.
//
// Текстовые поля - строки, пустая строка значит "не заполнено".
// Числа - *float64, nil значит "не заполнено". Булевы - *bool с тремя состояниями.
// Price хранит текст поля ввода как есть и разбирается только при нормализации.
type Values struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	ExternalID string `json:"externalId"`

	Category           string `json:"category"`
	TransactionType    string `json:"transactionType"`
	Status             string `json:"status"`
	ConstructionStatus string `json:"constructionStatus"`

	Price            string   `json:"price"`
	PricePerSqft     *float64 `json:"pricePerSqft"`
	Description      string   `json:"description"`
	Subtitle         string   `json:"subtitle"`
	Highlights       CSVField `json:"highlights"`
	Ownership        string   `json:"ownership"`
	YearBuilt        *float64 `json:"yearBuilt"`
	PossessionDate   string   `json:"possessionDate"`
	MaintenanceTerms string   `json:"maintenanceTerms"`

	CarpetArea       *domain.Area `json:"carpetArea"`
	BuiltUpArea      *domain.Area `json:"builtUpArea"`
	SuperBuiltUpArea *domain.Area `json:"superBuiltUpArea"`
	LandArea         *domain.Area `json:"landArea"`

	PlotLengthFt *float64 `json:"plotLengthFt"`
	PlotWidthFt  *float64 `json:"plotWidthFt"`
	FrontageFt   *float64 `json:"frontageFt"`
	RoadWidthFt  *float64 `json:"roadWidthFt"`
	PlotFacing   string   `json:"plotFacing"`
	CornerPlot   *bool    `json:"cornerPlot"`

	Bedrooms            *float64 `json:"bedrooms"`
	Bathrooms           *float64 `json:"bathrooms"`
	Balconies           *float64 `json:"balconies"`
	Furnishing          string   `json:"furnishing"`
	FloorNumber         *float64 `json:"floorNumber"`
	TotalFloors         *float64 `json:"totalFloors"`
	HasLift             *bool    `json:"hasLift"`
	CoveredParkingCount *float64 `json:"coveredParkingCount"`
	OpenParkingCount    *float64 `json:"openParkingCount"`
	VaastuCompliant     *bool    `json:"vaastuCompliant"`
	UnitFacing          string   `json:"unitFacing"`

	PriceBreakup PriceBreakupValues `json:"priceBreakup"`

	Address      string             `json:"address"`
	AddressParts AddressPartsValues `json:"addressParts"`
	Geo          *GeoValues         `json:"geo"`

	SocietyName    string   `json:"societyName"`
	ProjectName    string   `json:"projectName"`
	ReraID         string   `json:"reraId"`
	ReraRegistered *bool    `json:"reraRegistered"`
	Amenities      CSVField `json:"amenities"`
	Tags           CSVField `json:"tags"`

	VirtualTourURL string           `json:"virtualTourUrl"`
	Documents      []DocumentValues `json:"documents"`

	ListedByType   string       `json:"listedByType"`
	ListedByName   string       `json:"listedByName"`
	ContactNumber  string       `json:"contactNumber"`
	ContactEmail   string       `json:"contactEmail"`
	WhatsAppNumber string       `json:"whatsAppNumber"`
	Verified       *bool        `json:"verified"`
	Broker         BrokerValues `json:"broker"`

	SEO        SEOValues `json:"seo"`
	IsFeatured *bool     `json:"isFeatured"`
}

// NewValues возвращает пустую форму создания объявления.
func NewValues() Values {
	return Values{
		AddressParts: AddressPartsValues{City: domain.DefaultCity},
	}
}
