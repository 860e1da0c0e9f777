package formstate

import (
	"strconv"
	"strings"

	"listing-admin-service/internal/core/domain"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func copyFloat(n *float64) *float64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func copyArea(a *domain.Area) *domain.Area {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}

func joinCSV(values []string) CSVField {
	return CSVField{Text: strings.Join(values, ", ")}
}

// FromListing заполняет форму редактирования по сохраненному объявлению.
// Незаданный город в адресе заменяется значением по умолчанию.
func FromListing(l domain.Listing) Values {
	v := Values{
		Title:      l.Title,
		Slug:       deref(l.Slug),
		ExternalID: deref(l.ExternalID),

		Category:           deref(l.Category),
		TransactionType:    deref(l.TransactionType),
		Status:             deref(l.Status),
		ConstructionStatus: deref(l.ConstructionStatus),

		Price:            strconv.FormatFloat(l.Price, 'f', -1, 64),
		PricePerSqft:     copyFloat(l.PricePerSqft),
		Description:      deref(l.Description),
		Subtitle:         deref(l.Subtitle),
		Highlights:       joinCSV(l.Highlights),
		Ownership:        deref(l.Ownership),
		YearBuilt:        copyFloat(l.YearBuilt),
		PossessionDate:   deref(l.PossessionDate),
		MaintenanceTerms: deref(l.MaintenanceTerms),

		CarpetArea:       copyArea(l.CarpetArea),
		BuiltUpArea:      copyArea(l.BuiltUpArea),
		SuperBuiltUpArea: copyArea(l.SuperBuiltUpArea),
		LandArea:         copyArea(l.LandArea),

		PlotLengthFt: copyFloat(l.PlotLengthFt),
		PlotWidthFt:  copyFloat(l.PlotWidthFt),
		FrontageFt:   copyFloat(l.FrontageFt),
		RoadWidthFt:  copyFloat(l.RoadWidthFt),
		PlotFacing:   deref(l.PlotFacing),
		CornerPlot:   copyBool(l.CornerPlot),

		Bedrooms:            copyFloat(l.Bedrooms),
		Bathrooms:           copyFloat(l.Bathrooms),
		Balconies:           copyFloat(l.Balconies),
		Furnishing:          deref(l.Furnishing),
		FloorNumber:         copyFloat(l.FloorNumber),
		TotalFloors:         copyFloat(l.TotalFloors),
		HasLift:             copyBool(l.HasLift),
		CoveredParkingCount: copyFloat(l.CoveredParkingCount),
		OpenParkingCount:    copyFloat(l.OpenParkingCount),
		VaastuCompliant:     copyBool(l.VaastuCompliant),
		UnitFacing:          deref(l.UnitFacing),

		Address: deref(l.Address),
		AddressParts: AddressPartsValues{
			Line1:    deref(l.AddressParts.Line1),
			Line2:    deref(l.AddressParts.Line2),
			Locality: deref(l.AddressParts.Locality),
			Landmark: deref(l.AddressParts.Landmark),
			City:     l.AddressParts.City,
			State:    l.AddressParts.State,
			Pincode:  deref(l.AddressParts.Pincode),
		},

		SocietyName:    deref(l.SocietyName),
		ProjectName:    deref(l.ProjectName),
		ReraID:         deref(l.ReraID),
		ReraRegistered: copyBool(l.ReraRegistered),
		Amenities:      joinCSV(l.Amenities),
		Tags:           joinCSV(l.Tags),

		VirtualTourURL: deref(l.VirtualTourURL),

		ListedByType:   deref(l.ListedByType),
		ListedByName:   deref(l.ListedByName),
		ContactNumber:  deref(l.ContactNumber),
		ContactEmail:   deref(l.ContactEmail),
		WhatsAppNumber: deref(l.WhatsAppNumber),
		Verified:       copyBool(l.Verified),

		IsFeatured: copyBool(l.IsFeatured),
	}

	if v.AddressParts.City == "" {
		v.AddressParts.City = domain.DefaultCity
	}

	if pb := l.PriceBreakup; pb != nil {
		v.PriceBreakup = PriceBreakupValues{
			BasePrice:             copyFloat(pb.BasePrice),
			MaintenanceMonthly:    copyFloat(pb.MaintenanceMonthly),
			ParkingCharges:        copyFloat(pb.ParkingCharges),
			ClubMembershipCharges: copyFloat(pb.ClubMembershipCharges),
			RegistrationCharges:   copyFloat(pb.RegistrationCharges),
			GstPercent:            copyFloat(pb.GstPercent),
			BookingAmount:         copyFloat(pb.BookingAmount),
			Negotiable:            copyBool(pb.Negotiable),
			AllInclusive:          copyBool(pb.AllInclusive),
		}
	}

	if l.Geo != nil {
		v.Geo = &GeoValues{Lat: l.Geo.Lat, Lng: l.Geo.Lng, AccuracyMeters: copyFloat(l.Geo.AccuracyMeters)}
	}

	for _, d := range l.Documents {
		v.Documents = append(v.Documents, DocumentValues{Label: d.Label, URL: d.URL, Kind: deref(d.Kind)})
	}

	if l.Broker != nil {
		v.Broker = BrokerValues{
			ID:    deref(l.Broker.ID),
			Name:  deref(l.Broker.Name),
			Phone: deref(l.Broker.Phone),
			Email: deref(l.Broker.Email),
			Type:  deref(l.Broker.Type),
		}
	}

	if l.SEO != nil {
		v.SEO = SEOValues{
			Title:       deref(l.SEO.Title),
			Description: deref(l.SEO.Description),
			Keywords:    joinCSV(l.SEO.Keywords),
		}
	}

	return v
}
