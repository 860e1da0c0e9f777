package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SelectOption - значение справочника для выпадающих списков админки.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ListingOptions - все справочники формы объявления.
type ListingOptions struct {
	Categories         []SelectOption      `json:"categories"`
	TransactionTypes   []SelectOption      `json:"transactionTypes"`
	Statuses           []SelectOption      `json:"statuses"`
	ConstructionStatus []SelectOption      `json:"constructionStatuses"`
	Furnishing         []SelectOption      `json:"furnishing"`
	Directions         []SelectOption      `json:"directions"`
	ContactTypes       []SelectOption      `json:"contactTypes"`
	AreaUnits          []SelectOption      `json:"areaUnits"`
	CategoryGroups     map[string][]string `json:"categoryGroups"`
}

var (
	TransactionTypes = []string{"sale", "rent"}
	ListingStatuses  = []string{"draft", "available", "reserved", "under_offer", "booked", "sold", "rented", "inactive"}
	ContactTypes     = []string{"Owner", "Broker", "Builder", "Agency"}
)

// ConstructionStatuses совпадает по порядку с ConstructionStatus в справочнике.
var ConstructionStatuses = []string{"under_construction", "ready_to_move", "new_launch"}

const (
	CategoryGroupLandOnly        = "landOnly"
	CategoryGroupHybridPlot      = "hybridPlot"
	CategoryGroupResidentialUnit = "residentialUnit"
	CategoryGroupCommercial      = "commercial"
)

// titleLabel превращает "under_offer" в "Under Offer".
func titleLabel(value string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(value, "_", " "))
}

func labelled(values []string) []SelectOption {
	out := make([]SelectOption, 0, len(values))
	for _, v := range values {
		out = append(out, SelectOption{Value: v, Label: titleLabel(v)})
	}
	return out
}

func same(values ...string) []SelectOption {
	out := make([]SelectOption, 0, len(values))
	for _, v := range values {
		out = append(out, SelectOption{Value: v, Label: v})
	}
	return out
}

// DefaultListingOptions возвращает справочники формы.
func DefaultListingOptions() ListingOptions {
	units := make([]string, 0, len(AreaUnits))
	for _, u := range AreaUnits {
		units = append(units, string(u))
	}

	return ListingOptions{
		Categories: same(
			"Plot", "Farm Land", "Independent House", "Flat (Housing Complex)", "Flat (Society)",
			"Villa", "Row House", "Commercial Space", "Shop", "Office", "Other",
		),
		TransactionTypes: labelled(TransactionTypes),
		Statuses:         labelled(ListingStatuses),
		ConstructionStatus: []SelectOption{
			{Value: ConstructionStatuses[0], Label: "Under Construction"},
			{Value: ConstructionStatuses[1], Label: "Ready to Move"},
			{Value: ConstructionStatuses[2], Label: "New Launch"},
		},
		Furnishing: []SelectOption{
			{Value: "fully", Label: "Fully Furnished"},
			{Value: "semi", Label: "Semi Furnished"},
			{Value: "unfurnished", Label: "Unfurnished"},
		},
		Directions:   same("North", "North-East", "East", "South-East", "South", "South-West", "West", "North-West"),
		ContactTypes: same(ContactTypes...),
		AreaUnits:    same(units...),
		CategoryGroups: map[string][]string{
			CategoryGroupLandOnly:        {"Plot", "Farm Land"},
			CategoryGroupHybridPlot:      {"Independent House", "Villa", "Row House"},
			CategoryGroupResidentialUnit: {"Independent House", "Flat (Housing Complex)", "Flat (Society)", "Villa", "Row House"},
			CategoryGroupCommercial:      {"Commercial Space", "Shop", "Office", "Other"},
		},
	}
}
