package constants

// Обменник событий об объявлениях
const (
	ListingEventsExchange     = "listing_events"
	ListingEventsExchangeType = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyListingChanged = "listing.changed"
)
