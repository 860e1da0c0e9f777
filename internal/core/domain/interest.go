package domain

// InterestRequest - заявка посетителя на объявление.
type InterestRequest struct {
	ListingID string  `json:"listingId"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Message   *string `json:"message,omitempty"`
}

type Interest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email"`
	Message   *string `json:"message"`
	CreatedAt *string `json:"createdAt"`
}

type InterestPagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

type InterestPage struct {
	Items      []Interest         `json:"items"`
	Pagination InterestPagination `json:"pagination"`
}
