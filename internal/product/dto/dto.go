package dto

type ProductFilters struct {
	SearchQuery string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

type MovementFilters struct {
	ProductID    string
	MovementType string
	Page         int
	PageSize     int
}
