package models

type PaginationAndSorting struct {
	OffsetId string
	Limit    int
	Order    SortingOrder
}

type SortingOrder string

const (
	SortingOrderAsc  SortingOrder = "ASC"
	SortingOrderDesc SortingOrder = "DESC"
)

const (
	DefaultPaginationLimit = 25
	MaxPaginationLimit     = 100
)

func WithPaginationDefaults(p PaginationAndSorting) PaginationAndSorting {
	if p.Limit <= 0 {
		p.Limit = DefaultPaginationLimit
	}
	if p.Limit > MaxPaginationLimit {
		p.Limit = MaxPaginationLimit
	}
	if p.Order == "" {
		p.Order = SortingOrderDesc
	}
	return p
}
