package repository

// Pagination 分页参数
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize 返回规范化后的分页参数
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// Offset 返回 SQL 偏移量
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ProductListFilter 商品列表查询条件
type ProductListFilter struct {
	CategoryID uint
	BrandID    uint
	Keyword    string
	OnSaleOnly bool
	ActiveOnly bool
	Pagination Pagination
}

// OrderListFilter 订单列表查询条件（管理端）
type OrderListFilter struct {
	UserID        uint
	Status        string
	PaymentStatus string
	OrderNo       string
	Pagination    Pagination
}
