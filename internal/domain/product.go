package domain

import "time"

// Product is a catalog item owned by exactly one user.
type Product struct {
	ID        string
	UserID    string
	Title     string
	Material  *string
	Price     *float64
	Company   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductPatch carries an update. Title is always applied; nil optional
// fields leave the stored value untouched.
type ProductPatch struct {
	ID       string
	UserID   string
	Title    string
	Material *string
	Price    *float64
	Company  *string
}

// Apply merges the patch into p.
func (pt *ProductPatch) Apply(p *Product) {
	p.Title = pt.Title
	if pt.Material != nil {
		p.Material = pt.Material
	}
	if pt.Price != nil {
		p.Price = pt.Price
	}
	if pt.Company != nil {
		p.Company = pt.Company
	}
}
