package domain

// ProductType identifies a roast family in the catalog. Pricing is keyed by
// type, not by individual product.
type ProductType string

const (
	TypePlain    ProductType = "plain"
	TypeMahwaj   ProductType = "mahwaj"
	TypeFrench   ProductType = "french"
	TypeHazelnut ProductType = "hazelnut"
)

// Product represents a product in the read-only catalog
type Product struct {
	ID            int         `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	NameLocalized string      `json:"nameLocalized" db:"name_localized"`
	Type          ProductType `json:"type" db:"type"`
	Description   string      `json:"description" db:"description"`
	ImagePath     string      `json:"imagePath" db:"image_path"`
}
