package models

// Pizza represents a catalog pizza and its resolved topping set
type Pizza struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	// Toppings is filled by an explicit join over pizza_topping, never by gorm
	Toppings []Topping `gorm:"-" json:"toppings"`
}

func (Pizza) TableName() string {
	return "pizza"
}

// ToppingIDs returns the ids of the resolved toppings
func (p Pizza) ToppingIDs() []uint {
	ids := make([]uint, 0, len(p.Toppings))
	for _, t := range p.Toppings {
		ids = append(ids, t.ID)
	}
	return ids
}
