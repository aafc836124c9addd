package models

// PortfolioItem is a showcase tile on the public website. Display metadata
// only; ids are client-assigned via the cache's NextID.
type PortfolioItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"type:varchar(120);not null" json:"title"`
	Icon      string `gorm:"type:varchar(8)" json:"icon"`
	Color1    string `gorm:"type:varchar(10)" json:"color1"`
	Color2    string `gorm:"type:varchar(10)" json:"color2"`
	CreatedAt string `gorm:"type:varchar(30)" json:"created_at"`
}

func (p *PortfolioItem) GetID() uint   { return p.ID }
func (p *PortfolioItem) SetID(id uint) { p.ID = id }
