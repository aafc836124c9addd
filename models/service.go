package models

// Service is a catalog entry shown on the public website. Display metadata
// only; ids are client-assigned via the cache's NextID.
type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(120);not null" json:"name"`
	Icon        string `gorm:"type:varchar(8)" json:"icon"`
	Price       string `gorm:"type:varchar(60)" json:"price"`
	Description string `gorm:"type:text" json:"description"`
	Color       string `gorm:"type:varchar(10)" json:"color"`
	CreatedAt   string `gorm:"type:varchar(30)" json:"created_at"`
}

func (s *Service) GetID() uint   { return s.ID }
func (s *Service) SetID(id uint) { s.ID = id }
