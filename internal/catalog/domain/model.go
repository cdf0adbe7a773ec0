package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MealPeriod tags when an item is usually eaten.
type MealPeriod int16

const (
	MealBreakfast MealPeriod = 1
	MealLunch     MealPeriod = 2
	MealDinner    MealPeriod = 3
	MealLateNight MealPeriod = 4
)

func (m MealPeriod) Valid() bool {
	return m >= MealBreakfast && m <= MealLateNight
}

func (m MealPeriod) String() string {
	switch m {
	case MealBreakfast:
		return "breakfast"
	case MealLunch:
		return "lunch"
	case MealDinner:
		return "dinner"
	case MealLateNight:
		return "late_night"
	default:
		return "unknown"
	}
}

// Label is the display name shown to diners.
func (m MealPeriod) Label() string {
	switch m {
	case MealBreakfast:
		return "早餐"
	case MealLunch:
		return "午餐"
	case MealDinner:
		return "晚餐"
	case MealLateNight:
		return "夜宵"
	default:
		return ""
	}
}

// Food is one drawable catalog entry. The catalog is maintained outside
// this service; rows are only read here.
type Food struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string       `json:"name" gorm:"type:varchar(100);not null"`
	Category    string       `json:"category" gorm:"type:varchar(50);not null;index:ix_foods_category"`
	MealType    *MealPeriod  `json:"meal_type" gorm:"column:meal_type;type:smallint;index:ix_foods_meal_type"`
	Description *string      `json:"description" gorm:"type:text"`
	PriceCents  *int64       `json:"price_cents" gorm:"column:price_cents"`
	ImageURL    *string      `json:"image_url" gorm:"column:image_url;type:varchar(500)"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Food) TableName() string { return "foods" }

// Snapshot freezes the displayable fields of an item at draw time so history
// keeps rendering after the catalog row changes or disappears.
type Snapshot struct {
	ID          snowflake.ID `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	MealType    *MealPeriod  `json:"meal_type,omitempty"`
	Description *string      `json:"description,omitempty"`
	PriceCents  *int64       `json:"price_cents,omitempty"`
	ImageURL    *string      `json:"image_url,omitempty"`
}

func (f Food) Snapshot() Snapshot {
	return Snapshot{
		ID:          f.ID,
		Name:        f.Name,
		Category:    f.Category,
		MealType:    f.MealType,
		Description: f.Description,
		PriceCents:  f.PriceCents,
		ImageURL:    f.ImageURL,
	}
}

// Response is the public representation of an item.
type Response struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	MealType     *MealPeriod `json:"meal_type"`
	MealTypeName string      `json:"meal_type_name,omitempty"`
	Description  *string     `json:"description"`
	Price        *string     `json:"price"`
	ImageURL     *string     `json:"image_url"`
}

func (s Snapshot) Response() Response {
	resp := Response{
		ID:          s.ID.String(),
		Name:        s.Name,
		Category:    s.Category,
		MealType:    s.MealType,
		Description: s.Description,
		ImageURL:    s.ImageURL,
	}
	if s.MealType != nil {
		resp.MealTypeName = s.MealType.Label()
	}
	if s.PriceCents != nil {
		price := FormatPrice(*s.PriceCents)
		resp.Price = &price
	}
	return resp
}

func (f Food) Response() Response {
	return f.Snapshot().Response()
}

// Category summarizes one catalog tag.
type Category struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int64  `json:"count"`
}
