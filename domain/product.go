package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     product_id      TEXT PRIMARY KEY,
//     name            TEXT NOT NULL,
//     price           NUMERIC,
//     category        TEXT,
//     description     TEXT,
//     store           TEXT,
//     brand           TEXT,
//     rating          NUMERIC,
//     reviews_count   INTEGER,
//     eco_certified   BOOLEAN,
//     in_stock        BOOLEAN,
//     specs           JSONB,
//     image_url       TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID           string            `gorm:"primaryKey;column:product_id" json:"id"`
	Name         string            `gorm:"column:name;type:text;not null" json:"name"`
	Price        float64           `gorm:"column:price;type:numeric" json:"price"`
	Category     string            `gorm:"column:category;type:text" json:"category"`
	Description  string            `gorm:"column:description;type:text" json:"description"`
	Store        string            `gorm:"column:store;type:text" json:"store"`
	Brand        string            `gorm:"column:brand;type:text" json:"brand,omitempty"`
	Rating       float64           `gorm:"column:rating;type:numeric" json:"rating"`
	ReviewsCount int               `gorm:"column:reviews_count" json:"reviews_count"`
	EcoCertified bool              `gorm:"column:eco_certified;default:false" json:"eco_certified"`
	InStock      bool              `gorm:"column:in_stock;default:true" json:"in_stock"`
	Specs        datatypes.JSONMap `gorm:"column:specs;type:jsonb" json:"specs"`
	ImageURL     string            `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
