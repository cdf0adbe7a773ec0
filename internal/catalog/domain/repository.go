package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, food *Food) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Food, error)
	FindEligible(ctx context.Context, db *gorm.DB, filter Filter) ([]Food, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]Category, error)
}
