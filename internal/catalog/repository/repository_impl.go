package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"gorm.io/gorm"
)

const foodColumns = `id, name, category, meal_type, description, price_cents, image_url, created_at`

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, f *catalogdomain.Food) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO foods (`+foodColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID,
		f.Name,
		f.Category,
		f.MealType,
		f.Description,
		f.PriceCents,
		f.ImageURL,
		f.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Food, error) {
	var food catalogdomain.Food
	err := db.WithContext(ctx).Raw(
		`SELECT `+foodColumns+` FROM foods WHERE id = ?`,
		id,
	).Scan(&food).Error
	if err != nil {
		return nil, err
	}
	if food.ID == 0 {
		return nil, nil
	}
	return &food, nil
}

// FindEligible returns the complete matching set ordered by id.
func (r *repo) FindEligible(ctx context.Context, db *gorm.DB, filter catalogdomain.Filter) ([]catalogdomain.Food, error) {
	filter = filter.Normalize()

	var (
		clauses []string
		args    []any
	)
	if filter.MealPeriod != nil {
		clauses = append(clauses, "meal_type = ?")
		args = append(args, int16(*filter.MealPeriod))
	}
	if filter.HasPriceBound() {
		clauses = append(clauses, "price_cents IS NOT NULL")
	}
	if filter.MinPriceCents != nil {
		clauses = append(clauses, "price_cents >= ?")
		args = append(args, *filter.MinPriceCents)
	}
	if filter.MaxPriceCents != nil {
		clauses = append(clauses, "price_cents <= ?")
		args = append(args, *filter.MaxPriceCents)
	}
	if filter.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, *filter.Category)
	}

	query := `SELECT ` + foodColumns + ` FROM foods`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY id ASC`

	var foods []catalogdomain.Food
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]catalogdomain.Category, error) {
	var rows []struct {
		Category string
		Total    int64
	}
	err := db.WithContext(ctx).Raw(
		`SELECT category, COUNT(*) AS total FROM foods GROUP BY category ORDER BY category ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]catalogdomain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, catalogdomain.Category{
			Name:  row.Category,
			Slug:  slug.Make(row.Category),
			Count: row.Total,
		})
	}
	return categories, nil
}
