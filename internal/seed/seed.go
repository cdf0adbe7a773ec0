package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/whateat/internal/auth/domain"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"gorm.io/gorm"
)

const demoUsername = "demo"

type sampleFood struct {
	name        string
	category    string
	meal        catalogdomain.MealPeriod
	price       string
	description string
	imageSeed   string
}

var sampleFoods = []sampleFood{
	{"豆浆油条", "早餐", catalogdomain.MealBreakfast, "8.00", "现磨豆浆配金黄酥脆的油条", "doujiang"},
	{"小笼包", "早餐", catalogdomain.MealBreakfast, "15.00", "皮薄馅大，一口爆汁", "xiaolongbao"},
	{"煎饼果子", "小吃", catalogdomain.MealBreakfast, "10.00", "薄脆加蛋，酱香浓郁", "jianbing"},
	{"红烧肉", "中餐", catalogdomain.MealLunch, "38.00", "肥而不腻，入口即化", "hongshaorou"},
	{"宫保鸡丁", "川菜", catalogdomain.MealLunch, "28.00", "鸡丁嫩滑，花生香脆", "gongbaojiding"},
	{"兰州拉面", "面食", catalogdomain.MealLunch, "18.00", "一清二白三红四绿", "lamian"},
	{"黄焖鸡米饭", "快餐", catalogdomain.MealLunch, "22.00", "鸡肉鲜嫩，汤汁拌饭", "huangmenji"},
	{"麻辣香锅", "川菜", catalogdomain.MealDinner, "45.00", "麻辣鲜香，食材随心选", "xiangguo"},
	{"寿司拼盘", "日料", catalogdomain.MealDinner, "68.00", "新鲜刺身与手握寿司", "sushi"},
	{"韩式烤肉", "韩餐", catalogdomain.MealDinner, "88.00", "炭火现烤，生菜包肉", "kaorou"},
	{"水煮鱼", "川菜", catalogdomain.MealDinner, "58.00", "鱼片滑嫩，红油飘香", "shuizhuyu"},
	{"烧烤串串", "烧烤", catalogdomain.MealLateNight, "35.00", "深夜撸串，快乐加倍", "shaokao"},
	{"小龙虾", "夜宵", catalogdomain.MealLateNight, "98.00", "十三香口味，越吃越香", "xiaolongxia"},
	{"螺蛳粉", "小吃", catalogdomain.MealLateNight, "16.00", "闻着臭吃着香", "luosifen"},
}

// EnsureSampleFoods fills an empty catalog with a small demo menu. It returns
// the number of inserted rows and leaves a non-empty catalog untouched.
func EnsureSampleFoods(db *gorm.DB, node *snowflake.Node) (int, error) {
	if db == nil {
		return 0, errors.New("seed database handle is required")
	}
	if node == nil {
		return 0, errors.New("seed id generator is required")
	}

	ctx := context.Background()
	inserted := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.Food{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		foods := make([]catalogdomain.Food, 0, len(sampleFoods))
		for _, s := range sampleFoods {
			cents, err := catalogdomain.ParsePrice(s.price)
			if err != nil {
				return fmt.Errorf("sample %s: %w", s.name, err)
			}
			meal := s.meal
			description := s.description
			image := fmt.Sprintf("https://picsum.photos/seed/%s/400/300", s.imageSeed)
			foods = append(foods, catalogdomain.Food{
				ID:          node.Generate(),
				Name:        s.name,
				Category:    s.category,
				MealType:    &meal,
				Description: &description,
				PriceCents:  &cents,
				ImageURL:    &image,
				CreatedAt:   now,
			})
		}
		if err := tx.Create(&foods).Error; err != nil {
			return err
		}
		inserted = len(foods)
		return nil
	})
	return inserted, err
}

// EnsureDemoUser creates the local "demo" account if missing.
func EnsureDemoUser(db *gorm.DB, node *snowflake.Node) (authdomain.User, error) {
	if db == nil {
		return authdomain.User{}, errors.New("seed database handle is required")
	}

	ctx := context.Background()
	var user authdomain.User
	err := db.WithContext(ctx).Where("username = ?", demoUsername).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return authdomain.User{}, err
	}

	username := demoUsername
	nickname := "吃货"
	now := time.Now().UTC()
	user = authdomain.User{
		ID:        node.Generate(),
		Username:  &username,
		Nickname:  &nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return authdomain.User{}, err
	}
	return user, nil
}
