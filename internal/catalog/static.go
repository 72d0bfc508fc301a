package catalog

import (
	"context"
	"fmt"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/locale"
	"github.com/shopspring/decimal"
)

// StaticSource serves the built-in catalogs. Every call builds a fresh
// list so a page can never observe another page's copy.
type StaticSource struct{}

func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

func (StaticSource) Products(_ context.Context, loc locale.Locale) ([]domain.Product, error) {
	switch loc.Code {
	case locale.English.Code:
		return englishCatalog(), nil
	case locale.Chinese.Code:
		return chineseCatalog(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrLocaleNotFound, loc.Code)
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func englishCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:                 1,
			Name:               "Premium Wireless Headphones",
			Price:              price("299.99"),
			Currency:           "USD",
			Image:              "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop",
			Description:        "High-quality wireless headphones with noise cancellation and premium sound quality.",
			Category:           "Electronics",
			Rating:             4.8,
			ReviewsCount:       1247,
			InStock:            true,
			DiscountPercentage: 15,
			OriginalPrice:      price("349.99"),
			Tags:               []string{"wireless", "noise-cancelling", "premium"},
		},
		{
			ID:                 2,
			Name:               "Organic Coffee Beans",
			Price:              price("24.99"),
			Currency:           "USD",
			Image:              "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=400&h=400&fit=crop",
			Description:        "Premium organic coffee beans sourced from sustainable farms.",
			Category:           "Food & Beverage",
			Rating:             4.6,
			ReviewsCount:       892,
			InStock:            true,
			DiscountPercentage: 0,
			OriginalPrice:      price("24.99"),
			Tags:               []string{"organic", "fair-trade", "premium"},
		},
		{
			ID:                 3,
			Name:               "Smart Fitness Watch",
			Price:              price("199.99"),
			Currency:           "USD",
			Image:              "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop",
			Description:        "Advanced fitness tracking with heart rate monitoring and GPS.",
			Category:           "Electronics",
			Rating:             4.7,
			ReviewsCount:       2156,
			InStock:            true,
			DiscountPercentage: 20,
			OriginalPrice:      price("249.99"),
			Tags:               []string{"fitness", "smart", "waterproof"},
		},
		{
			ID:                 4,
			Name:               "Handcrafted Leather Wallet",
			Price:              price("89.99"),
			Currency:           "USD",
			Image:              "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=400&fit=crop",
			Description:        "Genuine leather wallet with RFID protection and multiple card slots.",
			Category:           "Accessories",
			Rating:             4.9,
			ReviewsCount:       567,
			InStock:            true,
			DiscountPercentage: 10,
			OriginalPrice:      price("99.99"),
			Tags:               []string{"leather", "handcrafted", "rfid-protection"},
		},
		{
			ID:                 5,
			Name:               "Eco-Friendly Water Bottle",
			Price:              price("34.99"),
			Currency:           "USD",
			Image:              "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=400&h=400&fit=crop",
			Description:        "Sustainable stainless steel water bottle that keeps drinks cold for 24 hours.",
			Category:           "Lifestyle",
			Rating:             4.5,
			ReviewsCount:       1089,
			InStock:            false,
			DiscountPercentage: 0,
			OriginalPrice:      price("34.99"),
			Tags:               []string{"eco-friendly", "stainless-steel", "insulated"},
		},
		{
			ID:                 6,
			Name:               "Wireless Charging Pad",
			Price:              price("49.99"),
			Currency:           "USD",
			Image:              "https://images.unsplash.com/photo-1586953208448-b95a79798f07?w=400&h=400&fit=crop",
			Description:        "Fast wireless charging pad compatible with all Qi-enabled devices.",
			Category:           "Electronics",
			Rating:             4.4,
			ReviewsCount:       743,
			InStock:            true,
			DiscountPercentage: 25,
			OriginalPrice:      price("66.99"),
			Tags:               []string{"wireless", "fast-charging", "qi-compatible"},
		},
	}
}

func chineseCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:                 1,
			Name:               "高级无线耳机",
			Price:              price("2199.00"),
			Currency:           "CNY",
			Image:              "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop",
			Description:        "高品质无线耳机，支持主动降噪，音质出众。",
			Category:           "电子产品",
			Rating:             4.8,
			ReviewsCount:       1247,
			InStock:            true,
			DiscountPercentage: 15,
			OriginalPrice:      price("2599.00"),
			Tags:               []string{"无线", "降噪", "高端"},
		},
		{
			ID:                 2,
			Name:               "有机咖啡豆",
			Price:              price("168.50"),
			Currency:           "CNY",
			Image:              "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=400&h=400&fit=crop",
			Description:        "来自可持续农场的优质有机咖啡豆。",
			Category:           "食品饮料",
			Rating:             4.6,
			ReviewsCount:       892,
			InStock:            true,
			DiscountPercentage: 0,
			OriginalPrice:      price("168.50"),
			Tags:               []string{"有机", "公平贸易", "高端"},
		},
		{
			ID:                 3,
			Name:               "智能健身手表",
			Price:              price("1399.00"),
			Currency:           "CNY",
			Image:              "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop",
			Description:        "专业运动追踪，支持心率监测与GPS定位。",
			Category:           "电子产品",
			Rating:             4.7,
			ReviewsCount:       2156,
			InStock:            true,
			DiscountPercentage: 20,
			OriginalPrice:      price("1749.00"),
			Tags:               []string{"健身", "智能", "防水"},
		},
		{
			ID:                 4,
			Name:               "手工真皮钱包",
			Price:              price("629.90"),
			Currency:           "CNY",
			Image:              "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=400&fit=crop",
			Description:        "头层真皮钱包，带RFID防盗刷保护与多个卡位。",
			Category:           "配饰",
			Rating:             4.9,
			ReviewsCount:       567,
			InStock:            true,
			DiscountPercentage: 10,
			OriginalPrice:      price("699.90"),
			Tags:               []string{"真皮", "手工", "RFID防护"},
		},
		{
			ID:                 5,
			Name:               "环保保温水杯",
			Price:              price("239.00"),
			Currency:           "CNY",
			Image:              "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=400&h=400&fit=crop",
			Description:        "可持续不锈钢水杯，冷饮保冷长达24小时。",
			Category:           "生活方式",
			Rating:             4.5,
			ReviewsCount:       1089,
			InStock:            false,
			DiscountPercentage: 0,
			OriginalPrice:      price("239.00"),
			Tags:               []string{"环保", "不锈钢", "保温"},
		},
		{
			ID:                 6,
			Name:               "无线充电板",
			Price:              price("349.00"),
			Currency:           "CNY",
			Image:              "https://images.unsplash.com/photo-1586953208448-b95a79798f07?w=400&h=400&fit=crop",
			Description:        "快速无线充电板，兼容所有支持Qi协议的设备。",
			Category:           "电子产品",
			Rating:             4.4,
			ReviewsCount:       743,
			InStock:            true,
			DiscountPercentage: 25,
			OriginalPrice:      price("465.00"),
			Tags:               []string{"无线", "快充", "Qi兼容"},
		},
	}
}
