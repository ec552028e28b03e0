package wardrobe

// Category - 의상 대분류
type Category string

const (
	CategoryTops        Category = "Tops"
	CategoryBottoms     Category = "Bottoms"
	CategoryOuterwear   Category = "Outerwear"
	CategoryDresses     Category = "Dresses"
	CategoryAccessories Category = "Accessories"
	CategoryLooks       Category = "Looks" // 생성/수정 룩에서 추가된 아이템
)

// Subcategory - 액세서리 소분류
type Subcategory string

const (
	SubcategoryHats    Subcategory = "Hats"
	SubcategoryGlasses Subcategory = "Glasses"
	SubcategoryBags    Subcategory = "Bags"
	SubcategoryJewelry Subcategory = "Jewelry"
	SubcategoryBelts   Subcategory = "Belts"
	SubcategoryWatches Subcategory = "Watches"
	SubcategoryScarves Subcategory = "Scarves"
)

var validSubcategories = map[Subcategory]bool{
	SubcategoryHats:    true,
	SubcategoryGlasses: true,
	SubcategoryBags:    true,
	SubcategoryJewelry: true,
	SubcategoryBelts:   true,
	SubcategoryWatches: true,
	SubcategoryScarves: true,
}

// Item - 드레스룸 아이템 (API 응답 뷰)
// 기본 카탈로그 아이템은 원격 URL, 커스텀 아이템은 /media/ 경로
type Item struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	Subcategory Subcategory `json:"subcategory,omitempty"`
	Color       string      `json:"color,omitempty"`
	Material    string      `json:"material,omitempty"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url"`
	Custom      bool        `json:"custom"`
}
