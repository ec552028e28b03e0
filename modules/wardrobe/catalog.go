package wardrobe

// defaultCatalog - 기본 제공 아이템 (이미지는 외부 호스팅)
var defaultCatalog = []Item{
	// Tops
	{ID: "gemini-tee", Name: "Gemini Tee", Category: CategoryTops,
		URL: "https://raw.githubusercontent.com/ammaarreshi/app-images/refs/heads/main/Gemini-tee.png"},
	{ID: "white-blouse", Name: "White Blouse", Category: CategoryTops,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/white-blouse.png"},
	{ID: "polo-shirt", Name: "Polo Shirt", Category: CategoryTops,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/polo-shirt.png"},
	{ID: "black-tank-top", Name: "Black Tank Top", Category: CategoryTops,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/black-tank-top.png"},
	{ID: "striped-long-sleeve", Name: "Striped Long Sleeve", Category: CategoryTops,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/striped-long-sleeve.png"},
	// Bottoms
	{ID: "blue-jeans", Name: "Blue Jeans", Category: CategoryBottoms,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/blue-jeans.png"},
	{ID: "dress-pants", Name: "Dress Pants", Category: CategoryBottoms,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/dress-pants.png"},
	{ID: "khaki-shorts", Name: "Khaki Shorts", Category: CategoryBottoms,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/khaki-shorts.png"},
	{ID: "pleated-skirt", Name: "Pleated Skirt", Category: CategoryBottoms,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/pleated-skirt.png"},
	// 신발도 Bottoms로 분류
	{ID: "ankle-boots", Name: "Ankle Boots", Category: CategoryBottoms,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/ankle-boots.png"},
	// Outerwear
	{ID: "gemini-sweat", Name: "Gemini Sweatshirt", Category: CategoryOuterwear,
		URL: "https://raw.githubusercontent.com/ammaarreshi/app-images/refs/heads/main/gemini-sweat-2.png"},
	{ID: "leather-jacket", Name: "Leather Jacket", Category: CategoryOuterwear,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/leather-jacket.png"},
	{ID: "denim-jacket", Name: "Denim Jacket", Category: CategoryOuterwear,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/denim-jacket.png"},
	{ID: "trench-coat", Name: "Trench Coat", Category: CategoryOuterwear,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/trench-coat.png"},
	{ID: "gray-hoodie", Name: "Gray Hoodie", Category: CategoryOuterwear,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/gray-hoodie.png"},
	{ID: "blazer-jacket", Name: "Blazer", Category: CategoryOuterwear,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/blazer.png"},
	// Dresses
	{ID: "evening-dress", Name: "Evening Dress", Category: CategoryDresses,
		URL: "https://storage.googleapis.com/prompt-gallery/vto-app/blonde-woman-black-dress.jpg"},
	// Accessories
	{ID: "beanie-hat", Name: "Beanie", Category: CategoryAccessories, Subcategory: SubcategoryHats,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/beanie.png"},
	{ID: "baseball-cap", Name: "Baseball Cap", Category: CategoryAccessories, Subcategory: SubcategoryHats,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/baseball-cap.png"},
	{ID: "fedora-hat", Name: "Fedora Hat", Category: CategoryAccessories, Subcategory: SubcategoryHats,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/fedora-hat.png"},
	{ID: "sunglasses", Name: "Sunglasses", Category: CategoryAccessories, Subcategory: SubcategoryGlasses,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/sunglasses.png"},
	{ID: "aviator-sunglasses", Name: "Aviators", Category: CategoryAccessories, Subcategory: SubcategoryGlasses,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/aviators.png"},
	{ID: "leather-tote", Name: "Leather Tote", Category: CategoryAccessories, Subcategory: SubcategoryBags,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/leather-tote.png"},
	{ID: "crossbody-bag", Name: "Crossbody Bag", Category: CategoryAccessories, Subcategory: SubcategoryBags,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/crossbody-bag.png"},
	{ID: "backpack", Name: "Backpack", Category: CategoryAccessories, Subcategory: SubcategoryBags,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/backpack.png"},
	{ID: "gold-necklace", Name: "Gold Necklace", Category: CategoryAccessories, Subcategory: SubcategoryJewelry,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/gold-necklace.png"},
	{ID: "silver-hoops", Name: "Silver Hoops", Category: CategoryAccessories, Subcategory: SubcategoryJewelry,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/silver-hoops.png"},
	{ID: "brown-leather-belt", Name: "Leather Belt", Category: CategoryAccessories, Subcategory: SubcategoryBelts,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/leather-belt.png"},
	{ID: "classic-watch", Name: "Classic Watch", Category: CategoryAccessories, Subcategory: SubcategoryWatches,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/classic-watch.png"},
	{ID: "silk-scarf", Name: "Silk Scarf", Category: CategoryAccessories, Subcategory: SubcategoryScarves,
		URL: "https://storage.googleapis.com/gemini-95-icons/vto-app/silk-scarf.png"},
}

// DefaultCatalog - 기본 카탈로그 복사본
func DefaultCatalog() []Item {
	catalog := make([]Item, len(defaultCatalog))
	copy(catalog, defaultCatalog)
	return catalog
}
