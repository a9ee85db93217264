package model

// InCategories reports whether category is one of categories.
func InCategories(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

func IsKnownCategory(category string) bool {
	return InCategories(Categories, category)
}
