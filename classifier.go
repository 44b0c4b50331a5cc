package console

import "strings"

// SizeScheme is the size-option family a product category implies.
type SizeScheme = string

const (
	SizeSchemeClothing SizeScheme = "clothing"
	SizeSchemeShoe     SizeScheme = "shoe"
	SizeSchemeNone     SizeScheme = "none"
)

type sizeRule struct {
	scheme   SizeScheme
	keywords []string
}

// Footwear first: category names like "sports shoes & apparel" should
// resolve to the shoe scheme, not clothing.
var sizeRules = []sizeRule{
	{
		scheme: SizeSchemeShoe,
		keywords: []string{
			"shoe", "sneaker", "sandal", "heel", "boot",
			"slipper", "footwear", "loafer", "flip flop",
		},
	},
	{
		scheme: SizeSchemeClothing,
		keywords: []string{
			"shirt", "t-shirt", "tshirt", "kurta", "dress", "top",
			"jeans", "trouser", "hoodie", "jacket", "saree", "lehenga",
			"apparel", "clothing", "ethnic wear", "innerwear",
		},
	},
}

// InferSizeScheme classifies a category name into a size scheme via
// keyword matching. Unknown categories get no size options.
func InferSizeScheme(category string) SizeScheme {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return SizeSchemeNone
	}

	for _, rule := range sizeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.scheme
			}
		}
	}

	return SizeSchemeNone
}

// SizeOptionsFor returns the selectable size labels for a scheme.
func SizeOptionsFor(scheme SizeScheme) []string {
	switch scheme {
	case SizeSchemeClothing:
		return []string{"XS", "S", "M", "L", "XL", "XXL"}
	case SizeSchemeShoe:
		return []string{"6", "7", "8", "9", "10", "11", "12"}
	default:
		return nil
	}
}
