package catalog

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	rePriceRange = regexp.MustCompile(`^\d{3,5}-\d{3,5}$`)
	reSizeToken  = regexp.MustCompile(`^\d{1,2}$`)
	reMinToken   = regexp.MustCompile(`^\d{3,5}$`)
)

// ParseSearch compiles a free-form search box expression into the canonical
// shop query parameters. Expressions are split on spaces/commas; each token
// is either an explicit key:value pair (category, size, price with an a-b
// range) or guessed from shape: 1-2 digits reads as a size, 3-5 digits as a
// minimum price, a digit range as a price band, anything else as a category.
func ParseSearch(query string) url.Values {
	params := url.Values{}
	for _, tok := range strings.FieldsFunc(query, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	}) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		if key, val, ok := strings.Cut(tok, ":"); ok {
			switch strings.ToLower(key) {
			case "category":
				params.Set("category", val)
			case "size":
				params.Set("size", val)
			case "price":
				if min, max, ok := strings.Cut(val, "-"); ok && min != "" && max != "" {
					params.Set("minPrice", min)
					params.Set("maxPrice", max)
				}
			}
			continue
		}

		switch {
		case rePriceRange.MatchString(tok):
			min, max, _ := strings.Cut(tok, "-")
			params.Set("minPrice", min)
			params.Set("maxPrice", max)
		case reSizeToken.MatchString(tok):
			params.Set("size", tok)
		case reMinToken.MatchString(tok):
			params.Set("minPrice", tok)
		default:
			params.Set("category", tok)
		}
	}
	return params
}
