package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is one configuration of the shop page. The English and Chinese
// pages differ only in these values.
type Locale struct {
	Code        string
	Tag         language.Tag
	AllCategory string
	Currency    string
	Symbol      string
	DateLayout  string
	Messages    Messages
}

type Messages struct {
	AddedToCart     string // %s is the product name
	EmptyCart       string
	CheckoutSuccess string // %s is the formatted total
}

var (
	English = Locale{
		Code:        "en",
		Tag:         language.English,
		AllCategory: "All",
		Currency:    "USD",
		Symbol:      "$",
		DateLayout:  "1/2/2006, 3:04:05 PM",
		Messages: Messages{
			AddedToCart:     "%s added to cart!",
			EmptyCart:       "Your cart is empty!",
			CheckoutSuccess: "Checkout successful! Total: %s",
		},
	}
	Chinese = Locale{
		Code:        "zh",
		Tag:         language.Chinese,
		AllCategory: "全部",
		Currency:    "CNY",
		Symbol:      "¥",
		DateLayout:  "2006/1/2 15:04:05",
		Messages: Messages{
			AddedToCart:     "%s 已加入购物车！",
			EmptyCart:       "您的购物车是空的！",
			CheckoutSuccess: "结账成功！总计：%s",
		},
	}
)

var (
	supported = []Locale{English, Chinese}
	matcher   = language.NewMatcher([]language.Tag{English.Tag, Chinese.Tag})
)

// Supported lists the available locales, default first.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Lookup finds a locale by its short code.
func Lookup(code string) (Locale, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range supported {
		if l.Code == code {
			return l, true
		}
	}
	return Locale{}, false
}

// Resolve picks the locale for a request. An explicit code wins over the
// Accept-Language header; anything unmatched falls back to English.
func Resolve(code, acceptLanguage string) Locale {
	if l, ok := Lookup(code); ok {
		return l
	}
	if acceptLanguage == "" {
		return English
	}
	_, idx := language.MatchStrings(matcher, acceptLanguage)
	return supported[idx]
}
