package domain

type ShopStatus string

const (
	ShopStatusOpen   ShopStatus = "open"
	ShopStatusClosed ShopStatus = "closed"
)

type ShopInfo struct {
	Name          string     `json:"name"`
	Tagline       string     `json:"tagline"`
	Status        ShopStatus `json:"status"`
	Time          string     `json:"time"`
	EngineVersion string     `json:"engine_version"`
	PluginVersion string     `json:"plugin_version"`
}

// PageData is everything the shop page needs on first render.
type PageData struct {
	ShopInfo   ShopInfo  `json:"shop_info"`
	Locale     string    `json:"locale"`
	Products   []Product `json:"products"`
	Categories []string  `json:"categories"`
}
