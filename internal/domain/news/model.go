package news

// Article is one headline from the news feed.
type Article struct {
	Title    string
	Link     string
	Division string
	PubDate  *string
	Image    string
}

// Logo is a division badge with its display width in pixels.
type Logo struct {
	URL   string
	Width int
}

const ncaaLogoURL = "https://content.sportslogos.net/logos/85/5463/full/national_collegiate_athletic_association_logo_secondary_2021_sportslogosnet-4441.png"

var divisionLabels = map[string]string{
	"1":          "NCAA Division I",
	"2":          "NCAA Division II",
	"3":          "NCAA Division III",
	"naia":       "NAIA",
	"njcaa":      "NJCAA",
	"3c2asports": "CCCAA",
}

var divisionLogos = map[string]Logo{
	"1":          {URL: ncaaLogoURL, Width: 120},
	"2":          {URL: ncaaLogoURL, Width: 120},
	"3":          {URL: ncaaLogoURL, Width: 120},
	"naia":       {URL: "https://naiastats.prestosports.com/assets/images/NAIA_Bridge_logo_whiteR.png", Width: 120},
	"njcaa":      {URL: "https://www.njcaa.org/images/setup/footer-logo-njcaa.png?max_width=auto&max_height=auto&crop=false", Width: 120},
	"3c2asports": {URL: "https://www.cccaasports.org/assets/Alternative_Logo.png", Width: 120},
}

// DefaultLogo is returned for divisions without a badge.
var DefaultLogo = Logo{URL: "", Width: 40}

// DivisionLabel maps a news division key to its display name. Unknown keys are returned as-is.
func DivisionLabel(key string) string {
	if label, ok := divisionLabels[key]; ok {
		return label
	}
	return key
}

func DivisionLogo(key string) Logo {
	if logo, ok := divisionLogos[key]; ok {
		return logo
	}
	return DefaultLogo
}

// DivisionKeys lists the news division keys that have a label.
func DivisionKeys() []string {
	return []string{"1", "2", "3", "naia", "njcaa", "3c2asports"}
}

// ByDivision keeps articles tagged with division, preserving feed order.
func ByDivision(articles []Article, division string) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.Division == division {
			out = append(out, a)
		}
	}
	return out
}
