// internal/service/analytics/gazetteer.go

package analytics

import (
	"strings"
)

// Coordinates is a country's representative point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Country names a country by its common and official names
type Country struct {
	Common   string
	Official string
	Coordinates
}

// Gazetteer resolves country names to coordinates
type Gazetteer struct {
	byName map[string]Coordinates
}

// NewGazetteer indexes countries by lower-cased common and official name.
// Later entries win when names collide.
func NewGazetteer(countries []Country) *Gazetteer {
	g := &Gazetteer{byName: make(map[string]Coordinates, len(countries)*2)}
	for _, c := range countries {
		g.byName[strings.ToLower(c.Common)] = c.Coordinates
		if c.Official != "" {
			g.byName[strings.ToLower(c.Official)] = c.Coordinates
		}
	}
	return g
}

// DefaultGazetteer returns a gazetteer over the built-in country table
func DefaultGazetteer() *Gazetteer {
	return NewGazetteer(countries)
}

// Lookup returns the coordinates of a country, matched case-insensitively
func (g *Gazetteer) Lookup(name string) (Coordinates, bool) {
	if g == nil {
		return Coordinates{}, false
	}
	c, ok := g.byName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Locate is Lookup with unknown countries placed at 0,0
func (g *Gazetteer) Locate(name string) Coordinates {
	c, _ := g.Lookup(name)
	return c
}

// Representative points follow the world-countries dataset
var countries = []Country{
	{"Afghanistan", "Islamic Republic of Afghanistan", Coordinates{33, 65}},
	{"Algeria", "People's Democratic Republic of Algeria", Coordinates{28, 3}},
	{"Angola", "Republic of Angola", Coordinates{-12.5, 18.5}},
	{"Argentina", "Argentine Republic", Coordinates{-34, -64}},
	{"Armenia", "Republic of Armenia", Coordinates{40, 45}},
	{"Australia", "Commonwealth of Australia", Coordinates{-27, 133}},
	{"Austria", "Republic of Austria", Coordinates{47.33333333, 13.33333333}},
	{"Azerbaijan", "Republic of Azerbaijan", Coordinates{40.5, 47.5}},
	{"Bahrain", "Kingdom of Bahrain", Coordinates{26, 50.55}},
	{"Bangladesh", "People's Republic of Bangladesh", Coordinates{24, 90}},
	{"Belarus", "Republic of Belarus", Coordinates{53, 28}},
	{"Belgium", "Kingdom of Belgium", Coordinates{50.83333333, 4}},
	{"Belize", "Belize", Coordinates{17.25, -88.75}},
	{"Bolivia", "Plurinational State of Bolivia", Coordinates{-17, -65}},
	{"Botswana", "Republic of Botswana", Coordinates{-22, 24}},
	{"Brazil", "Federative Republic of Brazil", Coordinates{-10, -55}},
	{"Burkina Faso", "Burkina Faso", Coordinates{13, -2}},
	{"Cameroon", "Republic of Cameroon", Coordinates{6, 12}},
	{"Canada", "Canada", Coordinates{60, -95}},
	{"Chad", "Republic of Chad", Coordinates{15, 19}},
	{"Chile", "Republic of Chile", Coordinates{-30, -71}},
	{"China", "People's Republic of China", Coordinates{35, 105}},
	{"Colombia", "Republic of Colombia", Coordinates{4, -72}},
	{"Cuba", "Republic of Cuba", Coordinates{21.5, -80}},
	{"Cyprus", "Republic of Cyprus", Coordinates{35, 33}},
	{"Czechia", "Czech Republic", Coordinates{49.75, 15.5}},
	{"DR Congo", "Democratic Republic of the Congo", Coordinates{0, 25}},
	{"Denmark", "Kingdom of Denmark", Coordinates{56, 10}},
	{"Ecuador", "Republic of Ecuador", Coordinates{-2, -77.5}},
	{"Egypt", "Arab Republic of Egypt", Coordinates{27, 30}},
	{"Estonia", "Republic of Estonia", Coordinates{59, 26}},
	{"Ethiopia", "Federal Democratic Republic of Ethiopia", Coordinates{8, 38}},
	{"Finland", "Republic of Finland", Coordinates{64, 26}},
	{"France", "French Republic", Coordinates{46, 2}},
	{"Gabon", "Gabonese Republic", Coordinates{-1, 11.75}},
	{"Georgia", "Georgia", Coordinates{42, 43.5}},
	{"Germany", "Federal Republic of Germany", Coordinates{51, 9}},
	{"Ghana", "Republic of Ghana", Coordinates{8, -2}},
	{"Greece", "Hellenic Republic", Coordinates{39, 22}},
	{"Hungary", "Hungary", Coordinates{47, 20}},
	{"India", "Republic of India", Coordinates{20, 77}},
	{"Indonesia", "Republic of Indonesia", Coordinates{-5, 120}},
	{"Iran", "Islamic Republic of Iran", Coordinates{32, 53}},
	{"Iraq", "Republic of Iraq", Coordinates{33, 44}},
	{"Ireland", "Republic of Ireland", Coordinates{53, -8}},
	{"Israel", "State of Israel", Coordinates{31.47, 35.13}},
	{"Italy", "Italian Republic", Coordinates{42.83333333, 12.83333333}},
	{"Ivory Coast", "Republic of Côte d'Ivoire", Coordinates{8, -5}},
	{"Japan", "Japan", Coordinates{36, 138}},
	{"Jordan", "Hashemite Kingdom of Jordan", Coordinates{31, 36}},
	{"Kazakhstan", "Republic of Kazakhstan", Coordinates{48, 68}},
	{"Kenya", "Republic of Kenya", Coordinates{1, 38}},
	{"Kuwait", "State of Kuwait", Coordinates{29.5, 45.75}},
	{"Lebanon", "Lebanese Republic", Coordinates{33.83333333, 35.83333333}},
	{"Liberia", "Republic of Liberia", Coordinates{6.5, -9.5}},
	{"Libya", "State of Libya", Coordinates{25, 17}},
	{"Madagascar", "Republic of Madagascar", Coordinates{-20, 47}},
	{"Malaysia", "Malaysia", Coordinates{2.5, 112.5}},
	{"Mali", "Republic of Mali", Coordinates{17, -4}},
	{"Mauritania", "Islamic Republic of Mauritania", Coordinates{20, -12}},
	{"Mexico", "United Mexican States", Coordinates{23, -102}},
	{"Morocco", "Kingdom of Morocco", Coordinates{32, -5}},
	{"Mozambique", "Republic of Mozambique", Coordinates{-18.25, 35}},
	{"Myanmar", "Republic of the Union of Myanmar", Coordinates{22, 98}},
	{"Namibia", "Republic of Namibia", Coordinates{-22, 17}},
	{"Nepal", "Federal Democratic Republic of Nepal", Coordinates{28, 84}},
	{"Netherlands", "Kingdom of the Netherlands", Coordinates{52.5, 5.75}},
	{"New Zealand", "New Zealand", Coordinates{-41, 174}},
	{"Niger", "Republic of Niger", Coordinates{16, 8}},
	{"Nigeria", "Federal Republic of Nigeria", Coordinates{10, 8}},
	{"North Korea", "Democratic People's Republic of Korea", Coordinates{40, 127}},
	{"Norway", "Kingdom of Norway", Coordinates{62, 10}},
	{"Oman", "Sultanate of Oman", Coordinates{21, 57}},
	{"Pakistan", "Islamic Republic of Pakistan", Coordinates{30, 70}},
	{"Peru", "Republic of Peru", Coordinates{-10, -76}},
	{"Philippines", "Republic of the Philippines", Coordinates{13, 122}},
	{"Poland", "Republic of Poland", Coordinates{52, 20}},
	{"Portugal", "Portuguese Republic", Coordinates{39.5, -8}},
	{"Qatar", "State of Qatar", Coordinates{25.5, 51.25}},
	{"Republic of the Congo", "Republic of the Congo", Coordinates{-1, 15}},
	{"Romania", "Romania", Coordinates{46, 25}},
	{"Russia", "Russian Federation", Coordinates{60, 100}},
	{"Rwanda", "Republic of Rwanda", Coordinates{-2, 30}},
	{"Saudi Arabia", "Kingdom of Saudi Arabia", Coordinates{25, 45}},
	{"Senegal", "Republic of Senegal", Coordinates{14, -14}},
	{"Serbia", "Republic of Serbia", Coordinates{44, 21}},
	{"Singapore", "Republic of Singapore", Coordinates{1.36666666, 103.8}},
	{"Somalia", "Federal Republic of Somalia", Coordinates{10, 49}},
	{"South Africa", "Republic of South Africa", Coordinates{-29, 24}},
	{"South Korea", "Republic of Korea", Coordinates{37, 127.5}},
	{"South Sudan", "Republic of South Sudan", Coordinates{7, 30}},
	{"Spain", "Kingdom of Spain", Coordinates{40, -4}},
	{"Sri Lanka", "Democratic Socialist Republic of Sri Lanka", Coordinates{7, 81}},
	{"Sudan", "Republic of the Sudan", Coordinates{15, 30}},
	{"Sweden", "Kingdom of Sweden", Coordinates{62, 15}},
	{"Switzerland", "Swiss Confederation", Coordinates{47, 8}},
	{"Syria", "Syrian Arab Republic", Coordinates{35, 38}},
	{"Tanzania", "United Republic of Tanzania", Coordinates{-6, 35}},
	{"Thailand", "Kingdom of Thailand", Coordinates{15, 100}},
	{"Tunisia", "Tunisian Republic", Coordinates{34, 9}},
	{"Turkey", "Republic of Turkey", Coordinates{39, 35}},
	{"Turkmenistan", "Turkmenistan", Coordinates{40, 60}},
	{"Uganda", "Republic of Uganda", Coordinates{1, 32}},
	{"Ukraine", "Ukraine", Coordinates{49, 32}},
	{"United Arab Emirates", "United Arab Emirates", Coordinates{24, 54}},
	{"United Kingdom", "United Kingdom of Great Britain and Northern Ireland", Coordinates{54, -2}},
	{"United States", "United States of America", Coordinates{38, -97}},
	{"Uzbekistan", "Republic of Uzbekistan", Coordinates{41, 64}},
	{"Venezuela", "Bolivarian Republic of Venezuela", Coordinates{8, -66}},
	{"Vietnam", "Socialist Republic of Vietnam", Coordinates{16.16666666, 107.83333333}},
	{"Yemen", "Republic of Yemen", Coordinates{15, 48}},
	{"Zambia", "Republic of Zambia", Coordinates{-15, 30}},
	{"Zimbabwe", "Republic of Zimbabwe", Coordinates{-20, 30}},
}
