package geo

func coord(v float64) *float64 { return &v }

func city(name string, lat, lng float64) City {
	return City{Name: name, Lat: coord(lat), Lng: coord(lng)}
}

// DefaultCountries is the order countries are offered in.
var DefaultCountries = []string{
	"Portugal",
	"Spain",
	"France",
	"United Kingdom",
}

var defaultCities = map[string][]City{
	"Portugal": {
		city("Lisbon", 38.7223, -9.1393),
		city("Porto", 41.1579, -8.6291),
		city("Amadora", 38.7538, -9.2308),
		city("Sintra", 38.8029, -9.3817),
		city("Vila Nova de Gaia", 41.1239, -8.6118),
		city("Braga", 41.5454, -8.4265),
		city("Coimbra", 40.2033, -8.4103),
		city("Aveiro", 40.6405, -8.6538),
		city("Setúbal", 38.5244, -8.8882),
		city("Évora", 38.5714, -7.9135),
		city("Faro", 37.0194, -7.9322),
		city("Funchal", 32.6669, -16.9241),
	},
	"Spain": {
		city("Madrid", 40.4168, -3.7038),
		city("Getafe", 40.3083, -3.7327),
		city("Barcelona", 41.3874, 2.1686),
		city("Valencia", 39.4699, -0.3763),
		city("Seville", 37.3891, -5.9845),
		city("Zaragoza", 41.6488, -0.8891),
		city("Málaga", 36.7213, -4.4214),
		city("Bilbao", 43.263, -2.935),
		city("Alicante", 38.3452, -0.481),
	},
	"France": {
		city("Paris", 48.8566, 2.3522),
		city("Versailles", 48.8049, 2.1204),
		city("Lyon", 45.764, 4.8357),
		city("Marseille", 43.2965, 5.3698),
		city("Toulouse", 43.6047, 1.4442),
		city("Nice", 43.7102, 7.262),
		city("Bordeaux", 44.8378, -0.5792),
		city("Lille", 50.6292, 3.0573),
	},
	"United Kingdom": {
		city("London", 51.5072, -0.1276),
		city("Manchester", 53.4808, -2.2426),
		city("Birmingham", 52.4862, -1.8904),
		city("Leeds", 53.8008, -1.5491),
		city("Liverpool", 53.4084, -2.9916),
		city("Bristol", 51.4545, -2.5879),
		city("Glasgow", 55.8642, -4.2518),
		city("Edinburgh", 55.9533, -3.1883),
	},
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultCities, DefaultCountries)
}
