package routemap

import "strings"

// LatLon is a geographic coordinate pair in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// Hand-curated coordinates for common US and international charter
// destinations, keyed by IATA code plus a handful of four-letter ICAO
// codes for fields with no IATA assignment.
var airportCoords = map[string]LatLon{
	// California
	"VNY": {34.2098, -118.4909}, "LAX": {33.9425, -118.4081}, "BUR": {34.2007, -118.3585},
	"SNA": {33.6757, -117.8676}, "LGB": {33.8177, -118.1516}, "ONT": {34.0560, -117.6012},
	"SJC": {37.3626, -121.9289}, "SFO": {37.6213, -122.3790}, "OAK": {37.7213, -122.2208},
	"SMF": {38.6954, -121.5908}, "SAN": {32.7336, -117.1896}, "FAT": {36.7762, -119.7181},
	"MRY": {36.5870, -121.8429}, "SBA": {34.4262, -119.8404}, "PSP": {33.8297, -116.5069},
	// Northwest
	"SEA": {47.4502, -122.3088}, "PDX": {45.5898, -122.5951}, "BOI": {43.5644, -116.2228},
	// Nevada / Arizona / Utah / Colorado
	"LAS": {36.0840, -115.1537}, "PHX": {33.4373, -112.0078}, "TUS": {32.1161, -110.9410},
	"SLC": {40.7899, -111.9791}, "DEN": {39.8561, -104.6737}, "APA": {39.5702, -104.8490},
	// Texas
	"DFW": {32.8998, -97.0403}, "DAL": {32.8474, -96.8517}, "IAH": {29.9902, -95.3368},
	"HOU": {29.6454, -95.2789}, "AUS": {30.1975, -97.6664}, "SAT": {29.5337, -98.4698},
	"ELP": {31.8072, -106.3779},
	// Southeast
	"ATL": {33.6367, -84.4281}, "MIA": {25.7959, -80.2870}, "FLL": {26.0724, -80.1527},
	"MCO": {28.4294, -81.3090}, "TPA": {27.9755, -82.5332}, "PBI": {26.6832, -80.0956},
	"OPF": {25.9079, -80.2786}, "SRQ": {27.3954, -82.5544}, "RSW": {26.5362, -81.7553},
	"JAX": {30.4941, -81.6879}, "BNA": {36.1245, -86.6782}, "CLT": {35.2140, -80.9431},
	"RDU": {35.8776, -78.7875}, "ORF": {36.8976, -76.0123},
	// Northeast
	"JFK": {40.6413, -73.7781}, "LGA": {40.7769, -73.8740}, "EWR": {40.6895, -74.1745},
	"TEB": {40.8501, -74.0608}, "HPN": {41.0670, -73.7076}, "SWF": {41.5041, -74.1048},
	"BOS": {42.3656, -71.0096}, "PVD": {41.7240, -71.4283}, "BDL": {41.9389, -72.6831},
	"PHL": {39.8744, -75.2424}, "BWI": {39.1754, -76.6684}, "DCA": {38.8512, -77.0402},
	"IAD": {38.9531, -77.4565}, "PIT": {40.4915, -80.2329},
	// Midwest
	"ORD": {41.9742, -87.9073}, "MDW": {41.7868, -87.7522}, "DTW": {42.2162, -83.3554},
	"MSP": {44.8848, -93.2223}, "MKE": {42.9472, -87.8966}, "STL": {38.7487, -90.3700},
	"CLE": {41.4117, -81.8498}, "CVG": {39.0480, -84.6678}, "IND": {39.7173, -86.2944},
	"CMH": {39.9980, -82.8919}, "MCI": {39.2976, -94.7139}, "OMA": {41.3032, -95.8940},
	// Mid-Atlantic / Carolinas
	"RIC": {37.5052, -77.3197}, "CHS": {32.8987, -80.0405},
	// International (common charter)
	"YYZ": {43.6777, -79.6248}, "YUL": {45.4706, -73.7408}, "YVR": {49.1967, -123.1815},
	"MYNN": {25.0387, -77.4664}, "MYEG": {24.3969, -76.8138},
	"MKJP": {17.9357, -76.7875}, "MMUN": {21.0365, -86.8771}, "MMCA": {20.6804, -105.0120},
	"TJSJ": {18.4394, -66.0018}, "TNCM": {18.0410, -63.1089}, "TUPJ": {18.4446, -64.5430},
	"NAS": {25.0387, -77.4664}, "AXA": {18.2049, -63.0505},
	"EGLL": {51.4775, -0.4614}, "EGKK": {51.1481, -0.1903}, "EGGW": {51.8747, -0.3683},
	"LFPB": {48.9744, 2.4414}, "LFPO": {48.7233, 2.3794},
	"EDDF": {50.0264, 8.5431}, "EDDM": {48.3537, 11.7750},
	"LEMD": {40.4719, -3.5626}, "LEAL": {38.2822, -0.5582},
	"LIRF": {41.8003, 12.2389}, "LIME": {45.6739, 9.7042}, "LIRA": {41.9527, 12.4957},
	"OMDB": {25.2532, 55.3657}, "OMAA": {24.4330, 54.6511}, "OERK": {24.9576, 46.6988},
	"LLBG": {32.0114, 34.8867}, "HECA": {30.1219, 31.4056},
	"VTBS": {13.6811, 100.7477}, "VHHH": {22.3080, 113.9185},
	"RJTT": {35.5494, 139.7798}, "WSSS": {1.3644, 103.9915},
	"YSSY": {-33.9399, 151.1753}, "YMML": {-37.6690, 144.8410},
}

// Lookup resolves an airport code to coordinates. The code is
// upper-cased first; a US ICAO code ("KVNY") falls back to its IATA form
// with the leading K stripped. Unknown codes resolve to nothing rather
// than an error.
func Lookup(code string) (LatLon, bool) {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if upper == "" {
		return LatLon{}, false
	}

	if coords, ok := airportCoords[strings.TrimPrefix(upper, "K")]; ok {
		return coords, true
	}

	coords, ok := airportCoords[upper]

	return coords, ok
}
