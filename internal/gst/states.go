package gst

import (
	"sort"
	"strings"
)

// stateNumbers is the GST state code table. It is never written after init.
var stateNumbers = map[string]string{
	"Andaman and Nicobar Islands": "35",
	"Andhra Pradesh":              "37",
	"Arunachal Pradesh":           "12",
	"Assam":                       "18",
	"Bihar":                       "10",
	"Chandigarh":                  "04",
	"Chhattisgarh":                "22",
	"Dadra and Nagar Haveli":      "26",
	"Daman and Diu":               "25",
	"Delhi":                       "07",
	"Goa":                         "30",
	"Gujarat":                     "24",
	"Haryana":                     "06",
	"Himachal Pradesh":            "02",
	"Jammu and Kashmir":           "01",
	"Jharkhand":                   "20",
	"Karnataka":                   "29",
	"Kerala":                      "32",
	"Ladakh":                      "38",
	"Lakshadweep Islands":         "31",
	"Madhya Pradesh":              "23",
	"Maharashtra":                 "27",
	"Manipur":                     "14",
	"Meghalaya":                   "17",
	"Mizoram":                     "15",
	"Nagaland":                    "13",
	"Odisha":                      "21",
	"Other Territory":             "97",
	"Pondicherry":                 "34",
	"Punjab":                      "03",
	"Rajasthan":                   "08",
	"Sikkim":                      "11",
	"Tamil Nadu":                  "33",
	"Telangana":                   "36",
	"Tripura":                     "16",
	"Uttar Pradesh":               "09",
	"Uttarakhand":                 "05",
	"West Bengal":                 "19",
}

// statesByLowerName resolves free-text state names case-insensitively.
var statesByLowerName = func() map[string]string {
	m := make(map[string]string, len(stateNumbers))
	for name := range stateNumbers {
		m[strings.ToLower(name)] = name
	}
	return m
}()

// RegionCode pairs a canonical state name with its 2-digit GST code.
type RegionCode struct {
	State  string `json:"state"`
	Number string `json:"number"`
}

// StateNumber returns the GST code for a canonical state name.
func StateNumber(state string) (string, bool) {
	n, ok := stateNumbers[state]
	return n, ok
}

// CanonicalState maps a free-text state name to its canonical spelling.
func CanonicalState(freeText string) (string, bool) {
	s, ok := statesByLowerName[strings.ToLower(strings.TrimSpace(freeText))]
	return s, ok
}

// States returns the full table ordered by state name.
func States() []RegionCode {
	out := make([]RegionCode, 0, len(stateNumbers))
	for name, num := range stateNumbers {
		out = append(out, RegionCode{State: name, Number: num})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}

// ResolveState determines the GST state and code of an address. A set gstState
// wins; otherwise the free-text state is matched. ok is false when neither
// resolves to a known state.
func ResolveState(gstState, state string) (region RegionCode, ok bool) {
	if gstState == "" {
		if state == "" {
			return RegionCode{}, false
		}
		canonical, found := CanonicalState(state)
		if !found {
			return RegionCode{}, false
		}
		gstState = canonical
	}
	num, found := StateNumber(gstState)
	if !found {
		return RegionCode{State: gstState}, false
	}
	return RegionCode{State: gstState, Number: num}, true
}
