package tax

import (
	"regexp"
	"strings"
)

// stateNames maps GST state codes to their state or union territory names.
var stateNames = map[string]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"26": "Dadra and Nagar Haveli and Daman and Diu",
	"27": "Maharashtra",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
	"97": "Other Territory",
}

var stateCodes = func() map[string]string {
	m := make(map[string]string, len(stateNames)+4)
	for code, name := range stateNames {
		m[normalizeStateName(name)] = code
	}
	// Common spellings seen on older documents.
	m["orissa"] = "21"
	m["pondicherry"] = "34"
	m["new delhi"] = "07"
	m["tamilnadu"] = "33"
	return m
}()

var gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// StateName returns the state name for a GST state code.
func StateName(code string) (string, bool) {
	name, ok := stateNames[code]
	return name, ok
}

// StateCodeFor looks up the GST state code for a state name, case-insensitively.
func StateCodeFor(name string) (string, bool) {
	code, ok := stateCodes[normalizeStateName(name)]
	return code, ok
}

// StateCodeFromGSTIN returns the state code encoded in the first two digits of gstin.
func StateCodeFromGSTIN(gstin string) (string, bool) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if len(gstin) < 2 {
		return "", false
	}
	code := gstin[:2]
	if _, ok := stateNames[code]; !ok {
		return "", false
	}
	return code, true
}

// ValidGSTIN reports whether gstin has the 15-character GSTIN layout.
func ValidGSTIN(gstin string) bool {
	return gstinPattern.MatchString(strings.ToUpper(strings.TrimSpace(gstin)))
}

// ValidStateCode reports whether code is a known GST state code.
func ValidStateCode(code string) bool {
	_, ok := stateNames[code]
	return ok
}

func normalizeStateName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "&", "and")
	return strings.Join(strings.Fields(name), " ")
}
