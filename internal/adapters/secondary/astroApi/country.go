package astroApi

import "strings"

// countryCodes сопоставляет названия стран (в нижнем регистре) с ISO 3166-1
// alpha-2 кодами, которые ожидает астро-API. Включает распространённые
// альтернативные написания.
var countryCodes = map[string]string{
	"afghanistan":            "AF",
	"albania":                "AL",
	"algeria":                "DZ",
	"andorra":                "AD",
	"angola":                 "AO",
	"argentina":              "AR",
	"armenia":                "AM",
	"australia":              "AU",
	"austria":                "AT",
	"azerbaijan":             "AZ",
	"bahamas":                "BS",
	"bahrain":                "BH",
	"bangladesh":             "BD",
	"barbados":               "BB",
	"belarus":                "BY",
	"belgium":                "BE",
	"belize":                 "BZ",
	"benin":                  "BJ",
	"bhutan":                 "BT",
	"bolivia":                "BO",
	"bosnia and herzegovina": "BA",
	"botswana":               "BW",
	"brazil":                 "BR",
	"brunei":                 "BN",
	"bulgaria":               "BG",
	"burkina faso":           "BF",
	"burundi":                "BI",
	"cambodia":               "KH",
	"cameroon":               "CM",
	"canada":                 "CA",
	"cape verde":             "CV",
	"chad":                   "TD",
	"chile":                  "CL",
	"china":                  "CN",
	"colombia":               "CO",
	"congo":                  "CG",
	"costa rica":             "CR",
	"croatia":                "HR",
	"cuba":                   "CU",
	"cyprus":                 "CY",
	"czech republic":         "CZ",
	"czechia":                "CZ",
	"denmark":                "DK",
	"djibouti":               "DJ",
	"dominican republic":     "DO",
	"ecuador":                "EC",
	"egypt":                  "EG",
	"el salvador":            "SV",
	"estonia":                "EE",
	"ethiopia":               "ET",
	"fiji":                   "FJ",
	"finland":                "FI",
	"france":                 "FR",
	"gabon":                  "GA",
	"gambia":                 "GM",
	"georgia":                "GE",
	"germany":                "DE",
	"ghana":                  "GH",
	"greece":                 "GR",
	"guatemala":              "GT",
	"guinea":                 "GN",
	"guyana":                 "GY",
	"haiti":                  "HT",
	"honduras":               "HN",
	"hong kong":              "HK",
	"hungary":                "HU",
	"iceland":                "IS",
	"india":                  "IN",
	"indonesia":              "ID",
	"iran":                   "IR",
	"iraq":                   "IQ",
	"ireland":                "IE",
	"israel":                 "IL",
	"italy":                  "IT",
	"ivory coast":            "CI",
	"jamaica":                "JM",
	"japan":                  "JP",
	"jordan":                 "JO",
	"kazakhstan":             "KZ",
	"kenya":                  "KE",
	"kosovo":                 "XK",
	"kuwait":                 "KW",
	"kyrgyzstan":             "KG",
	"laos":                   "LA",
	"latvia":                 "LV",
	"lebanon":                "LB",
	"liberia":                "LR",
	"libya":                  "LY",
	"liechtenstein":          "LI",
	"lithuania":              "LT",
	"luxembourg":             "LU",
	"madagascar":             "MG",
	"malawi":                 "MW",
	"malaysia":               "MY",
	"maldives":               "MV",
	"mali":                   "ML",
	"malta":                  "MT",
	"mauritania":             "MR",
	"mauritius":              "MU",
	"mexico":                 "MX",
	"moldova":                "MD",
	"monaco":                 "MC",
	"mongolia":               "MN",
	"montenegro":             "ME",
	"morocco":                "MA",
	"mozambique":             "MZ",
	"myanmar":                "MM",
	"namibia":                "NA",
	"nepal":                  "NP",
	"netherlands":            "NL",
	"new zealand":            "NZ",
	"nicaragua":              "NI",
	"niger":                  "NE",
	"nigeria":                "NG",
	"north korea":            "KP",
	"north macedonia":        "MK",
	"norway":                 "NO",
	"oman":                   "OM",
	"pakistan":               "PK",
	"panama":                 "PA",
	"papua new guinea":       "PG",
	"paraguay":               "PY",
	"peru":                   "PE",
	"philippines":            "PH",
	"poland":                 "PL",
	"portugal":               "PT",
	"qatar":                  "QA",
	"romania":                "RO",
	"russia":                 "RU",
	"russian federation":     "RU",
	"rwanda":                 "RW",
	"saudi arabia":           "SA",
	"senegal":                "SN",
	"serbia":                 "RS",
	"singapore":              "SG",
	"slovakia":               "SK",
	"slovenia":               "SI",
	"somalia":                "SO",
	"south africa":           "ZA",
	"south korea":            "KR",
	"south sudan":            "SS",
	"spain":                  "ES",
	"sri lanka":              "LK",
	"sudan":                  "SD",
	"suriname":               "SR",
	"sweden":                 "SE",
	"switzerland":            "CH",
	"syria":                  "SY",
	"taiwan":                 "TW",
	"tajikistan":             "TJ",
	"tanzania":               "TZ",
	"thailand":               "TH",
	"togo":                   "TG",
	"trinidad and tobago":    "TT",
	"tunisia":                "TN",
	"turkey":                 "TR",
	"turkiye":                "TR",
	"türkiye":                "TR",
	"turkmenistan":           "TM",
	"uae":                    "AE",
	"uganda":                 "UG",
	"uk":                     "GB",
	"ukraine":                "UA",
	"united arab emirates":   "AE",
	"united kingdom":         "GB",
	"united states":          "US",
	"uruguay":                "UY",
	"usa":                    "US",
	"uzbekistan":             "UZ",
	"venezuela":              "VE",
	"vietnam":                "VN",
	"yemen":                  "YE",
	"zambia":                 "ZM",
	"zimbabwe":               "ZW",
}

// ResolveCountryCode разрешает название страны в ISO-код.
// При промахе по справочнику берутся первые две буквы первого слова в
// верхнем регистре, но только если обе - ASCII-буквы; иначе "US".
// Второй результат - был ли точный матч (вызывающий логирует warn на
// fallback).
func ResolveCountryCode(country string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(country))

	if code, ok := countryCodes[normalized]; ok {
		return code, true
	}

	word := normalized
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	if len(word) >= 2 && isASCIILetter(word[0]) && isASCIILetter(word[1]) {
		return strings.ToUpper(word[:2]), false
	}

	return "US", false
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}
