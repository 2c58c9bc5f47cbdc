package marketdata

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/viper"
)

// DefaultSymbols maps lower-cased company names to tickers. The table is
// data: entries are matched by substring against user text, so multi-word
// names ("bank of america") and aliases ("facebook", "meta") both work.
func DefaultSymbols() map[string]string {
	return map[string]string{
		// Technology
		"microsoft":  "MSFT",
		"apple":      "AAPL",
		"google":     "GOOGL",
		"alphabet":   "GOOGL",
		"amazon":     "AMZN",
		"meta":       "META",
		"facebook":   "META",
		"tesla":      "TSLA",
		"nvidia":     "NVDA",
		"intel":      "INTC",
		"amd":        "AMD",
		"ibm":        "IBM",
		"oracle":     "ORCL",
		"salesforce": "CRM",
		"adobe":      "ADBE",
		"netflix":    "NFLX",
		"cisco":      "CSCO",
		"qualcomm":   "QCOM",
		"broadcom":   "AVGO",
		"shopify":    "SHOP",
		"uber":       "UBER",
		"airbnb":     "ABNB",
		"paypal":     "PYPL",
		"spotify":    "SPOT",
		"palantir":   "PLTR",

		// Finance
		"jpmorgan":         "JPM",
		"goldman":          "GS",
		"morgan stanley":   "MS",
		"bank of america":  "BAC",
		"wells fargo":      "WFC",
		"citigroup":        "C",
		"visa":             "V",
		"mastercard":       "MA",
		"american express": "AXP",
		"blackrock":        "BLK",
		"berkshire":        "BRK.B",

		// Consumer
		"walmart":          "WMT",
		"target":           "TGT",
		"costco":           "COST",
		"mcdonald":         "MCD",
		"coca cola":        "KO",
		"coca-cola":        "KO",
		"pepsi":            "PEP",
		"nike":             "NKE",
		"starbucks":        "SBUX",
		"home depot":       "HD",
		"disney":           "DIS",
		"procter & gamble": "PG",

		// Energy
		"exxon":   "XOM",
		"chevron": "CVX",
		"shell":   "SHEL",

		// Healthcare
		"pfizer":       "PFE",
		"moderna":      "MRNA",
		"johnson":      "JNJ",
		"merck":        "MRK",
		"unitedhealth": "UNH",
		"abbvie":       "ABBV",
		"eli lilly":    "LLY",

		// Telecommunications
		"at&t":     "T",
		"verizon":  "VZ",
		"t-mobile": "TMUS",

		// Industrials
		"boeing":           "BA",
		"caterpillar":      "CAT",
		"ford":             "F",
		"general motors":   "GM",
		"general electric": "GE",
	}
}

// LoadSymbols reads a YAML file of name: ticker pairs and merges it over
// the default table. The file wins on conflicts.
func LoadSymbols(path string) (map[string]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading symbols file %s: %w", path, err)
	}

	symbols := DefaultSymbols()
	for name, ticker := range v.AllSettings() {
		s, ok := ticker.(string)
		if !ok {
			return nil, fmt.Errorf("symbols file %s: %q is not a string", path, name)
		}
		symbols[strings.ToLower(name)] = strings.ToUpper(s)
	}
	return symbols, nil
}

// SymbolTable resolves free-form user text to a stock ticker.
type SymbolTable struct {
	names   map[string]string
	tickers map[string]string
}

// NewSymbolTable builds a resolver from a name→ticker map, typically
// DefaultSymbols or the output of LoadSymbols.
func NewSymbolTable(names map[string]string) *SymbolTable {
	tickers := make(map[string]string, len(names))
	for _, ticker := range names {
		tickers[strings.ToLower(ticker)] = ticker
	}
	return &SymbolTable{names: names, tickers: tickers}
}

// Resolve finds a ticker in text. Known tickers match as whole tokens
// ("price of AAPL"); otherwise the longest company name contained in the
// text wins, so "bank of america" beats "america".
func (t *SymbolTable) Resolve(text string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return "", false
	}

	// Split on punctuation but keep & . - which appear inside tickers and
	// names (BRK.B, at&t, t-mobile). Single-letter tickers (F, T, V, C) only
	// resolve by company name; matching them as tokens would hit fragments
	// like the t in "don't".
	for _, token := range strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '&' && r != '.' && r != '-'
	}) {
		token = strings.Trim(token, ".-&")
		if len(token) < 2 {
			continue
		}
		if ticker, ok := t.tickers[token]; ok {
			return ticker, true
		}
	}

	var best string
	var bestLen int
	for name, ticker := range t.names {
		if strings.Contains(lowered, name) && len(name) > bestLen {
			best = ticker
			bestLen = len(name)
		}
	}
	if best != "" {
		return best, true
	}
	return "", false
}
