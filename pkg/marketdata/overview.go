package marketdata

// companyOverviews holds static blurbs for the most commonly asked-about
// tickers. Static on purpose: overview text changes rarely and a provider
// call would burn rate-limit budget on data that barely moves.
var companyOverviews = map[string]string{
	"AAPL":  "Apple Inc. - Technology, consumer electronics and services. Founded 1976.",
	"MSFT":  "Microsoft Corporation - Technology, software and cloud. Founded 1975.",
	"GOOGL": "Alphabet Inc. - Technology, search and advertising. Founded 1998.",
	"AMZN":  "Amazon.com Inc. - E-commerce and cloud computing. Founded 1994.",
	"TSLA":  "Tesla Inc. - Electric vehicles and energy. Founded 2003.",
	"NVDA":  "NVIDIA Corporation - Semiconductors and accelerated computing. Founded 1993.",
	"META":  "Meta Platforms - Social media and technology. Founded 2004.",
	"INTC":  "Intel Corporation - Semiconductors. Founded 1968.",
	"JPM":   "JPMorgan Chase & Co. - Banking and financial services. Founded 1799.",
	"V":     "Visa Inc. - Payments technology. Founded 1958.",
	"WMT":   "Walmart Inc. - Retail. Founded 1962.",
	"JNJ":   "Johnson & Johnson - Healthcare and pharmaceuticals. Founded 1886.",
	"XOM":   "Exxon Mobil Corporation - Oil and gas. Founded 1999 (merger).",
	"DIS":   "The Walt Disney Company - Media and entertainment. Founded 1923.",
	"KO":    "The Coca-Cola Company - Beverages. Founded 1892.",
}

// CompanyOverview returns a short description of the company behind symbol.
// Unknown symbols get a generic line rather than an error.
func CompanyOverview(symbol string) string {
	if blurb, ok := companyOverviews[symbol]; ok {
		return blurb
	}
	return "Stock ticker: " + symbol
}
