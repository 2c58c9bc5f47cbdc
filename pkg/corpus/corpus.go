// Package corpus holds the fixed investing-education document set the
// semantic index is built from. The passages are data; the set is loaded
// once at process start and immutable thereafter.
package corpus

// Passage is a single educational reference passage.
type Passage struct {
	// ID is a stable identifier used as the vector document ID and as
	// the source tag on search matches.
	ID string

	// Text is the passage content.
	Text string
}

// Passages returns the built-in educational document set.
func Passages() []Passage {
	return []Passage{
		{ID: "sp500", Text: "The S&P 500 index tracks the performance of 500 of the largest US companies and is a key indicator of overall market health."},
		{ID: "dividends", Text: "Dividend stocks pay out a portion of company earnings on a regular schedule and are popular with long-term investors seeking stable income."},
		{ID: "blue-chip", Text: "Blue-chip stocks are shares of large, well-established companies with strong market positions and a history of stable earnings."},
		{ID: "penny-stocks", Text: "Penny stocks are low-priced shares of smaller companies; they are highly volatile and carry substantial risk alongside their potential gains."},
		{ID: "market-cap", Text: "Market capitalization is calculated by multiplying a company's stock price by its number of outstanding shares."},
		{ID: "pe-ratio", Text: "The price-to-earnings (P/E) ratio compares a company's stock price to its earnings per share and is a common gauge of valuation."},
		{ID: "technical-analysis", Text: "Technical analysis uses historical price and volume data to look for patterns that may indicate future price movements."},
		{ID: "fundamental-analysis", Text: "Fundamental analysis evaluates a company's financial health, management quality, and competitive position to estimate its intrinsic value."},
		{ID: "diversification", Text: "Diversification reduces portfolio risk by spreading investments across different asset classes, sectors, and geographies."},
		{ID: "etf", Text: "Exchange-traded funds (ETFs) let investors buy a basket of stocks or bonds in a single trade, providing instant diversification at low cost."},
		{ID: "volatility", Text: "Volatility measures how widely a stock's price fluctuates; higher volatility means larger swings and higher risk."},
		{ID: "fed-rates", Text: "The Federal Reserve sets benchmark interest rates, which directly affect stock valuations and broader market performance."},
		{ID: "eps", Text: "Earnings per share (EPS) shows how much profit a company generates for each outstanding share of its stock."},
		{ID: "bull-bear", Text: "A bull market is a sustained period of rising prices; a bear market is a sustained period of falling prices, typically a decline of 20% or more."},
		{ID: "risk-tolerance", Text: "Risk tolerance reflects how much volatility an investor can accept and should drive the choice of investment strategy and time horizon."},
		{ID: "compound-interest", Text: "Compound interest grows an investment by earning returns on both the principal and previously accumulated returns, rewarding early and consistent saving."},
		{ID: "dollar-cost-averaging", Text: "Dollar-cost averaging invests a fixed amount at regular intervals, smoothing out the effect of short-term price swings."},
		{ID: "bonds", Text: "Bonds are loans to governments or companies that pay fixed interest; they are generally less volatile than stocks and balance a portfolio."},
	}
}
