package marketdata

import "errors"

var (
	// ErrProvider is returned when Alpha Vantage rejects the request,
	// e.g. a rate-limit note or an error message in the response body.
	ErrProvider = errors.New("market data provider error")

	// ErrNetwork is returned on transport failure or timeout.
	ErrNetwork = errors.New("market data network error")

	// ErrUnknownSymbol is returned when the provider has no data for the
	// requested symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrInvalidInterval is returned when an intraday interval is not one
	// of the supported values.
	ErrInvalidInterval = errors.New("invalid intraday interval")
)
