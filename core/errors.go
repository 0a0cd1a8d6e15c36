package core

import "errors"

// Sentinel errors matching the §7 taxonomy. Callers use errors.Is against
// these; no domain error is retried internally.
var (
	ErrAmountZero             = errors.New("amount zero")
	ErrBalanceLow             = errors.New("balance low")
	ErrAllowanceLow           = errors.New("allowance low")
	ErrAssetNotExists         = errors.New("asset not exists")
	ErrTradingPairNotAllowed  = errors.New("trading pair not allowed")
	ErrInvalidTradingPathLen  = errors.New("invalid trading path length")
	ErrInsufficientLiquidity  = errors.New("insufficient liquidity")
	ErrZeroTargetAmount       = errors.New("zero target amount")
	ErrZeroSupplyAmount       = errors.New("zero supply amount")
	ErrInsufficientTargetOut  = errors.New("insufficient target amount")
	ErrExcessiveSupplyIn      = errors.New("excessive supply amount")
	ErrExceedPriceImpactLimit = errors.New("exceed price impact limit")
	ErrInvalidLiquidityIncr   = errors.New("invalid liquidity increment")
	ErrInvalidCurrencyID      = errors.New("invalid currency id")
	ErrPoolNotFound           = errors.New("pool not found")
)
