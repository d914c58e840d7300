package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidAddress      = errors.New("Invalid address")
	ErrInvalidSignature    = errors.New("Invalid signature")

	// access
	ErrUnauthorized = errors.New("unauthorized")
	ErrOnlySeller   = errors.New("only seller can do this")

	// listing
	ErrNotAssetOwner          = errors.New("not asset owner")
	ErrQuoteTokenNotSupported = errors.New("quote token not supported")
	ErrInvalidDuration        = errors.New("duration must be positive")
	ErrUnknownAuction         = errors.New("unknown auction")

	// bidding
	ErrSellerCannotBid     = errors.New("seller cannot bid")
	ErrBidTooLow           = errors.New("bid must be higher than current highest bid")
	ErrPaymentMismatch     = errors.New("payment does not match bid amount")
	ErrUnexpectedPayment   = errors.New("native payment not accepted for token auctions")
	ErrAuctionEnded        = errors.New("auction ended")
	ErrNotYetEnded         = errors.New("auction not ended yet")
	ErrAlreadyEnded        = errors.New("auction already ended")
	ErrBidsExist           = errors.New("cannot cancel with existing bids")
	ErrNotEscrowed         = errors.New("asset not escrowed")
	ErrAlreadyEscrowed     = errors.New("asset already escrowed")
	ErrNothingToWithdraw   = errors.New("nothing to withdraw")
	ErrStaleOrInvalidPrice = errors.New("stale or invalid price")
	ErrNoPriceFeed         = errors.New("no price feed")

	// ledgers
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrNotApproved           = errors.New("caller is not owner nor approved")
	ErrUnknownToken          = errors.New("unknown token")

	// registry
	ErrAlreadyReported     = errors.New("settlement already reported")
	ErrStorageIncompatible = errors.New("storage incompatible")
	ErrUnsupportedVersion  = errors.New("unsupported version")

	// cross chain
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrDuplicateMessage = errors.New("duplicate message")
)
