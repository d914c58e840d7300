package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xugejunllt/nft-auction-market/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var errStatus = []struct {
	status int
	errs   []error
}{
	{http.StatusNotFound, []error{domain.ErrNotFound, domain.ErrUnknownAuction}},
	{http.StatusUnauthorized, []error{domain.ErrInvalidSignature}},
	{http.StatusForbidden, []error{domain.ErrUnauthorized, domain.ErrOnlySeller, domain.ErrNotAssetOwner, domain.ErrSellerCannotBid, domain.ErrNotApproved}},
	{http.StatusBadRequest, []error{
		domain.ErrBadParamInput,
		domain.ErrInvalidNumberFormat,
		domain.ErrInvalidAddress,
		domain.ErrInvalidDuration,
		domain.ErrQuoteTokenNotSupported,
		domain.ErrPaymentMismatch,
		domain.ErrUnexpectedPayment,
		domain.ErrUnsupportedChain,
		domain.ErrUnknownToken,
	}},
	{http.StatusPaymentRequired, []error{domain.ErrInsufficientFunds, domain.ErrInsufficientAllowance}},
	{http.StatusServiceUnavailable, []error{domain.ErrStaleOrInvalidPrice, domain.ErrNoPriceFeed}},
	{http.StatusConflict, []error{
		domain.ErrConflict,
		domain.ErrBidTooLow,
		domain.ErrAuctionEnded,
		domain.ErrNotYetEnded,
		domain.ErrAlreadyEnded,
		domain.ErrBidsExist,
		domain.ErrNotEscrowed,
		domain.ErrAlreadyEscrowed,
		domain.ErrNothingToWithdraw,
		domain.ErrAlreadyReported,
		domain.ErrStorageIncompatible,
		domain.ErrUnsupportedVersion,
		domain.ErrDuplicateMessage,
	}},
}

// StatusOf maps a domain error to its http status, fallback when unknown
func StatusOf(err error, fallback int) int {
	for _, s := range errStatus {
		for _, e := range s.errs {
			if errors.Is(err, e) {
				return s.status
			}
		}
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
