package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/delivery"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/middleware"
	"github.com/xugejunllt/nft-auction-market/service/ledger"
	authMiddleware "github.com/xugejunllt/nft-auction-market/stores/auth/delivery/http/middleware"
)

type handler struct {
	assets *ledger.Assets
	funds  *ledger.Funds
}

// New exposes the in-memory ledgers. Minting is owner only, it stands in for
// deposits and bridged assets.
func New(
	e *echo.Echo,
	assets *ledger.Assets,
	funds *ledger.Funds,
	authMiddleware *authMiddleware.AuthMiddleware,
) {
	h := &handler{assets, funds}

	ga := e.Group("/ledger/assets")

	ga.GET("/:contract/:id/owner", h.ownerOf, middleware.IsValidAddress("contract"))

	ga.POST("/mint", h.mintAsset, authMiddleware.Auth(), authMiddleware.IsOwner())

	ga.POST("/approve", h.approveAsset, authMiddleware.Auth())

	ga.POST("/approve-all", h.setApprovalForAll, authMiddleware.Auth())

	gf := e.Group("/ledger/funds")

	gf.GET("/:token/:owner", h.balanceOf, middleware.IsValidAddress("token"), middleware.IsValidAddress("owner"))

	gf.POST("/tokens", h.registerToken, authMiddleware.Auth(), authMiddleware.IsOwner())

	gf.POST("/mint", h.mintFunds, authMiddleware.Auth(), authMiddleware.IsOwner())

	gf.POST("/approve", h.approveFunds, authMiddleware.Auth())
}

func bindAndValidate(c echo.Context, p interface{}) error {
	if err := c.Bind(p); err != nil {
		return err
	}
	return c.Validate(p)
}

func (h *handler) ownerOf(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	owner, err := h.assets.OwnerOf(ctx, domain.Address(c.Param("contract")), domain.TokenId(c.Param("id")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, owner)
}

func (h *handler) mintAsset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Contract domain.Address   `json:"contract" validate:"required,address"`
		Ids      []domain.TokenId `json:"ids" validate:"required,min=1,dive,required"`
		To       domain.Address   `json:"to" validate:"required,address"`
	}

	p := payload{}
	if err := bindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.assets.MintBatch(ctx, p.Contract, p.Ids, p.To); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

func (h *handler) approveAsset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Contract domain.Address `json:"contract" validate:"required,address"`
		Id       domain.TokenId `json:"id" validate:"required"`
		Spender  domain.Address `json:"spender" validate:"required,address"`
	}

	p := payload{}
	if err := bindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.assets.Approve(ctx, caller, p.Contract, p.Id, p.Spender); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) setApprovalForAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Contract domain.Address `json:"contract" validate:"required,address"`
		Operator domain.Address `json:"operator" validate:"required,address"`
		Approved bool           `json:"approved"`
	}

	p := payload{}
	if err := bindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.assets.SetApprovalForAll(ctx, caller, p.Contract, p.Operator, p.Approved); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) balanceOf(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	balance, err := h.funds.BalanceOf(ctx, domain.Address(c.Param("token")), domain.Address(c.Param("owner")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, balance.String())
}

func (h *handler) registerToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Token    domain.Address `json:"token" validate:"required,address"`
		Decimals uint8          `json:"decimals" validate:"lte=36"`
	}

	p := payload{}
	if err := bindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.funds.RegisterToken(ctx, p.Token, p.Decimals); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

func (h *handler) mintFunds(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Token  domain.Address `json:"token" validate:"address"`
		To     domain.Address `json:"to" validate:"required,address"`
		Amount string         `json:"amount" validate:"required,amount"`
	}

	p := payload{Token: domain.NativeToken}
	if err := bindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.funds.Mint(ctx, p.Token, p.To, amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

func (h *handler) approveFunds(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Token   domain.Address `json:"token" validate:"required,address"`
		Spender domain.Address `json:"spender" validate:"required,address"`
		Amount  string         `json:"amount" validate:"required,amount"`
	}

	p := payload{}
	if err := bindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.funds.Approve(ctx, p.Token, caller, p.Spender, amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}
