// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/lswap/api/utils"
	"github.com/vechain/lswap/dsa"
	"github.com/vechain/lswap/executor"
	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool"
	"github.com/vechain/lswap/pool/reverts"
)

type Pool struct {
	exec      *executor.Executor
	custodian *lswap.Address
}

// New creates the pool API. custodian attests the funds attached to calls; when nil,
// calls attaching funds are refused.
func New(exec *executor.Executor, custodian *lswap.Address) *Pool {
	return &Pool{exec: exec, custodian: custodian}
}

// callError maps a failed call to its response status.
func callError(err error) error {
	switch reverts.KindOf(err) {
	case reverts.Validation:
		return utils.BadRequest(err)
	case reverts.Authorization:
		return utils.Forbidden(err)
	case reverts.State:
		return utils.Conflict(err)
	default:
		return err
	}
}

func (p *Pool) respond(w http.ResponseWriter, res *pool.Response, err error) error {
	if err != nil {
		return callError(err)
	}
	return utils.WriteJSON(w, res)
}

type arguments interface {
	common() *Call
}

// authenticate decodes the signed call of req into args and returns its signer.
// Attached funds must be attested by the custodian.
func (p *Pool) authenticate(req *http.Request, action string, args arguments) (*executor.Caller, error) {
	var signed SignedCall
	if err := utils.ParseJSON(req.Body, &signed); err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := utils.ParseJSON(bytes.NewReader(signed.Call), args); err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "call"))
	}

	hash := SigningHash(action, signed.Call)
	sender, err := dsa.Signer(hash, signed.Signature)
	if err != nil {
		return nil, utils.Unauthorized(errors.WithMessage(err, "signature"))
	}

	call := args.common()
	if len(call.Funds) > 0 {
		if p.custodian == nil {
			return nil, utils.Forbidden(errors.New("funds are not accepted without a custodian"))
		}
		if len(signed.CustodianSignature) == 0 {
			return nil, utils.Forbidden(errors.New("funds not attested"))
		}
		custodian, err := dsa.Signer(CustodianSigningHash(hash, sender), signed.CustodianSignature)
		if err != nil || custodian != *p.custodian {
			return nil, utils.Forbidden(errors.New("funds not attested by the custodian"))
		}
	}
	return p.exec.As(sender, call.Nonce), nil
}

func (p *Pool) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	var call Call
	caller, err := p.authenticate(req, ActionDeposit, &call)
	if err != nil {
		return err
	}
	res, err := caller.Deposit(call.Funds)
	return p.respond(w, res, err)
}

func (p *Pool) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	var call Call
	caller, err := p.authenticate(req, ActionWithdraw, &call)
	if err != nil {
		return err
	}
	res, err := caller.Withdraw(call.Funds)
	return p.respond(w, res, err)
}

func (p *Pool) handleClaim(w http.ResponseWriter, req *http.Request) error {
	var call Call
	caller, err := p.authenticate(req, ActionClaim, &call)
	if err != nil {
		return err
	}
	res, err := caller.Claim(call.Funds)
	return p.respond(w, res, err)
}

func (p *Pool) handleSetFeeRate(w http.ResponseWriter, req *http.Request) error {
	var call SetFeeRate
	caller, err := p.authenticate(req, ActionSetFee, &call)
	if err != nil {
		return err
	}
	res, err := caller.SetFeeRate(call.Funds, call.FeeRate)
	return p.respond(w, res, err)
}

func (p *Pool) handleReplenish(w http.ResponseWriter, req *http.Request) error {
	var call Call
	caller, err := p.authenticate(req, ActionReplenish, &call)
	if err != nil {
		return err
	}
	res, err := caller.Replenish(call.Funds)
	return p.respond(w, res, err)
}

func (p *Pool) handleReceive(w http.ResponseWriter, req *http.Request) error {
	var call Receive
	caller, err := p.authenticate(req, ActionReceive, &call)
	if err != nil {
		return err
	}
	res, err := caller.Receive(req.Context(), call.Origin, call.Amount, call.Funds)
	return p.respond(w, res, err)
}

func (p *Pool) handleGetNonce(w http.ResponseWriter, req *http.Request) error {
	addr, err := lswap.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	nonce, err := p.exec.NonceOf(*addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, Nonce{Nonce: nonce})
}

func methodNotAllowed(http.ResponseWriter, *http.Request) error {
	return utils.HTTPError(errors.New("method not allowed"), http.StatusMethodNotAllowed)
}

func (p *Pool) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	cfg, err := p.exec.Config()
	if err != nil {
		return err
	}
	version, err := p.exec.Version()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{
		"config":  cfg,
		"version": version,
	})
}

func (p *Pool) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	status, err := p.exec.Status()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, status)
}

func (p *Pool) handleGetClaimable(w http.ResponseWriter, req *http.Request) error {
	claimable, err := p.exec.ClaimableOf(mux.Vars(req)["address"])
	if err != nil {
		return callError(err)
	}
	return utils.WriteJSON(w, claimable)
}

func (p *Pool) handleGetOrders(w http.ResponseWriter, req *http.Request) error {
	limit := 0
	if s := req.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return utils.BadRequest(errors.New("limit: non-negative integer expected"))
		}
		limit = n
	}
	book, err := p.exec.OrderBook(limit)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, book)
}

func (p *Pool) handleGetOrder(w http.ResponseWriter, req *http.Request) error {
	info, err := p.exec.OrderInfoOf(mux.Vars(req)["address"])
	if err != nil {
		return callError(err)
	}
	if info == nil {
		return utils.HTTPError(errors.New("no active order"), http.StatusNotFound)
	}
	return utils.WriteJSON(w, info)
}

func (p *Pool) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	calls := []struct {
		path    string
		name    string
		handler utils.HandlerFunc
	}{
		{"/" + ActionDeposit, "pool_deposit", p.handleDeposit},
		{"/" + ActionWithdraw, "pool_withdraw", p.handleWithdraw},
		{"/" + ActionClaim, "pool_claim", p.handleClaim},
		{"/" + ActionSetFee, "pool_set_fee", p.handleSetFeeRate},
		{"/" + ActionReceive, "pool_receive", p.handleReceive},
		{"/" + ActionReplenish, "pool_replenish", p.handleReplenish},
	}
	for _, c := range calls {
		sub.Path(c.path).
			Methods(http.MethodPost).
			Name(c.name).
			HandlerFunc(utils.WrapHandlerFunc(c.handler))
	}

	sub.Path("/config").
		Methods(http.MethodGet).
		Name("pool_get_config").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetConfig))
	sub.Path("/status").
		Methods(http.MethodGet).
		Name("pool_get_status").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetStatus))
	sub.Path("/claimable/{address}").
		Methods(http.MethodGet).
		Name("pool_get_claimable").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetClaimable))
	sub.Path("/orders").
		Methods(http.MethodGet).
		Name("pool_get_orders").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetOrders))
	sub.Path("/orders/{address}").
		Methods(http.MethodGet).
		Name("pool_get_order").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetOrder))
	sub.Path("/nonce/{address}").
		Methods(http.MethodGet).
		Name("pool_get_nonce").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetNonce))

	// mux reports a method mismatch inside a subrouter as not found, unless
	// a route of the same path takes any method.
	for _, path := range []string{
		"/" + ActionDeposit, "/" + ActionWithdraw, "/" + ActionClaim, "/" + ActionSetFee,
		"/" + ActionReceive, "/" + ActionReplenish,
		"/config", "/status", "/claimable/{address}", "/orders", "/orders/{address}", "/nonce/{address}",
	} {
		sub.Path(path).HandlerFunc(utils.WrapHandlerFunc(methodNotAllowed))
	}
}
