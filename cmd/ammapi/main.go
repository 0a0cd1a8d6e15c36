// cmd/ammapi – read-only HTTP query surface over the AMM engine.
// -----------------------------------------------------------------------------
// cmd/dexserver/main.go registers a single /api/pools route on the bare
// net/http mux; this server generalises that to the full set of §6 public
// read queries and routes them through github.com/go-chi/chi/v5, a
// dependency the source declares but never wires into a handler.
// -----------------------------------------------------------------------------
// Routes
//   GET /assets/{id}                        – asset metadata
//   GET /assets/{id}/supply                 – total supply
//   GET /assets/{id}/balances/{addr}        – account balance
//   GET /assets/{id}/allowances/{owner}/{spender}
//   GET /pools/{a}/{b}/liquidity            – pool reserves
//   GET /pools/{a}/{b}/target-amounts?in=&path=1,2,3
//   GET /pools/{a}/{b}/supply-amounts?out=&path=1,2,3
// -----------------------------------------------------------------------------
// Environment
//   AMM_API_ADDR – listen address (default ":8090")
// -----------------------------------------------------------------------------

package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"synnergy-network/amm/core"
	"synnergy-network/amm/pkg/config"
)

type server struct {
	ledger *core.Ledger
	pools  *core.PoolStore
	shares *core.ShareRegistry
	engine *core.Engine
	logger *log.Logger
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": err.Error()})
}

func parseAssetIDParam(r *http.Request, name string) (core.AssetID, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	return core.AssetID(v), err
}

func parseAddressParam(r *http.Request, name string) (core.Address, error) {
	return parseHexAddress(chi.URLParam(r, name))
}

func (s *server) assetInfo(w http.ResponseWriter, r *http.Request) {
	id, err := parseAssetIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	info, ok := s.ledger.AssetInfo(id)
	if !ok {
		writeError(w, http.StatusNotFound, core.ErrAssetNotExists)
		return
	}
	writeJSON(w, map[string]any{
		"name":     strings.TrimRight(string(info.Name[:]), "\x00"),
		"symbol":   strings.TrimRight(string(info.Symbol[:]), "\x00"),
		"decimals": info.Decimals,
	})
}

func (s *server) totalSupply(w http.ResponseWriter, r *http.Request) {
	id, err := parseAssetIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sup := s.ledger.TotalSupply(id)
	writeJSON(w, map[string]string{"supply": sup.String()})
}

func (s *server) balanceOf(w http.ResponseWriter, r *http.Request) {
	id, err := parseAssetIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	addr, err := parseAddressParam(r, "addr")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	bal := s.ledger.BalanceOf(id, addr)
	writeJSON(w, map[string]string{"balance": bal.String()})
}

func (s *server) allowance(w http.ResponseWriter, r *http.Request) {
	id, err := parseAssetIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	owner, err := parseAddressParam(r, "owner")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	spender, err := parseAddressParam(r, "spender")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, map[string]string{"allowance": s.ledger.Allowance(id, owner, spender).String()})
}

func (s *server) getLiquidity(w http.ResponseWriter, r *http.Request) {
	a, errA := parseAssetIDParam(r, "a")
	b, errB := parseAssetIDParam(r, "b")
	if errA != nil || errB != nil {
		writeError(w, http.StatusBadRequest, core.ErrPoolNotFound)
		return
	}
	ra, rb := s.engine.GetLiquidity(a, b)
	writeJSON(w, map[string]string{"reserve_a": ra.String(), "reserve_b": rb.String()})
}

func (s *server) targetAmounts(w http.ResponseWriter, r *http.Request) {
	path, amountIn, err := parsePathQuery(r, "in")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amounts, err := s.engine.GetTargetAmounts(path, amountIn, nil)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, amountsToStrings(amounts))
}

func (s *server) supplyAmounts(w http.ResponseWriter, r *http.Request) {
	path, amountOut, err := parsePathQuery(r, "out")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amounts, err := s.engine.GetSupplyAmounts(path, amountOut, nil)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, amountsToStrings(amounts))
}

func amountsToStrings(amounts []core.Amount) []string {
	out := make([]string, len(amounts))
	for i, a := range amounts {
		out[i] = a.String()
	}
	return out
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/assets/{id}", s.assetInfo)
	r.Get("/assets/{id}/supply", s.totalSupply)
	r.Get("/assets/{id}/balances/{addr}", s.balanceOf)
	r.Get("/assets/{id}/allowances/{owner}/{spender}", s.allowance)
	r.Get("/pools/{a}/{b}/liquidity", s.getLiquidity)
	r.Get("/pools/{a}/{b}/target-amounts", s.targetAmounts)
	r.Get("/pools/{a}/{b}/supply-amounts", s.supplyAmounts)
	return r
}

func main() {
	logger := log.StandardLogger()

	if _, err := config.LoadFromEnv(); err != nil {
		logger.WithError(err).Warn("no config file found, using defaults")
	}

	events := core.NewLogEventSink(logger)
	shares := core.NewShareRegistry()
	ledger := core.NewLedger(logger, events, shares)
	pools := core.NewPoolStore()
	fee := core.FeeSchedule{
		Num: core.AmountFromUint64(config.AppConfig.Fee.Num),
		Den: core.AmountFromUint64(config.AppConfig.Fee.Den),
	}
	engine := core.NewEngine(ledger, pools, shares, core.DefaultAccountDeriver{}, fee, events, logger)

	for _, raw := range config.AppConfig.SeedPairs {
		a, b, err := config.ParsePair(raw)
		if err != nil {
			logger.WithError(err).Warn("skip malformed seed pair")
			continue
		}
		engine.AllowPair(core.AssetID(a), core.AssetID(b))
	}

	s := &server{ledger: ledger, pools: pools, shares: shares, engine: engine, logger: logger}

	addr := config.AppConfig.API.ListenAddr
	if v := os.Getenv("AMM_API_ADDR"); v != "" {
		addr = v
	}
	logger.Infof("ammapi listening on %s", addr)
	logger.Fatal(http.ListenAndServe(addr, s.routes()))
}
