// cmd/ammctl – in-process AMM administration CLI.
// -----------------------------------------------------------------------------
// Unlike cmd/cli/ledger.go's JSON-over-TCP dial to a running daemon, ammctl
// embeds the ledger, pool store and engine directly in the process: every
// invocation starts from an empty in-memory ledger and pool set (plus any
// seed pairs from the config), applies one operation, and exits. No state is
// persisted between invocations. There is no long-running daemon to dial.
// -----------------------------------------------------------------------------
// Examples (the command syntax; each runs against its own fresh state)
//   ammctl issue --owner 0xabc... --amount 1000000 --name Token --symbol TOK
//   ammctl transfer --asset 1 --from 0xabc... --to 0xdef... --amount 250
//   ammctl allow-pair --a 1 --b 2
//   ammctl add-liquidity --who 0xabc... --a 1 --b 2 --max-a 10000 --max-b 20000
//   ammctl swap-exact-supply --who 0xabc... --path 1,2,3 --amount-in 1000 --min-out 1
// -----------------------------------------------------------------------------
// Configuration
//   --config – config file whose fee.num, fee.den (default 3/1000) and
//              seed_pairs keys are read
// -----------------------------------------------------------------------------

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	log "github.com/sirupsen/logrus"

	"synnergy-network/amm/core"
	"synnergy-network/amm/pkg/config"
)

var (
	ledger *core.Ledger
	pools  *core.PoolStore
	shares *core.ShareRegistry
	engine *core.Engine
	logger = log.StandardLogger()
)

func initState() {
	events := core.NewLogEventSink(logger)
	shares = core.NewShareRegistry()
	ledger = core.NewLedger(logger, events, shares)
	pools = core.NewPoolStore()
	fee := core.FeeSchedule{
		Num: core.AmountFromUint64(viper.GetUint64("fee.num")),
		Den: core.AmountFromUint64(viper.GetUint64("fee.den")),
	}
	engine = core.NewEngine(ledger, pools, shares, core.DefaultAccountDeriver{}, fee, events, logger)

	for _, raw := range viper.GetStringSlice("seed_pairs") {
		a, b, err := config.ParsePair(raw)
		if err != nil {
			logger.WithError(err).Warn("skip malformed seed pair")
			continue
		}
		engine.AllowPair(core.AssetID(a), core.AssetID(b))
	}
}

func parseAddress(s string) (core.Address, error) {
	var a core.Address
	b, err := hex.DecodeString(trimHexPrefix(s))
	if err != nil {
		return a, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(b) != len(a) {
		return a, fmt.Errorf("invalid address %q: want %d bytes, got %d", s, len(a), len(b))
	}
	copy(a[:], b)
	return a, nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

var rootCmd = &cobra.Command{
	Use:   "ammctl",
	Short: "Administer an AMM pool set and its asset ledger",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cobra.OnInitialize(initRootConfig)
		initRootConfig()
		initState()
		return nil
	},
}

func initRootConfig() {
	viper.SetEnvPrefix("amm")
	viper.AutomaticEnv()
	viper.SetDefault("fee.num", uint64(3))
	viper.SetDefault("fee.den", uint64(1000))

	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		_ = viper.ReadInConfig()
	}
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
