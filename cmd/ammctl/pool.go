package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"synnergy-network/amm/core"
)

var allowPairCmd = &cobra.Command{
	Use:   "allow-pair",
	Short: "Admit a trading pair for swaps and liquidity provision",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _ := cmd.Flags().GetUint64("a")
		b, _ := cmd.Flags().GetUint64("b")
		engine.AllowPair(core.AssetID(a), core.AssetID(b))
		fmt.Println("ok")
		return nil
	},
}

var disallowPairCmd = &cobra.Command{
	Use:   "disallow-pair",
	Short: "Revoke admission for a trading pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _ := cmd.Flags().GetUint64("a")
		b, _ := cmd.Flags().GetUint64("b")
		engine.DisallowPair(core.AssetID(a), core.AssetID(b))
		fmt.Println("ok")
		return nil
	},
}

var getLiquidityCmd = &cobra.Command{
	Use:   "get-liquidity",
	Short: "Show a pair's reserves",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _ := cmd.Flags().GetUint64("a")
		b, _ := cmd.Flags().GetUint64("b")
		ra, rb := engine.GetLiquidity(core.AssetID(a), core.AssetID(b))
		fmt.Printf("%s: %s\n%s: %s\n", cmd.Flag("a").Value, ra.String(), cmd.Flag("b").Value, rb.String())
		return nil
	},
}

func parsePath(s string) ([]core.AssetID, error) {
	parts := strings.Split(s, ",")
	path := make([]core.AssetID, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid path entry %q: %w", p, err)
		}
		path = append(path, core.AssetID(v))
	}
	return path, nil
}

func parseImpactLimit(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid impact limit %q: %w", s, err)
	}
	return &d, nil
}

var addLiquidityCmd = &cobra.Command{
	Use:   "add-liquidity",
	Short: "Provision a pair, minting share tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		whoStr, _ := cmd.Flags().GetString("who")
		a, _ := cmd.Flags().GetUint64("a")
		b, _ := cmd.Flags().GetUint64("b")
		maxAStr, _ := cmd.Flags().GetString("max-a")
		maxBStr, _ := cmd.Flags().GetString("max-b")

		who, err := parseAddress(whoStr)
		if err != nil {
			return err
		}
		maxA, err := parseAmount(maxAStr)
		if err != nil {
			return err
		}
		maxB, err := parseAmount(maxBStr)
		if err != nil {
			return err
		}
		useA, useB, minted, err := engine.AddLiquidity(who, core.AssetID(a), core.AssetID(b), maxA, maxB)
		if err != nil {
			return err
		}
		fmt.Printf("used_a=%s used_b=%s shares=%s\n", useA.String(), useB.String(), minted.String())
		return nil
	},
}

var removeLiquidityCmd = &cobra.Command{
	Use:   "remove-liquidity",
	Short: "Burn share tokens for a proportional share of the pair's reserves",
	RunE: func(cmd *cobra.Command, args []string) error {
		whoStr, _ := cmd.Flags().GetString("who")
		a, _ := cmd.Flags().GetUint64("a")
		b, _ := cmd.Flags().GetUint64("b")
		sharesStr, _ := cmd.Flags().GetString("shares")

		who, err := parseAddress(whoStr)
		if err != nil {
			return err
		}
		shareAmount, err := parseAmount(sharesStr)
		if err != nil {
			return err
		}
		outA, outB, err := engine.RemoveLiquidity(who, core.AssetID(a), core.AssetID(b), shareAmount)
		if err != nil {
			return err
		}
		fmt.Printf("out_a=%s out_b=%s\n", outA.String(), outB.String())
		return nil
	},
}

var swapExactSupplyCmd = &cobra.Command{
	Use:   "swap-exact-supply",
	Short: "Swap a known input amount along a path for at least min-out",
	RunE: func(cmd *cobra.Command, args []string) error {
		whoStr, _ := cmd.Flags().GetString("who")
		pathStr, _ := cmd.Flags().GetString("path")
		amountInStr, _ := cmd.Flags().GetString("amount-in")
		minOutStr, _ := cmd.Flags().GetString("min-out")
		impactStr, _ := cmd.Flags().GetString("impact-limit")

		who, err := parseAddress(whoStr)
		if err != nil {
			return err
		}
		path, err := parsePath(pathStr)
		if err != nil {
			return err
		}
		amountIn, err := parseAmount(amountInStr)
		if err != nil {
			return err
		}
		minOut, err := parseAmount(minOutStr)
		if err != nil {
			return err
		}
		limit, err := parseImpactLimit(impactStr)
		if err != nil {
			return err
		}
		out, err := engine.DoSwapWithExactSupply(who, path, amountIn, minOut, limit)
		if err != nil {
			return err
		}
		fmt.Println(out.String())
		return nil
	},
}

var swapExactTargetCmd = &cobra.Command{
	Use:   "swap-exact-target",
	Short: "Swap for a known output amount along a path, spending at most max-in",
	RunE: func(cmd *cobra.Command, args []string) error {
		whoStr, _ := cmd.Flags().GetString("who")
		pathStr, _ := cmd.Flags().GetString("path")
		amountOutStr, _ := cmd.Flags().GetString("amount-out")
		maxInStr, _ := cmd.Flags().GetString("max-in")
		impactStr, _ := cmd.Flags().GetString("impact-limit")

		who, err := parseAddress(whoStr)
		if err != nil {
			return err
		}
		path, err := parsePath(pathStr)
		if err != nil {
			return err
		}
		amountOut, err := parseAmount(amountOutStr)
		if err != nil {
			return err
		}
		maxIn, err := parseAmount(maxInStr)
		if err != nil {
			return err
		}
		limit, err := parseImpactLimit(impactStr)
		if err != nil {
			return err
		}
		in, err := engine.DoSwapWithExactTarget(who, path, amountOut, maxIn, limit)
		if err != nil {
			return err
		}
		fmt.Println(in.String())
		return nil
	},
}

var getTargetAmountsCmd = &cobra.Command{
	Use:   "get-target-amounts",
	Short: "Preview the output of each hop for a given input, without executing",
	RunE: func(cmd *cobra.Command, args []string) error {
		pathStr, _ := cmd.Flags().GetString("path")
		amountInStr, _ := cmd.Flags().GetString("amount-in")
		impactStr, _ := cmd.Flags().GetString("impact-limit")

		path, err := parsePath(pathStr)
		if err != nil {
			return err
		}
		amountIn, err := parseAmount(amountInStr)
		if err != nil {
			return err
		}
		limit, err := parseImpactLimit(impactStr)
		if err != nil {
			return err
		}
		amounts, err := engine.GetTargetAmounts(path, amountIn, limit)
		if err != nil {
			return err
		}
		for i, a := range amounts {
			fmt.Printf("hop %d: %s\n", i, a.String())
		}
		return nil
	},
}

var getSupplyAmountsCmd = &cobra.Command{
	Use:   "get-supply-amounts",
	Short: "Preview the required input of each hop for a desired final output",
	RunE: func(cmd *cobra.Command, args []string) error {
		pathStr, _ := cmd.Flags().GetString("path")
		amountOutStr, _ := cmd.Flags().GetString("amount-out")
		impactStr, _ := cmd.Flags().GetString("impact-limit")

		path, err := parsePath(pathStr)
		if err != nil {
			return err
		}
		amountOut, err := parseAmount(amountOutStr)
		if err != nil {
			return err
		}
		limit, err := parseImpactLimit(impactStr)
		if err != nil {
			return err
		}
		amounts, err := engine.GetSupplyAmounts(path, amountOut, limit)
		if err != nil {
			return err
		}
		for i, a := range amounts {
			fmt.Printf("hop %d: %s\n", i, a.String())
		}
		return nil
	},
}

func init() {
	allowPairCmd.Flags().Uint64("a", 0, "first asset id")
	allowPairCmd.Flags().Uint64("b", 0, "second asset id")

	disallowPairCmd.Flags().Uint64("a", 0, "first asset id")
	disallowPairCmd.Flags().Uint64("b", 0, "second asset id")

	getLiquidityCmd.Flags().Uint64("a", 0, "first asset id")
	getLiquidityCmd.Flags().Uint64("b", 0, "second asset id")

	addLiquidityCmd.Flags().String("who", "", "provider address (hex)")
	addLiquidityCmd.Flags().Uint64("a", 0, "first asset id")
	addLiquidityCmd.Flags().Uint64("b", 0, "second asset id")
	addLiquidityCmd.Flags().String("max-a", "", "max amount of a to contribute")
	addLiquidityCmd.Flags().String("max-b", "", "max amount of b to contribute")

	removeLiquidityCmd.Flags().String("who", "", "provider address (hex)")
	removeLiquidityCmd.Flags().Uint64("a", 0, "first asset id")
	removeLiquidityCmd.Flags().Uint64("b", 0, "second asset id")
	removeLiquidityCmd.Flags().String("shares", "", "share amount to burn")

	swapExactSupplyCmd.Flags().String("who", "", "trader address (hex)")
	swapExactSupplyCmd.Flags().String("path", "", "comma-separated asset id path")
	swapExactSupplyCmd.Flags().String("amount-in", "", "exact input amount")
	swapExactSupplyCmd.Flags().String("min-out", "0", "minimum acceptable output")
	swapExactSupplyCmd.Flags().String("impact-limit", "", "optional price-impact ratio limit (e.g. 0.5)")

	swapExactTargetCmd.Flags().String("who", "", "trader address (hex)")
	swapExactTargetCmd.Flags().String("path", "", "comma-separated asset id path")
	swapExactTargetCmd.Flags().String("amount-out", "", "exact output amount desired")
	swapExactTargetCmd.Flags().String("max-in", "", "maximum acceptable input")
	swapExactTargetCmd.Flags().String("impact-limit", "", "optional price-impact ratio limit (e.g. 0.5)")

	getTargetAmountsCmd.Flags().String("path", "", "comma-separated asset id path")
	getTargetAmountsCmd.Flags().String("amount-in", "", "input amount")
	getTargetAmountsCmd.Flags().String("impact-limit", "", "optional price-impact ratio limit")

	getSupplyAmountsCmd.Flags().String("path", "", "comma-separated asset id path")
	getSupplyAmountsCmd.Flags().String("amount-out", "", "desired final output amount")
	getSupplyAmountsCmd.Flags().String("impact-limit", "", "optional price-impact ratio limit")

	rootCmd.AddCommand(allowPairCmd, disallowPairCmd, getLiquidityCmd, addLiquidityCmd, removeLiquidityCmd,
		swapExactSupplyCmd, swapExactTargetCmd, getTargetAmountsCmd, getSupplyAmountsCmd)
}
