package main

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"synnergy-network/amm/core"
)

func parseAmount(s string) (core.Amount, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return core.ZeroAmount(), fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return *v, nil
}

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a new plain asset",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		amountStr, _ := cmd.Flags().GetString("amount")
		name, _ := cmd.Flags().GetString("name")
		symbol, _ := cmd.Flags().GetString("symbol")
		decimals, _ := cmd.Flags().GetUint8("decimals")

		ownerAddr, err := parseAddress(owner)
		if err != nil {
			return err
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			return err
		}

		var info core.AssetInfo
		copy(info.Name[:], name)
		copy(info.Symbol[:], symbol)
		info.Decimals = decimals

		id := ledger.Issue(ownerAddr, amount, info)
		fmt.Printf("asset %d issued to %s, total=%s\n", id, ownerAddr, amount.String())
		return nil
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer an asset between accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, _ := cmd.Flags().GetUint64("asset")
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")
		amountStr, _ := cmd.Flags().GetString("amount")

		from, err := parseAddress(fromStr)
		if err != nil {
			return err
		}
		to, err := parseAddress(toStr)
		if err != nil {
			return err
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			return err
		}
		if err := ledger.Transfer(core.AssetID(asset), from, to, amount); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve a spender to draw from owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, _ := cmd.Flags().GetUint64("asset")
		ownerStr, _ := cmd.Flags().GetString("owner")
		spenderStr, _ := cmd.Flags().GetString("spender")
		amountStr, _ := cmd.Flags().GetString("amount")

		owner, err := parseAddress(ownerStr)
		if err != nil {
			return err
		}
		spender, err := parseAddress(spenderStr)
		if err != nil {
			return err
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			return err
		}
		ledger.Approve(core.AssetID(asset), owner, spender, amount)
		fmt.Println("ok")
		return nil
	},
}

var transferFromCmd = &cobra.Command{
	Use:   "transfer-from",
	Short: "Transfer an asset on behalf of owner, drawing down an allowance",
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, _ := cmd.Flags().GetUint64("asset")
		ownerStr, _ := cmd.Flags().GetString("owner")
		spenderStr, _ := cmd.Flags().GetString("spender")
		toStr, _ := cmd.Flags().GetString("to")
		amountStr, _ := cmd.Flags().GetString("amount")

		owner, err := parseAddress(ownerStr)
		if err != nil {
			return err
		}
		spender, err := parseAddress(spenderStr)
		if err != nil {
			return err
		}
		to, err := parseAddress(toStr)
		if err != nil {
			return err
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			return err
		}
		if err := ledger.TransferFrom(core.AssetID(asset), owner, spender, to, amount); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint an existing asset to an account (saturating)",
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, _ := cmd.Flags().GetUint64("asset")
		toStr, _ := cmd.Flags().GetString("to")
		amountStr, _ := cmd.Flags().GetString("amount")

		to, err := parseAddress(toStr)
		if err != nil {
			return err
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			return err
		}
		if err := ledger.Mint(core.AssetID(asset), to, amount); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var burnCmd = &cobra.Command{
	Use:   "burn",
	Short: "Burn an asset from an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, _ := cmd.Flags().GetUint64("asset")
		fromStr, _ := cmd.Flags().GetString("from")
		amountStr, _ := cmd.Flags().GetString("amount")

		from, err := parseAddress(fromStr)
		if err != nil {
			return err
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			return err
		}
		if err := ledger.Burn(core.AssetID(asset), from, amount); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show an account's balance of an asset",
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, _ := cmd.Flags().GetUint64("asset")
		who, _ := cmd.Flags().GetString("who")
		addr, err := parseAddress(who)
		if err != nil {
			return err
		}
		bal := ledger.BalanceOf(core.AssetID(asset), addr)
		fmt.Println(bal.String())
		return nil
	},
}

var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Show an asset's total supply",
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, _ := cmd.Flags().GetUint64("asset")
		fmt.Println(ledger.TotalSupply(core.AssetID(asset)).String())
		return nil
	},
}

var allowanceCmd = &cobra.Command{
	Use:   "allowance",
	Short: "Show the remaining allowance a spender has from an owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, _ := cmd.Flags().GetUint64("asset")
		ownerStr, _ := cmd.Flags().GetString("owner")
		spenderStr, _ := cmd.Flags().GetString("spender")
		owner, err := parseAddress(ownerStr)
		if err != nil {
			return err
		}
		spender, err := parseAddress(spenderStr)
		if err != nil {
			return err
		}
		fmt.Println(ledger.Allowance(core.AssetID(asset), owner, spender).String())
		return nil
	},
}

func init() {
	issueCmd.Flags().String("owner", "", "owner address (hex)")
	issueCmd.Flags().String("amount", "", "total supply to mint at issuance")
	issueCmd.Flags().String("name", "", "asset name")
	issueCmd.Flags().String("symbol", "", "asset symbol")
	issueCmd.Flags().Uint8("decimals", 0, "decimal places")

	transferCmd.Flags().Uint64("asset", 0, "asset id")
	transferCmd.Flags().String("from", "", "sender address (hex)")
	transferCmd.Flags().String("to", "", "recipient address (hex)")
	transferCmd.Flags().String("amount", "", "amount to transfer")

	approveCmd.Flags().Uint64("asset", 0, "asset id")
	approveCmd.Flags().String("owner", "", "owner address (hex)")
	approveCmd.Flags().String("spender", "", "spender address (hex)")
	approveCmd.Flags().String("amount", "", "allowance amount")

	transferFromCmd.Flags().Uint64("asset", 0, "asset id")
	transferFromCmd.Flags().String("owner", "", "owner address (hex)")
	transferFromCmd.Flags().String("spender", "", "spender address (hex)")
	transferFromCmd.Flags().String("to", "", "recipient address (hex)")
	transferFromCmd.Flags().String("amount", "", "amount to transfer")

	mintCmd.Flags().Uint64("asset", 0, "asset id")
	mintCmd.Flags().String("to", "", "recipient address (hex)")
	mintCmd.Flags().String("amount", "", "amount to mint")

	burnCmd.Flags().Uint64("asset", 0, "asset id")
	burnCmd.Flags().String("from", "", "account to burn from (hex)")
	burnCmd.Flags().String("amount", "", "amount to burn")

	balanceCmd.Flags().Uint64("asset", 0, "asset id")
	balanceCmd.Flags().String("who", "", "account address (hex)")

	supplyCmd.Flags().Uint64("asset", 0, "asset id")

	allowanceCmd.Flags().Uint64("asset", 0, "asset id")
	allowanceCmd.Flags().String("owner", "", "owner address (hex)")
	allowanceCmd.Flags().String("spender", "", "spender address (hex)")

	rootCmd.AddCommand(issueCmd, transferCmd, approveCmd, transferFromCmd, mintCmd, burnCmd, balanceCmd, supplyCmd, allowanceCmd)
}
