package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/chanwatch/pkg/exchange/binance"
	"github.com/spf13/cobra"
)

func buildBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [ASSET]",
		Short: "Show Binance spot balances",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBalance,
	}
}

func buildPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price SYMBOL",
		Short: "Show the last Binance spot price of a symbol (e.g. BTCUSDT)",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrice,
	}
}

func newExchange(cmd *cobra.Command) (*binance.Client, error) {
	return binance.New(cmd.Context(), log, binance.Config{
		APIKey:     appConfig.Binance.APIKey,
		APISecret:  appConfig.Binance.SecretKey,
		UseTestnet: appConfig.Binance.UseTestnet,
	})
}

func runBalance(cmd *cobra.Command, args []string) error {
	client, err := newExchange(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		asset := strings.ToUpper(args[0])
		free, err := client.Balance(cmd.Context(), asset)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %.8f\n", asset, free)
		return nil
	}

	balances, err := client.Account(cmd.Context())
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Asset", "Free", "Locked"})
	for _, b := range balances {
		table.Append([]string{b.Asset, fmt.Sprintf("%.8f", b.Free), fmt.Sprintf("%.8f", b.Locked)})
	}
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
	table.Render()
	return nil
}

func runPrice(cmd *cobra.Command, args []string) error {
	client, err := newExchange(cmd)
	if err != nil {
		return err
	}

	symbol := strings.ToUpper(args[0])
	price, err := client.Price(cmd.Context(), symbol)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", symbol, strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.8f", price), "0"), "."))
	return nil
}
