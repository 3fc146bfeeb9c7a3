package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/vnphone/staff-portal/internal/catalog"
	"github.com/vnphone/staff-portal/pkg/logger"

	"github.com/spf13/cobra"
)

var catalogBrand string

var catalogCmd = &cobra.Command{
	Use:       "catalog [cash|installment]",
	Short:     "Print the current price catalog",
	Long:      `Fetch the pricing spreadsheet and print one brand grouped by model, in display order. Without --brand, list the brands.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(catalog.KindCash), string(catalog.KindInstallment)},
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		svc := newCatalogService(cfg, catalog.NewMemoryCache(), logger.LoggerWrapper())
		kind := catalog.Kind(args[0])

		if catalogBrand == "" {
			brands, err := svc.Brands(cmd.Context(), kind)
			if err != nil {
				log.Fatalf("failed to load %s catalog: %v", kind, err)
			}
			fmt.Println(strings.Join(brands, "\n"))
			return
		}

		var groups []catalog.ModelGroup
		if kind == catalog.KindCash {
			groups, err = svc.GroupedCash(cmd.Context(), catalogBrand)
		} else {
			groups, err = svc.GroupedInstallment(cmd.Context(), catalogBrand)
		}
		if err != nil {
			log.Fatalf("failed to load %s catalog: %v", args[0], err)
		}

		printGroups(os.Stdout, catalogBrand, groups)
	},
}

func printGroups(w io.Writer, brand string, groups []catalog.ModelGroup) {
	fmt.Fprintf(w, "%s (%d models)\n", brand, len(groups))
	for _, g := range groups {
		price := "-"
		if g.MinPrice != nil {
			price = catalog.FormatPrice(*g.MinPrice)
			if g.MaxPrice != nil && *g.MaxPrice != *g.MinPrice {
				price += " - " + catalog.FormatPrice(*g.MaxPrice)
			}
		}
		fmt.Fprintf(w, "  %-28s %-24s %s\n",
			catalog.ShortName(g.Brand, g.Model),
			strings.Join(g.Storages, ", "),
			price)
	}
}

func init() {
	catalogCmd.Flags().StringVar(&catalogBrand, "brand", "", "brand to print; empty lists brands")
}
