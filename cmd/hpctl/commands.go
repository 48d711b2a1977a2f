package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"hpportal/internal/character"
	"hpportal/internal/house"
	"hpportal/internal/platform/config"
	"hpportal/internal/platform/hpapi"

	"github.com/spf13/cobra"
)

const userAgent = "hpctl/1.0"

type rootOptions struct {
	baseURL string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "hpctl",
		Short:         "Browse Harry Potter characters and houses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", config.DefaultHPAPIBaseURL, "Character API base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", config.DefaultHPAPITimeout, "Upstream request timeout")

	cmd.AddCommand(newCharactersCmd(opts))
	cmd.AddCommand(newHousesCmd())
	return cmd
}

func newCharactersCmd(root *rootOptions) *cobra.Command {
	var req character.PageRequest

	cmd := &cobra.Command{
		Use:   "characters",
		Short: "Search characters by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := hpapi.NewClient(
				hpapi.WithBaseURL(root.baseURL),
				hpapi.WithTimeout(root.timeout),
				hpapi.WithUserAgent(userAgent),
			)
			svc := character.NewService(character.NewCache(client))

			res, err := svc.List(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printCharacters(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&req.Query, "query", "q", "", "Case-insensitive name filter")
	cmd.Flags().IntVar(&req.Page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&req.PageSize, "page-size", character.DefaultPageSize, "Characters per page")
	return cmd
}

func newHousesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "houses",
		Short: "List the Hogwarts houses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printHouses(cmd.OutOrStdout(), house.All())
		},
	}
}

func printCharacters(w io.Writer, res character.PageResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tHOUSE\tPATRONUS")
	for _, c := range res.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", orDash(c.Name), orDash(c.House), orDash(c.Patronus))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	footer := fmt.Sprintf("page %d/%d, %d match(es)", res.Page, max(res.TotalPages, 1), res.Total)
	if res.HasNext {
		footer += fmt.Sprintf(", next: --page %d", res.NextPage)
	}
	_, err := fmt.Fprintln(w, footer)
	return err
}

func printHouses(w io.Writer, houses []house.House) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HOUSE\tCOLORS\tMOTTO")
	for _, h := range houses {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", h.Symbol, h.Name, strings.Join(h.Colors[:], "/"), h.Motto)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
