package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type cacheStats struct {
	Size       int  `json:"size"`
	Capacity   int  `json:"capacity"`
	TTLSeconds int  `json:"ttl_seconds"`
	Shared     bool `json:"shared"`
}

// NewCacheCmd creates the 'cache' command group.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the place cache of a running API",
	}
	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCacheClearCmd())
	return cmd
}

func newCacheStatsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show in-process cache size and capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			var st cacheStats
			if err := apiClient(10*time.Second).GetJSON(cmd.Context(), "cache_stats", strings.TrimRight(addr, "/")+"/v1/cache/stats", &st); err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "size:     %d/%d\nttl:      %s\nshared:   %t\n",
				st.Size, st.Capacity, time.Duration(st.TTLSeconds)*time.Second, st.Shared)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached place search",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			url := strings.TrimRight(addr, "/") + "/v1/cache/places"
			if err := apiClient(10*time.Second).Do(cmd.Context(), "DELETE", "cache_clear", url, nil, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "place cache cleared")
			return nil
		},
	}
}
