package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trip_planner/internal/adapters/httpx"
	"trip_planner/internal/app"
	"trip_planner/internal/bootstrap"
	"trip_planner/internal/domain"
	"trip_planner/internal/shared"
)

// apiClient builds the transport used to reach a running API.
func apiClient(timeout time.Duration) *httpx.Client {
	return httpx.New(httpx.Options{Service: "plannerctl", Timeout: timeout, Retries: 1})
}

// NewPlanCmd creates the 'plan' command.
func NewPlanCmd() *cobra.Command {
	var (
		req       app.PlanRequest
		interests string
		mustSee   string
		pace      string
		local     bool
		asJSON    bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "plan DESTINATION",
		Short: "Plan an itinerary",
		Long: `Plan an itinerary through a running API (--addr) or, with --local,
in-process using the environment configuration of the API.`,
		Example: `  plannerctl plan Paris --start 2025-06-01 --days 3 --budget 900 --currency USD --interests food,culture
  plannerctl plan Rome --days 2 --local --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Destination = args[0]
			req.Interests = splitList(interests)
			req.MustSee = splitList(mustSee)
			req.Pace = domain.Pace(pace)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var (
				it  domain.Itinerary
				err error
			)
			if local {
				it, err = planLocal(ctx, req)
			} else {
				addr, _ := cmd.Flags().GetString("addr")
				err = apiClient(timeout).PostJSON(ctx, "plan", strings.TrimRight(addr, "/")+"/v1/itineraries", req, &it)
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), it)
			}
			printItinerary(cmd.OutOrStdout(), it)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.StartDate, "start", "", "First day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "Departure day (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&req.Days, "days", "d", 0, "Trip length in days (instead of --end)")
	cmd.Flags().IntVarP(&req.Travelers, "travelers", "t", 1, "Party size")
	cmd.Flags().Float64VarP(&req.Budget, "budget", "b", 0, "Total budget")
	cmd.Flags().StringVarP(&req.Currency, "currency", "c", "USD", "ISO currency code")
	cmd.Flags().StringVar(&pace, "pace", "moderate", "relaxed, moderate or fast")
	cmd.Flags().StringVarP(&interests, "interests", "i", "", "Comma separated interests")
	cmd.Flags().StringVar(&mustSee, "must-see", "", "Comma separated must-see places")
	cmd.Flags().IntVar(&req.ActivitiesPerDay, "per-day", 0, "Activities per day (3-6)")
	cmd.Flags().BoolVar(&local, "local", false, "Run the pipeline in-process")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 90*time.Second, "Overall timeout")

	return cmd
}

func planLocal(ctx context.Context, req app.PlanRequest) (domain.Itinerary, error) {
	deps, err := bootstrap.Build(ctx, shared.Load())
	if err != nil {
		return domain.Itinerary{}, err
	}
	defer deps.Close()
	return deps.Planner.PlanItinerary(ctx, req)
}

func printItinerary(w io.Writer, it domain.Itinerary) {
	fmt.Fprintf(w, "%s (%s)\n", it.Destination, it.TripID)
	fmt.Fprintln(w, it.Summary)
	for _, d := range it.Days {
		fmt.Fprintf(w, "\nDay %d  %s\n", d.Day, d.Date)
		for _, a := range d.Activities {
			fmt.Fprintf(w, "  %-9s %-13s %-40s %8.2f %s\n", a.TimeOfDay, a.Category, a.Name, a.Cost.Amount, a.Cost.Currency)
		}
	}
	fmt.Fprintf(w, "\nTotal: %.2f %s  scoring: %s", it.TotalCost.Amount, it.TotalCost.Currency, it.Scoring)
	if it.HealthScore != nil {
		fmt.Fprintf(w, " (%.0f/100 %s)", it.HealthScore.Overall, it.HealthScore.Status)
	}
	fmt.Fprintln(w)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
