// package main holds the workforce scheduling CLI entrypoint.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/nextmv-io/sdk"
	"github.com/nextmv-io/sdk/run"
	"github.com/nextmv-io/sdk/run/schema"
	"github.com/nextmv-io/sdk/run/statistics"

	"github.com/nextshift/workforce-scheduler/internal/api"
	"github.com/nextshift/workforce-scheduler/internal/optimizer"
	"github.com/nextshift/workforce-scheduler/internal/schedule"
)

func main() {
	err := run.CLI(solver).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// solution is the single entry appended to schema.Output's Solutions list.
type solution struct {
	api.Response
	Status string `json:"status"`
}

// solver is the run.CLI entrypoint: it translates the wire request into
// the domain model, runs the optimizer, and formats the result the way
// every template in this stack formats a schema.Output, tracking its own
// wall time since Optimize intentionally does not leak the solver's
// internal mip.Solution across the internal/optimizer package boundary.
func solver(_ context.Context, req api.Request, opts api.Options) (schema.Output, error) {
	start := time.Now()

	result, optErr := optimizer.Optimize(api.ToRequest(req), opts.Solve, os.Stderr)

	o := schema.Output{}
	o.Version = schema.Version{Sdk: sdk.VERSION}

	stats := statistics.NewStatistics()
	run := statistics.Run{}
	statsResult := statistics.Result{}

	elapsed := round(time.Since(start).Seconds())
	run.Duration = &elapsed
	statsResult.Duration = &elapsed

	if optErr != nil {
		schedErr, ok := optErr.(*schedule.Error)
		if !ok {
			return schema.Output{}, optErr
		}
		o.Solutions = append(o.Solutions, solution{
			Response: api.FromResult(result),
			Status:   schedErr.Kind.String(),
		})
		stats.Run = &run
		stats.Result = &statsResult
		o.Statistics = stats
		return o, nil
	}

	status := "suboptimal"
	if result.Optimal {
		status = "optimal"
	}

	val := statistics.Float64(round(result.Objective))
	statsResult.Value = &val

	o.Solutions = append(o.Solutions, solution{
		Response: api.FromResult(result),
		Status:   status,
	})
	stats.Run = &run
	stats.Result = &statsResult
	o.Statistics = stats

	return o, nil
}

func round(f float64) float64 {
	return float64(int64(f*1e6)) / 1e6
}
