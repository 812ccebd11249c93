package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/drydock/internal/app"
	"github.com/alexanderramin/drydock/internal/contract"
	"github.com/alexanderramin/drydock/internal/report"
	"github.com/alexanderramin/drydock/internal/service"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "drydock <job_json_path> <defaults_json_path>",
		Short:         "Assign shipyard repair projects to berths and hardstands for one planning window.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], args[1], cmd.OutOrStdout())
		},
	}
}

func run(ctx context.Context, jobPath, defaultsPath string, stdout io.Writer) error {
	var observer service.PipelineObserver = service.NoopPipelineObserver{}
	if envEnabled("DRYDOCK_LOG_STAGES") {
		observer = service.NewLogPipelineObserver(os.Stderr)
	}

	optimizer := service.NewOptimizeService(observer)

	resp, err := optimizer.Optimize(ctx, contract.OptimizeRequest{
		JobPath:      jobPath,
		DefaultsPath: defaultsPath,
	})
	if err != nil {
		return classifyExit(err)
	}

	if err := report.WriteSchedule(stdout, resp.Schedule); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}
	return report.WriteSummary(stdout, resp)
}

// classifyExit rewrites an *app.OptimizeError as a plain "CODE: message"
// error and returns any other error unchanged; a non-nil result is enough
// to make main exit non-zero: 0 on OPTIMAL, non-zero on any other
// termination.
func classifyExit(err error) error {
	if optErr, ok := err.(*app.OptimizeError); ok {
		return fmt.Errorf("%s: %s", optErr.Code, optErr.Message)
	}
	return err
}

func envEnabled(key string) bool {
	switch os.Getenv(key) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
