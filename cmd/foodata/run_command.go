package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/railway/errors"
	"github.com/kbukum/railway/foodata"
	"github.com/kbukum/railway/logger"
	"github.com/kbukum/railway/pipeline"
	"github.com/kbukum/railway/result"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	var (
		fail       string
		unexpected bool
		direct     bool
		runs       int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Produce FooData and report each stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs < 1 {
				return errors.InvalidInput("runs", "must be at least 1")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			api, repo, err := scriptedCollaborators(fail, unexpected)
			if err != nil {
				return err
			}

			var rec pipeline.Recorder
			svc := foodata.NewService(api, repo,
				pipeline.WithConfig(*cfg),
				pipeline.WithLogger(logger.NewWithWriter(&cfg.Logging, cmd.ErrOrStderr(), cfg.Name)),
				pipeline.WithObserver(rec.Observe),
			)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = svc.Shutdown(ctx)
			}()

			out := cmd.OutOrStdout()
			for i := 0; i < runs; i++ {
				var r result.Result[foodata.FooData, foodata.ErrorKind]
				if direct {
					r, err = svc.GetFooDataDirect()
				} else {
					r, err = svc.GetFooData(cmd.Context())
				}
				if err != nil {
					return fmt.Errorf("run %d: %w", i+1, err)
				}
				fmt.Fprintln(out, foodata.Describe(r))
			}

			if events := rec.Events(); len(events) > 0 {
				fmt.Fprintln(out, renderEvents(events))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fail, "fail", "", "Stage that should fail: get_some_data, get_another_data or get_yet_another_data")
	cmd.Flags().BoolVar(&unexpected, "unexpected", false, "Fail with a fault the classifier does not recognise")
	cmd.Flags().BoolVar(&direct, "direct", false, "Run without the pipeline (no telemetry or events)")
	cmd.Flags().IntVar(&runs, "runs", 1, "Number of runs")
	return cmd
}

func renderEvents(events []pipeline.Event) string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		stage, index := e.Stage, strconv.Itoa(e.Index)
		if e.IsRun() {
			stage, index = "(run)", "-"
		}
		detail := e.Kind
		if e.Err != nil {
			detail = e.Err.Error()
		}
		rows = append(rows, []string{
			shortID(e.RunID),
			stage,
			index,
			e.State.String(),
			detail,
			e.Duration.Round(time.Microsecond).String(),
		})
	}
	return renderTable(
		[]string{"Run", "Stage", "#", "State", "Kind / Error", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight},
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
