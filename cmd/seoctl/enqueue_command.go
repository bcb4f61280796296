package main

import (
	"errors"
	"strings"

	"github.com/kumar045/seo-website/internal/jobs"
	"github.com/kumar045/seo-website/internal/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoRedis = errors.New("enqueue needs a shared queue: set redis.addr or REDIS_ADDR")

func newEnqueueCommand(a *app) *cobra.Command {
	var surface string

	cmd := &cobra.Command{
		Use:   "enqueue <keyword>",
		Short: "Queue content generation for a running server's worker",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := model.ParseSurface(surface)
			if err != nil {
				return err
			}
			// The in-process queue would vanish with this command
			if strings.TrimSpace(a.cfg.Redis.Addr) == "" {
				return errNoRedis
			}
			q, err := a.openQueue(cmd.Context())
			if err != nil {
				return err
			}
			defer q.Close()

			job := jobs.NewJob(strings.Join(args, " "), target)
			if err := q.Enqueue(cmd.Context(), &job); err != nil {
				return err
			}

			a.logger.Info("Job queued",
				zap.String("id", job.ID.String()),
				zap.String("keyword", job.Keyword))
			if a.jsonOut {
				return writeJSON(cmd, job)
			}
			printf(cmd, "%s\n", job.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&surface, "surface", "blog", "Target surface: blog or landing")
	return cmd
}
