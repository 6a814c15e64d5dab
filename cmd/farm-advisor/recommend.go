// cmd/farm-advisor/recommend.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"farm-advisor/internal/advisor"
	"farm-advisor/internal/app"
	"farm-advisor/internal/common/config"
	apperrors "farm-advisor/internal/common/errors"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/render"
	"farm-advisor/pkg/registry"

	vfi "farm-advisor/internal/workers/farmer/validate-farmer-input"
)

type recommendOptions struct {
	location      string
	landType      string
	area          float64
	budget        string
	preferredCrop string
	format        string
	timeout       time.Duration
}

func newRecommendCmd() *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Build a farming plan for one plot",
		Example: `  farm-advisor recommend --location Pune --land-type wet --area 2 --budget medium
  farm-advisor recommend --location Nashik --land-type dry --area 1.5 --budget low --preferred-crop rice --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.format != "text" && opts.format != "json" {
				return fmt.Errorf("--format must be text or json, got %q", opts.format)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			return runRecommend(ctx, cmd.OutOrStdout(), cfg, opts, newLogger(cfg))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.location, "location", "", "farm location used for weather and market lookups")
	f.StringVar(&opts.landType, "land-type", "", "land type: dry, wet, upland or lowland")
	f.Float64Var(&opts.area, "area", 0, "plot size in acres")
	f.StringVar(&opts.budget, "budget", "", "budget tier: low, medium or high")
	f.StringVar(&opts.preferredCrop, "preferred-crop", "", "crop the farmer would like to grow")
	f.StringVar(&opts.format, "format", "text", "output format: text or json")
	f.DurationVar(&opts.timeout, "timeout", 60*time.Second, "overall deadline for gathering signals")
	return cmd
}

func (o *recommendOptions) farmer() map[string]interface{} {
	doc := map[string]interface{}{
		"location": o.location,
		"landType": o.landType,
		"area":     o.area,
		"budget":   o.budget,
	}
	if o.preferredCrop != "" {
		doc["preferredCrop"] = o.preferredCrop
	}
	return doc
}

func runRecommend(ctx context.Context, out io.Writer, cfg *config.Config, opts *recommendOptions, log logger.Logger) error {
	reg, err := registry.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		return err
	}

	validated, err := vfi.NewHandler(vfi.LoadConfig(), reg.InputSchema(vfi.TaskType), log).
		Execute(ctx, &vfi.Input{Farmer: opts.farmer()})
	if err != nil {
		return describe(err)
	}

	rdb := app.OpenCache(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}
	tips, pg := app.OpenTipStore(ctx, cfg, log)
	if pg != nil {
		defer pg.Close()
	}

	svc := app.NewAdvisor(cfg, tips, app.NewSignalCache(cfg, rdb, log), log)
	result, err := svc.Recommend(ctx, validated.Farmer)
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if opts.format == "json" {
		return writeJSON(out, result)
	}
	return writeText(out, result, validated.Farmer.PreferredCrop)
}

func writeJSON(out io.Writer, result *advisor.Result) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeText(out io.Writer, result *advisor.Result, preferred string) error {
	if err := render.Signals(out, result.Signals); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	if note := render.PreferredNote(preferred, result.PreferredCropSuitable); note != "" {
		if _, err := fmt.Fprintf(out, "%s\n\n", note); err != nil {
			return err
		}
	}
	return render.Plan(out, result.Plan)
}

// describe turns a validation failure into a readable CLI error.
func describe(err error) error {
	std := apperrors.Normalize(err)
	if std.Code == apperrors.ErrCodeFarmerInputInvalid {
		return fmt.Errorf("invalid farmer input: %s", std.Details)
	}
	return err
}
