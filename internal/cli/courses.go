package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"course-catalog/internal/apierr"
	"course-catalog/internal/devutil"
	"course-catalog/internal/domain"
	"course-catalog/internal/query"
)

func newCoursesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List, search and edit courses",
	}
	cmd.AddCommand(
		newCoursesListCommand(opts),
		newCoursesSearchCommand(opts),
		newCoursesGetCommand(opts),
		newCoursesCreateCommand(opts),
		newCoursesUpdateCommand(opts),
		newCoursesDeleteCommand(opts),
	)
	return cmd
}

func newCoursesListCommand(opts *RootOptions) *cobra.Command {
	var q string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.ListCourses(ctx, q)
				if err != nil {
					return err
				}
				return printResult(cmd, opts, a, res)
			})
		},
	}
	cmd.Flags().StringVarP(&q, "query", "q", "", "text to match in title, category or tags")
	return cmd
}

// searchFlags maps flag names to the query keys ParseValues reads.
var searchFlags = []struct{ flag, key, usage string }{
	{"query", "q", "text to match in title, category or tags"},
	{"category", "category", "exact category"},
	{"level", "level", "Beginner, Intermediate or Advanced"},
	{"price-min", "priceMin", "lowest price, inclusive"},
	{"price-max", "priceMax", "highest price, inclusive"},
	{"sort", "sortBy", "newest, rating, price, lessons or title"},
	{"dir", "sortDir", "asc or desc"},
	{"page", "page", "1-based page"},
	{"page-size", "pageSize", "items per page"},
}

func newCoursesSearchCommand(opts *RootOptions) *cobra.Command {
	vals := make([]string, len(searchFlags))
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter, sort and paginate courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := url.Values{}
			for i, f := range searchFlags {
				if vals[i] != "" {
					v.Set(f.key, vals[i])
				}
			}
			p, err := query.ParseValues(v)
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.SearchCourses(ctx, p)
				if err != nil {
					return err
				}
				// --fields applies to the items, the total is always shown
				return printJSON(cmd, map[string]any{
					"total": res.Data.Total,
					"items": devutil.Project(res.Data.Items, opts.Fields...),
				})
			})
		},
	}
	for i, f := range searchFlags {
		cmd.Flags().StringVar(&vals[i], f.flag, "", f.usage)
	}
	return cmd
}

func newCoursesGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.GetCourse(ctx, args[0])
				if err != nil {
					return err
				}
				if res.Data == nil {
					return apierr.NotFound("course %s not found", args[0])
				}
				return printProjected(cmd, opts, res.Data)
			})
		},
	}
}

func newCoursesCreateCommand(opts *RootOptions) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course from a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in domain.Course
			if err := json.Unmarshal([]byte(data), &in); err != nil {
				return fmt.Errorf("cli: --data: %w", err)
			}
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.CreateCourse(ctx, in)
				if err != nil {
					return err
				}
				return printResult(cmd, opts, a, res)
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "{}", "course JSON")
	return cmd
}

func newCoursesUpdateCommand(opts *RootOptions) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Patch a course with the given JSON fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parsePatch(data)
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.UpdateCourse(ctx, args[0], patch)
				if err != nil {
					return err
				}
				return printResult(cmd, opts, a, res)
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "{}", "patch JSON")
	return cmd
}

func newCoursesDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.DeleteCourse(ctx, args[0])
				if err != nil {
					return err
				}
				return printResult(cmd, opts, a, res)
			})
		},
	}
}

func newCategoriesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List distinct course categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.Categories(ctx)
				if err != nil {
					return err
				}
				return printResult(cmd, opts, a, res)
			})
		},
	}
}

func parsePatch(data string) (map[string]any, error) {
	var patch map[string]any
	if err := json.Unmarshal([]byte(data), &patch); err != nil {
		return nil, fmt.Errorf("cli: --data: %w", err)
	}
	if patch == nil {
		return nil, fmt.Errorf("cli: --data must be a JSON object")
	}
	return patch, nil
}
