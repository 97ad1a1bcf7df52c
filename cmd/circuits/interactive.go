package main

import (
	"circuit-planner-service/internal/app"
	"circuit-planner-service/internal/ports"
	"circuit-planner-service/internal/services"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const ownNetwork = ""

type sessionAnswers struct {
	hub    string
	member string
	class  string
	speed  string
	rng    string
	count  string
}

func (c *cli) newInteractiveCmd() *cobra.Command {
	var pickMember bool

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for a hub and aircraft profile, then build circuits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.interactive(cmd, pickMember)
		},
	}
	cmd.Flags().BoolVar(&pickMember, "pick-member", false, "choose which alliance member's network to exclude")
	return cmd
}

func (c *cli) interactive(cmd *cobra.Command, pickMember bool) error {
	ctx := cmd.Context()

	catalog, closeCatalog, err := app.OpenCatalog(ctx, c.cfg.Catalog)
	if err != nil {
		return err
	}
	defer closeCatalog()

	exclusions, closeExclusions, err := app.OpenExclusions(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer closeExclusions()

	hubs, err := catalog.ListHubs(ctx)
	if err != nil {
		return err
	}
	if len(hubs) == 0 {
		return errors.New("the route catalog has no hubs")
	}

	hubOptions := make([]huh.Option[string], 0, len(hubs))
	for _, h := range hubs {
		hubOptions = append(hubOptions, huh.NewOption(h.Name, h.Code))
	}

	memberOptions := []huh.Option[string]{huh.NewOption("My network", ownNetwork)}
	if dir, ok := exclusions.(ports.MemberDirectory); ok && pickMember {
		members, err := dir.ListMembers(ctx)
		if err != nil {
			c.logger.Warn("listing alliance members failed", zap.Error(err))
		}
		for _, m := range members {
			memberOptions = append(memberOptions, huh.NewOption(m, m))
		}
	}

	answers := sessionAnswers{count: "1"}
	for {
		if err := sessionForm(&answers, hubOptions, memberOptions).RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		req, err := answers.request()
		if err != nil {
			return err
		}
		req.Search = app.SearchOptions(c.cfg.Search)

		plan, err := services.PlanCircuits(ctx, req, catalog, exclusions)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Planning failed: %v\n", err)
		} else {
			renderPlan(cmd.OutOrStdout(), plan)
		}

		again := false
		confirm := huh.NewConfirm().Title("Plan another session?").Value(&again)
		if err := huh.NewForm(huh.NewGroup(confirm)).RunWithContext(ctx); err != nil || !again {
			return nil
		}
	}
}

func sessionForm(a *sessionAnswers, hubs, members []huh.Option[string]) *huh.Form {
	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Hub").
			Options(hubs...).
			Value(&a.hub),
	}
	if len(members) > 1 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Whose network should be excluded?").
			Options(members...).
			Value(&a.member))
	}
	fields = append(fields,
		huh.NewInput().Title("Aircraft class").Value(&a.class).Validate(nonNegativeInt),
		huh.NewInput().Title("Aircraft speed (km/h)").Value(&a.speed).Validate(positiveInt),
		huh.NewInput().Title("Aircraft range (km)").Value(&a.rng).Validate(nonNegativeInt),
		huh.NewInput().Title("Number of circuits").Value(&a.count).Validate(circuitCount),
	)
	return huh.NewForm(huh.NewGroup(fields...))
}

func (a sessionAnswers) request() (services.PlanCircuitsRequest, error) {
	var req services.PlanCircuitsRequest
	ints := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"aircraft class", a.class, &req.ClassTier},
		{"speed", a.speed, &req.Speed},
		{"range", a.rng, &req.MaxRange},
		{"circuit count", a.count, &req.Count},
	}
	for _, f := range ints {
		n, err := strconv.Atoi(strings.TrimSpace(f.raw))
		if err != nil {
			return req, fmt.Errorf("%s: %q is not a whole number", f.name, f.raw)
		}
		*f.dst = n
	}
	req.Hub = a.hub
	req.Member = a.member
	return req, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("enter a whole number")
	}
	return n, nil
}

func nonNegativeInt(s string) error {
	n, err := parseInt(s)
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func positiveInt(s string) error {
	n, err := parseInt(s)
	if err != nil {
		return err
	}
	if n <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}

func circuitCount(s string) error {
	n, err := parseInt(s)
	if err != nil {
		return err
	}
	if n < 1 || n > services.MaxCircuits {
		return fmt.Errorf("must be between 1 and %d", services.MaxCircuits)
	}
	return nil
}
