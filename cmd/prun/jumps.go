package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"prunkit/internal/logger"
)

// resolveSystem accepts a system name, a system natural ID or a planet
// identifier and returns the system ID.
func resolveSystem(ctx context.Context, a *app, key string) (string, error) {
	systems, err := a.reg.Systems(ctx)
	if err != nil {
		return "", err
	}
	if sys, ok := systems.ByName(key); ok {
		return sys.ID, nil
	}
	if sys, ok := systems.ByID(key); ok {
		return sys.ID, nil
	}
	planet, err := a.reg.Planet(ctx, key)
	if err != nil {
		return "", err
	}
	return planet.SystemID, nil
}

func newJumpsCmd(a *app) *cobra.Command {
	var radius int
	cmd := &cobra.Command{
		Use:   "jumps <from> [to]",
		Short: "Count jumps between systems, or list systems within a radius",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			from, err := resolveSystem(ctx, a, args[0])
			if err != nil {
				return fail("NAV", err)
			}
			if len(args) == 1 {
				if radius <= 0 {
					return fail("NAV", fmt.Errorf("give a destination or --radius"))
				}
				return listRadius(ctx, a, args[0], from, radius)
			}
			to, err := resolveSystem(ctx, a, args[1])
			if err != nil {
				return fail("NAV", err)
			}
			pf, err := a.reg.Pathfinder(ctx)
			if err != nil {
				return fail("NAV", err)
			}
			jumps, ok := pf.Jumps(from, to)
			if !ok {
				return fail("NAV", fmt.Errorf("no route between %s and %s", args[0], args[1]))
			}
			logger.Stats("Jumps", jumps)
			printf("%s -> %s: %d jumps", args[0], args[1], jumps)
			return nil
		},
	}
	cmd.Flags().IntVar(&radius, "radius", 0, "list systems within this many jumps of <from>")
	return cmd
}

func listRadius(ctx context.Context, a *app, origin, systemID string, radius int) error {
	universe, err := a.reg.Universe(ctx)
	if err != nil {
		return fail("NAV", err)
	}
	systems, err := a.reg.Systems(ctx)
	if err != nil {
		return fail("NAV", err)
	}
	within := universe.SystemsWithinRadius(systemID, radius)

	type hop struct {
		name  string
		jumps int
	}
	hops := make([]hop, 0, len(within))
	for id, j := range within {
		name := id
		if sys, ok := systems.ByID(id); ok && sys.Name != "" {
			name = sys.Name
		}
		hops = append(hops, hop{name: name, jumps: j})
	}
	sort.Slice(hops, func(i, j int) bool {
		if hops[i].jumps != hops[j].jumps {
			return hops[i].jumps < hops[j].jumps
		}
		return hops[i].name < hops[j].name
	})

	logger.Section(fmt.Sprintf("Systems within %d jumps of %s", radius, origin))
	for _, h := range hops {
		printf("%2d  %s", h.jumps, h.name)
	}
	return nil
}
