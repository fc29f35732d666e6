package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"prunkit/internal/engine"
	"prunkit/internal/industry"
	"prunkit/internal/logger"
	"prunkit/internal/quantity"
	"prunkit/internal/registry"
	"prunkit/internal/world"
)

func newBaseCmd(a *app) *cobra.Command {
	var buildFlags []string
	cmd := &cobra.Command{
		Use:   "base <planet>",
		Short: "Summarize a base on a planet",
		Long: "Summarizes a planetary base: area, construction bill, workforce,\n" +
			"daily upkeep and runnable recipes. By default the base is read from\n" +
			"your FIO sites; --build plans a hypothetical one instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planet, err := a.reg.Planet(ctx, args[0])
			if err != nil {
				return fail("BAS", err)
			}
			buildings, err := a.reg.Buildings(ctx)
			if err != nil {
				return fail("BAS", err)
			}

			var base *industry.Base
			if len(buildFlags) > 0 {
				bag := quantity.BuildingBag{}
				for _, f := range buildFlags {
					ticker, n, err := parseLot(f)
					if err != nil {
						return fail("BAS", err)
					}
					if _, err := a.reg.BuildingByTicker(ctx, ticker); err != nil {
						return fail("BAS", err)
					}
					bag[ticker] += n
				}
				base = industry.NewBase(planet, bag)
			} else {
				base, err = siteBase(cmd, a, planet)
				if err != nil {
					return fail("BAS", err)
				}
			}

			ex, jumps, err := a.reg.NearestExchange(ctx, planet)
			if err != nil {
				return fail("BAS", err)
			}
			needs, err := a.reg.WorkforceNeeds(ctx)
			if err != nil {
				return fail("BAS", err)
			}

			logger.Section(fmt.Sprintf("Base on %s (%s)", planet.NaturalID, planet.Name))
			printf("buildings     %s", base.Buildings)
			printf("area          %s", humanize.CommafWithDigits(base.Area(buildings), 0))
			printf("market        %s, %d jumps away", ex.Code, jumps)

			mats := base.ConstructionMaterials(buildings)
			printf("construction  %s", mats)
			printf("  at %s      %s %s", ex.Code,
				humanize.CommafWithDigits(mats.Value(ex, quantity.Buy), 0), ex.Currency)

			pop := base.PopulationDemand(buildings)
			printf("workforce     %s", describePopulation(pop))
			unhoused := false
			for _, d := range quantity.Demographics {
				if pop[d] > 0 {
					unhoused = true
				}
			}
			if unhoused {
				mix, err := engine.OptimizeHousing(pop, industry.PlanetSource{Catalog: buildings, Planet: planet}, ex, engine.HousingCost)
				if err == nil {
					printf("  add housing %s", mix.Ceil())
				}
			}

			upkeep := base.DailyUpkeep(buildings, needs)
			maint := base.DailyMaintenance(buildings)
			printf("upkeep/day    %s", upkeep)
			printf("repairs/day   %s %s",
				humanize.CommafWithDigits(maint.Value(ex, quantity.Buy), 0), ex.Currency)
			printf("recipes       %d runnable", len(base.AvailableRecipes(buildings)))

			if popData, err := a.reg.PopulationData(ctx, planet); err == nil {
				for _, d := range quantity.Demographics {
					rep := popData[d]
					if rep.Count == 0 {
						continue
					}
					printf("pop %-11s %s heads, %s open jobs, %.0f%% happy",
						strings.ToLower(string(d)),
						humanize.CommafWithDigits(rep.Count, 0),
						humanize.CommafWithDigits(rep.OpenJobs, 0),
						rep.Happiness*100)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&buildFlags, "build", nil, "plan a base from building lots, e.g. --build 2xSME --build 1xHB1")
	return cmd
}

// siteBase loads the player's base on the planet from their FIO sites.
func siteBase(cmd *cobra.Command, a *app, planet *world.Planet) (*industry.Base, error) {
	user, err := a.reg.Username()
	if err != nil {
		return nil, err
	}
	sites, err := a.reg.Sites(cmd.Context(), user)
	if err != nil {
		return nil, err
	}
	for _, site := range sites {
		if strings.EqualFold(site.PlanetIdentifier, planet.NaturalID) || strings.EqualFold(site.PlanetName, planet.Name) {
			// Site listings already include the core module.
			return &industry.Base{Planet: planet, Buildings: site.BuildingBag()}, nil
		}
	}
	return nil, &registry.NotFoundError{Kind: "base on", Key: planet.NaturalID}
}

func describePopulation(pop quantity.Population) string {
	var parts []string
	for _, d := range quantity.Demographics {
		if v := pop[d]; v != 0 {
			parts = append(parts, fmt.Sprintf("%s %s", humanize.CommafWithDigits(v, 0), strings.ToLower(string(d))+"s"))
		}
	}
	if len(parts) == 0 {
		return "balanced"
	}
	return strings.Join(parts, ", ")
}
