package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fastbayes/regress/model"
	"github.com/fastbayes/regress/rand"
	"github.com/fastbayes/regress/sampler"
)

var simN int
var simP int
var simQ int
var simR2 float64
var simXCor float64
var simBetaSize float64

var simlmCmd = &cobra.Command{
	Use:   "simlm",
	Short: "Simulate a sparse linear regression and fit it",
	Long: `simlm generates y = X beta + eps with q nonzero coefficients and
fits it with the selected sampler, then scores the posterior mean
against the known truth.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := rand.NewGenerator(randomSeed)
		if err != nil {
			return err
		}

		sim, err := model.SimLinearReg(gen, simN, simP, simQ, simR2, simXCor, simBetaSize)
		if err != nil {
			return errors.Wrap(err, "simulation failed")
		}
		fmt.Printf("Simulated n=%d p=%d q=%d R2=%.2f (noise var %.4f)\n",
			simN, simP, simQ, simR2, sim.Sigma2)

		cfg := chainConfig()
		var res *sampler.Result
		switch samplerName {
		case "normal":
			res, err = sampler.FitNormalLM(sim.Data, cfg, gen)
		case "horseshoe":
			res, err = sampler.FitHorseshoeLM(sim.Data, cfg, gen)
		case "horseshoe-hd":
			res, err = sampler.FitHorseshoeHDLM(sim.Data, cfg, gen)
		case "horseshoe-slice":
			res, err = sampler.FitHorseshoeSliceLM(sim.Data, cfg, gen)
		default:
			return errors.Errorf("unknown sampler %s", samplerName)
		}
		if err != nil {
			return errors.Wrapf(err, "fit with sampler %s failed", samplerName)
		}

		sse, err := model.NewSparseSSE(sim.Betacoef, res.PostMean.Betacoef)
		if err != nil {
			return err
		}
		r, err := model.PearsonR(sim.Betacoef, res.PostMean.Betacoef)
		if err != nil {
			return err
		}

		fmt.Printf("Sampler:      %s\n", samplerName)
		fmt.Printf("Elapsed:      %v\n", res.Elapsed)
		fmt.Printf("Nonzero SSE:  %.6f\n", sse.NonzeroSSE)
		fmt.Printf("Zero SSE:     %.6f\n", sse.ZeroSSE)
		fmt.Printf("Total SSE:    %.6f\n", sse.TotalSSE)
		fmt.Printf("Pearson r:    %.4f\n", r)

		if verbose {
			fmt.Printf("Post sigma2:  %.6f (true %.6f)\n", res.PostMean.Sigma2Eps, sim.Sigma2)
			fmt.Printf("Post tau2:    %.6f\n", res.PostMean.Tau2)
			fmt.Printf("Split diffs:  sigma2 %.6f, tau2 %.6f\n", res.Sigma2SplitDiff, res.Tau2SplitDiff)
			for j := 0; j < simQ; j++ {
				fmt.Printf("  beta[%d] = %8.4f (true %8.4f)\n", j, res.PostMean.Betacoef[j], sim.Betacoef[j])
			}
		}
		return nil
	},
}

func init() {
	simlmCmd.Flags().IntVarP(&simN, "obs", "n", 2000, "Number of observations")
	simlmCmd.Flags().IntVarP(&simP, "preds", "p", 200, "Number of predictors")
	simlmCmd.Flags().IntVarP(&simQ, "nonzero", "q", 6, "Number of nonzero coefficients")
	simlmCmd.Flags().Float64Var(&simR2, "r2", 0.95, "Share of response variance explained")
	simlmCmd.Flags().Float64Var(&simXCor, "x-cor", 0.9, "Shared correlation between predictors")
	simlmCmd.Flags().Float64Var(&simBetaSize, "beta-size", 1.0, "Magnitude of the nonzero coefficients")
	rootCmd.AddCommand(simlmCmd)
}
