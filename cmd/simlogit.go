package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fastbayes/regress/model"
	"github.com/fastbayes/regress/rand"
	"github.com/fastbayes/regress/sampler"
)

var logitN int
var logitP int
var logitQ int
var logitXCor float64
var logitXVar float64
var logitBetaSize float64

var simlogitCmd = &cobra.Command{
	Use:   "simlogit",
	Short: "Simulate a sparse logistic regression and fit it",
	Long: `simlogit generates binary y with P(y=1) = sigmoid(X beta), q nonzero
coefficients, fits it with the selected sampler, and scores both the
coefficients and the in-sample classifications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := rand.NewGenerator(randomSeed)
		if err != nil {
			return err
		}

		sim, err := model.SimLogitReg(gen, logitN, logitP, logitQ, logitXCor, logitXVar, logitBetaSize)
		if err != nil {
			return errors.Wrap(err, "simulation failed")
		}
		fmt.Printf("Simulated n=%d p=%d q=%d (design var %.1f)\n", logitN, logitP, logitQ, logitXVar)

		cfg := chainConfig()
		var res *sampler.Result
		switch samplerName {
		case "normal":
			res, err = sampler.FitNormalLogit(sim.Data, cfg, gen)
		case "horseshoe":
			res, err = sampler.FitHorseshoeLogit(sim.Data, cfg, gen)
		default:
			return errors.Errorf("unknown logistic sampler %s (use normal or horseshoe)", samplerName)
		}
		if err != nil {
			return errors.Wrapf(err, "fit with sampler %s failed", samplerName)
		}

		sse, err := model.NewSparseSSE(sim.Betacoef, res.PostMean.Betacoef)
		if err != nil {
			return err
		}
		cls := make([]float64, len(res.PostMean.Prob))
		for i, p := range res.PostMean.Prob {
			if p > 0.5 {
				cls[i] = 1
			}
		}
		acc, err := model.ClassAccuracy(cls, sim.Data.Y)
		if err != nil {
			return err
		}

		fmt.Printf("Sampler:      %s\n", samplerName)
		fmt.Printf("Elapsed:      %v\n", res.Elapsed)
		fmt.Printf("Nonzero SSE:  %.6f\n", sse.NonzeroSSE)
		fmt.Printf("Zero SSE:     %.6f\n", sse.ZeroSSE)
		fmt.Printf("Total SSE:    %.6f\n", sse.TotalSSE)
		fmt.Printf("Accuracy:     %.4f\n", acc)

		if verbose {
			rp, err := model.PearsonR(sim.Prob, res.PostMean.Prob)
			if err != nil {
				return err
			}
			fmt.Printf("Prob corr:    %.4f\n", rp)
			fmt.Printf("Post tau2:    %.6f\n", res.PostMean.Tau2)
			fmt.Printf("Split diff:   tau2 %.6f\n", res.Tau2SplitDiff)
		}
		return nil
	},
}

func init() {
	simlogitCmd.Flags().IntVarP(&logitN, "obs", "n", 2000, "Number of observations")
	simlogitCmd.Flags().IntVarP(&logitP, "preds", "p", 200, "Number of predictors")
	simlogitCmd.Flags().IntVarP(&logitQ, "nonzero", "q", 10, "Number of nonzero coefficients")
	simlogitCmd.Flags().Float64Var(&logitXCor, "x-cor", 0.9, "Shared correlation between predictors")
	simlogitCmd.Flags().Float64Var(&logitXVar, "x-var", 10.0, "Marginal variance of the predictors")
	simlogitCmd.Flags().Float64Var(&logitBetaSize, "beta-size", 5.0, "Magnitude of the nonzero coefficients")
	rootCmd.AddCommand(simlogitCmd)
}
