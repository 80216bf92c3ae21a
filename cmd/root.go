package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fastbayes/regress/sampler"
)

var verbose bool
var samplerName string
var randomSeed int64
var mcmcSample int
var burnin int
var thinning int
var aSigma float64
var bSigma float64
var aTau float64
var aLambda float64

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "regress",
	Short: "Fast Bayesian regression with shrinkage priors",
	Long: `regress fits Bayesian linear and logistic regression by Gibbs
sampling. Among other features:

  - Normal (ridge-type) and horseshoe shrinkage priors
  - Automatic switching between observation-major and predictor-major
    update routes based on the problem shape
  - Polya-Gamma augmentation for the logistic likelihood
  - Built-in simulation benchmarks with known ground truth
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("regress\n")
		fmt.Printf("Verbose:  %v\n", verbose)
		fmt.Printf("Sampler:  %s\n", samplerName)
		fmt.Printf("Rnd Seed: %d\n", randomSeed)
		fmt.Printf("\nRun 'regress simlm' or 'regress simlogit' for a benchmark.\n")
	},
}

func chainConfig() sampler.Config {
	return sampler.Config{
		MCMCSample: mcmcSample,
		Burnin:     burnin,
		Thinning:   thinning,
		ASigma:     aSigma,
		BSigma:     bSigma,
		ATau:       aTau,
		ALambda:    aLambda,
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")
	rootCmd.PersistentFlags().StringVarP(&samplerName, "sampler", "s", "horseshoe", "Name of sampler to use (normal, horseshoe, horseshoe-hd, horseshoe-slice)")
	rootCmd.PersistentFlags().Int64VarP(&randomSeed, "seed", "r", 1, "Random seed to use")

	def := sampler.DefaultConfig()
	rootCmd.PersistentFlags().IntVar(&mcmcSample, "mcmc-sample", def.MCMCSample, "Number of retained MCMC draws")
	rootCmd.PersistentFlags().IntVar(&burnin, "burnin", def.Burnin, "Number of burn-in iterations")
	rootCmd.PersistentFlags().IntVar(&thinning, "thinning", def.Thinning, "Iterations per retained draw")
	rootCmd.PersistentFlags().Float64Var(&aSigma, "a-sigma", def.ASigma, "Inverse-gamma shape for the noise variance")
	rootCmd.PersistentFlags().Float64Var(&bSigma, "b-sigma", def.BSigma, "Inverse-gamma rate for the noise variance")
	rootCmd.PersistentFlags().Float64Var(&aTau, "a-tau", def.ATau, "Half-Cauchy scale for the global shrinkage")
	rootCmd.PersistentFlags().Float64Var(&aLambda, "a-lambda", def.ALambda, "Half-Cauchy scale for the local shrinkage")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
