package sampler

import (
	"github.com/pkg/errors"

	"github.com/fastbayes/regress/buffer"
	"github.com/fastbayes/regress/rand"
)

// Chain runs a Kernel through the burn-in/thinning schedule and
// collects the retained draws. It also tracks rolling histories of
// the scalar parameters for a cheap split-half convergence check.
type Chain struct {
	Kernel      Kernel
	Cfg         Config
	Sigma2Trace *buffer.CircularFloat
	Tau2Trace   *buffer.CircularFloat
	TotalSteps  int64
}

// NewChain returns a chain ready to run. The convergence window is
// the retained draw count capped at 200 so short runs still fill it.
func NewChain(k Kernel, cfg Config) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cw := cfg.MCMCSample
	if cw > 200 {
		cw = 200
	}
	if cw < 2 {
		cw = 2 // the buffer halves its size; below 2 it holds nothing
	}
	return &Chain{
		Kernel:      k,
		Cfg:         cfg,
		Sigma2Trace: buffer.NewCircularFloat(cw),
		Tau2Trace:   buffer.NewCircularFloat(cw),
	}, nil
}

// Run executes burn-in and then the sampling schedule, returning
// exactly Cfg.MCMCSample snapshots. On any kernel error the partial
// draw sequence is discarded: a Gibbs chain with a failed sweep in
// the middle is not a sample from anything.
func (c *Chain) Run(gen *rand.Generator) ([]State, error) {
	if err := c.Kernel.Init(gen); err != nil {
		return nil, errors.Wrapf(err, "kernel %s failed to initialize", c.Kernel.Name())
	}

	for i := 0; i < c.Cfg.Burnin; i++ {
		if err := c.step(gen); err != nil {
			return nil, errors.Wrapf(err, "kernel %s failed during burn in at iteration %d", c.Kernel.Name(), i)
		}
	}

	draws := make([]State, 0, c.Cfg.MCMCSample)
	for i := 0; i < c.Cfg.MCMCSample; i++ {
		for j := 0; j < c.Cfg.Thinning; j++ {
			if err := c.step(gen); err != nil {
				return nil, errors.Wrapf(err, "kernel %s failed at iteration %d", c.Kernel.Name(), i)
			}
		}
		st := c.Kernel.Snapshot()
		draws = append(draws, st)
		c.Sigma2Trace.Add(st.Sigma2Eps)
		c.Tau2Trace.Add(st.Tau2)
	}
	return draws, nil
}

func (c *Chain) step(gen *rand.Generator) error {
	if err := c.Kernel.Step(gen); err != nil {
		return err
	}
	c.TotalSteps++
	return nil
}

// SplitHalfDiffs reports the split-half mean differences of the noise
// variance and global shrinkage traces. Values are -1 until the
// convergence window has filled.
func (c *Chain) SplitHalfDiffs() (sigma2, tau2 float64) {
	return c.Sigma2Trace.SplitHalfDiff(), c.Tau2Trace.SplitHalfDiff()
}
