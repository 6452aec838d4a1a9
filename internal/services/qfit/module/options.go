package module

import (
	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/platform/config"
	perr "flowqfit/internal/platform/errors"
	"flowqfit/internal/platform/net/http/bind"
	"flowqfit/internal/services/qfit/domain"
)

// Options holds configuration settings for the qfit module
type Options struct {
	Name           string  `env:"NAME"`
	Harmonic       int     `env:"HARMONIC" validate:"min=1"`
	QMin           float64 `env:"Q_MIN"`
	QMax           float64 `env:"Q_MAX" validate:"gtfield=QMin"`
	QNbins         int     `env:"Q_NBINS" validate:"min=1"`
	MultMin        float64 `env:"MULT_MIN"`
	MultMax        float64 `env:"MULT_MAX" validate:"gtfield=MultMin"`
	MultNbins      int     `env:"MULT_NBINS" validate:"min=1"`
	UseWeights     bool    `env:"USE_WEIGHTS"`
	UsePhiWeights  bool    `env:"USE_PHI_WEIGHTS"`
	BookOnlyBasic  bool    `env:"BOOK_ONLY_BASIC"`
	StoreQVsMult   bool    `env:"STORE_Q_VS_MULT"`
	DoFit          bool    `env:"DO_FIT"`
	ExactNoRPs     int     `env:"EXACT_NO_RPS" validate:"min=0"`
	MultiplicityIs string  `env:"MULTIPLICITY_IS" validate:"oneof=rp external qvector"`
}

// Defaults returns the built-in task configuration
func Defaults() Options {
	return Options{
		Name:           domain.TaskName,
		Harmonic:       2,
		QMin:           0,
		QMax:           100,
		QNbins:         10000,
		MultMin:        0,
		MultMax:        10000,
		MultNbins:      1000,
		BookOnlyBasic:  true,
		DoFit:          true,
		MultiplicityIs: flowevent.MultRP.String(),
	}
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	d := Defaults()
	qf := cfg.Prefix("CORE_QFIT_")
	return Options{
		Name:           qf.MayString("NAME", d.Name),
		Harmonic:       qf.MayInt("HARMONIC", d.Harmonic),
		QMin:           qf.MayFloat64("Q_MIN", d.QMin),
		QMax:           qf.MayFloat64("Q_MAX", d.QMax),
		QNbins:         qf.MayInt("Q_NBINS", d.QNbins),
		MultMin:        qf.MayFloat64("MULT_MIN", d.MultMin),
		MultMax:        qf.MayFloat64("MULT_MAX", d.MultMax),
		MultNbins:      qf.MayInt("MULT_NBINS", d.MultNbins),
		UseWeights:     qf.MayBool("USE_WEIGHTS", d.UseWeights),
		UsePhiWeights:  qf.MayBool("USE_PHI_WEIGHTS", d.UsePhiWeights),
		BookOnlyBasic:  qf.MayBool("BOOK_ONLY_BASIC", d.BookOnlyBasic),
		StoreQVsMult:   qf.MayBool("STORE_Q_VS_MULT", d.StoreQVsMult),
		DoFit:          qf.MayBool("DO_FIT", d.DoFit),
		ExactNoRPs:     qf.MayInt("EXACT_NO_RPS", d.ExactNoRPs),
		MultiplicityIs: qf.MayEnum("MULTIPLICITY_IS", d.MultiplicityIs, flowevent.MultiplicityNames()...),
	}
}

// Validate checks the options; failures carry ErrorCodeConfig and the offending key
func (o Options) Validate() error {
	return bind.Validate(o, perr.ErrorCodeConfig)
}

// TaskConfig converts validated options into the task configuration
func (o Options) TaskConfig() (domain.Config, error) {
	if err := o.Validate(); err != nil {
		return domain.Config{}, err
	}
	src, err := flowevent.ParseMultiplicitySource(o.MultiplicityIs)
	if err != nil {
		return domain.Config{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeConfig, "invalid multiplicity source"), "MULTIPLICITY_IS")
	}
	return domain.Config{
		Harmonic:       o.Harmonic,
		QMin:           o.QMin,
		QMax:           o.QMax,
		QNbins:         o.QNbins,
		MultMin:        o.MultMin,
		MultMax:        o.MultMax,
		MultNbins:      o.MultNbins,
		UseWeights:     o.UseWeights,
		UsePhiWeights:  o.UsePhiWeights,
		ExactNoRPs:     o.ExactNoRPs,
		MultiplicityIs: src,
		BookOnlyBasic:  o.BookOnlyBasic,
		StoreQVsMult:   o.StoreQVsMult,
		DoFit:          o.DoFit,
	}, nil
}
