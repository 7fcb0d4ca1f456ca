package optionmodels

import "errors"

var (
	InvalidConfigErr    = errors.New("invalid option configuration")
	NumericDomainErr    = errors.New("parameter outside the model's numeric domain")
	UnknownSweepKindErr = errors.New("unknown sweep kind")
)
