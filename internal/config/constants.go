package config

// Interpreter identity.
const (
	AppName = "kuhi"
	Version = "0.2.0"
)

// Numeric tower parameters. FloatPrecision is the big.Float significand
// width used everywhere; FloatDigits is how many decimal digits rendering
// keeps.
const (
	FloatPrecision = 128
	FloatDigits    = 15
)

// REPL defaults.
const (
	DefaultHistoryFile = ".kuhi_history"
	ConfigFileName     = ".kuhi.yaml"
	QuitCommand        = ":q"
	PromptSuffix       = "> "
)
