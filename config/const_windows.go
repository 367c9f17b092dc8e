package config

const (
	_etc = `C:\ProgramData\ghl-sheets`

	DEFAULT_WORKDIR     = _etc + `\var`
	DEFAULT_CREDENTIALS = _etc + `\.google\credentials.json`
)
