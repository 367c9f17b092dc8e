package config

const (
	_etc = "/usr/local/etc/ghl-sheets"
	_var = "/usr/local/var/ghl-sheets"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
