package config

const (
	_etc = "/usr/local/etc/com.github.leadsync"
	_var = "/usr/local/var/com.github.leadsync"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/ghl-sheets/.google/credentials.json"
)
