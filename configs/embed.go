package configs

import _ "embed"

// DefaultProperties is used when no properties file is found on disk.
//
//go:embed application.yml
var DefaultProperties []byte

// DefaultMessages is used when no messages file is found on disk.
//
//go:embed messages.yml
var DefaultMessages []byte
