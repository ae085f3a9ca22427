package cmd

import (
	_ "zing-keeper/cmd/catalog"
	_ "zing-keeper/cmd/issue"
	_ "zing-keeper/cmd/pkg"
	_ "zing-keeper/cmd/root"
	_ "zing-keeper/cmd/server"
)
