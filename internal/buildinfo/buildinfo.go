// Package buildinfo carries the static identity printed at startup.
package buildinfo

const (
	ProjectName = "keyforge"
	GithubURL   = "https://github.com/keyforge-games/keyforge"

	Graffiti = `
  _                __
 | | _____ _   _  / _| ___  _ __ __ _  ___
 | |/ / _ \ | | || |_ / _ \| '__/ _' |/ _ \
 |   <  __/ |_| ||  _| (_) | | | (_| |  __/
 |_|\_\___|\__, ||_|  \___/|_|  \__, |\___|
           |___/                |___/
`

	GreetingCLI = "%s %s, typing speed server, %s\n"
)
