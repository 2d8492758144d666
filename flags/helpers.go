// Copyright 2020 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// Package flags declares the command-line flags of opera-adventure.
package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

// NewApp creates an app with sane defaults.
func NewApp(gitCommit, usage string) *cli.App {
	app := cli.NewApp()
	app.Name = "opera-adventure"
	app.Usage = usage
	app.Version = "0.2.0"
	if len(gitCommit) >= 8 {
		app.Version += "-" + gitCommit[:8]
	}
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	return app
}

// IsSet reports whether name was given to the command or to the app.
func IsSet(ctx *cli.Context, name string) bool {
	return ctx.IsSet(name) || ctx.GlobalIsSet(name)
}

// String returns the value of a string flag set on the command or the app.
func String(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	if ctx.GlobalIsSet(name) {
		return ctx.GlobalString(name)
	}
	return ctx.String(name)
}

// Int returns the value of an int flag set on the command or the app.
func Int(ctx *cli.Context, name string) int {
	if ctx.IsSet(name) {
		return ctx.Int(name)
	}
	if ctx.GlobalIsSet(name) {
		return ctx.GlobalInt(name)
	}
	return ctx.Int(name)
}

// Bool returns the value of a bool flag set on the command or the app.
func Bool(ctx *cli.Context, name string) bool {
	if ctx.IsSet(name) {
		return ctx.Bool(name)
	}
	if ctx.GlobalIsSet(name) {
		return ctx.GlobalBool(name)
	}
	return ctx.Bool(name)
}
