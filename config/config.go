/*
 * dotadb
 *
 * Copyright 2026 The dotadb Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package config holds the process-wide configuration map. Settings are
read from a JSON file on disk; any key the file omits is filled in from
DefaultConfig (github.com/krotik/common/fileutil.LoadConfig's behavior) and
the merged result written back, so a fresh deployment ends up with a
self-documenting config file on its first run.
*/
package config

import (
	"fmt"
	"strconv"

	"github.com/krotik/common/fileutil"
	"github.com/krotik/common/stringutil"
)

/*
Known configuration keys.
*/
const (
	ListenHost            = "ListenHost"
	ListenPort            = "ListenPort"
	DatabasePath          = "DatabasePath"
	Backlog               = "Backlog"
	LockfileCheckInterval = "LockfileCheckInterval"
	LogLevel              = "LogLevel"
)

/*
DefaultConfig is the configuration used when no config file is given, and
the set of values filled into a loaded config file if it is missing them.
*/
var DefaultConfig = map[string]interface{}{
	ListenHost:            "0.0.0.0",
	ListenPort:            "9002",
	DatabasePath:          "dota.db",
	Backlog:               "1",
	LockfileCheckInterval: "3",
	LogLevel:              "Info",
}

/*
Config is the active configuration. It is nil until LoadConfigFile or
LoadDefaultConfig is called.
*/
var Config map[string]interface{}

/*
LoadConfigFile loads (or, if absent, creates) filename as the active
configuration, merging in any default value the file does not set.
*/
func LoadConfigFile(filename string) error {
	c, err := fileutil.LoadConfig(filename, DefaultConfig)
	if err != nil {
		return err
	}
	Config = c
	return nil
}

/*
LoadDefaultConfig makes DefaultConfig the active configuration without
touching the filesystem.
*/
func LoadDefaultConfig() {
	Config = make(map[string]interface{}, len(DefaultConfig))
	for k, v := range DefaultConfig {
		Config[k] = v
	}
}

/*
Str returns the configuration value for key as a string.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int returns the configuration value for key parsed as an int; a value
that does not parse yields 0.
*/
func Int(key string) int {
	i, _ := strconv.Atoi(Str(key))
	return i
}

/*
Bool returns the configuration value for key interpreted as a boolean
(github.com/krotik/common/stringutil.IsTrueValue's rules: "true", "yes",
"on", "ok", "1", "active" and "enabled" are all true, case-insensitively).
*/
func Bool(key string) bool {
	return stringutil.IsTrueValue(Str(key))
}
