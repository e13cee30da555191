// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bootstrap

import (
	"path/filepath"
	"runtime"
)

// sourceLevels is how far this file sits below the plugin root.
const sourceLevels = 3

// DirectoryFrom ascends levels directories from sourceFile.
func DirectoryFrom(sourceFile string, levels int) string {
	dir := sourceFile
	for range levels {
		dir = filepath.Dir(dir)
	}
	return dir
}

// sourceDirectory returns the plugin root derived from this file's compiled
// location. Binaries built with -trimpath need Config.PluginDir instead.
func sourceDirectory() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return DirectoryFrom(file, sourceLevels)
}

// PluginDirectory returns the absolute path of the plugin root.
func (l *Loader) PluginDirectory() string {
	return l.meta.PluginDir
}

// PluginMainFile returns the full path of the plugin's main file.
func (l *Loader) PluginMainFile() string {
	return l.meta.MainFile
}
