/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package ttflog provides the package-level diagnostics logger shared by the
// truetype parser. Parsing never aborts because of a log call; diagnostics
// are strictly informational (see the truetype package's error-handling
// design).
package ttflog

import "github.com/sirupsen/logrus"

// Log is the parser's diagnostics logger. It defaults to warn level, so the
// parser's debug-level diagnostics stay silent unless a caller raises the
// level with Log.SetLevel.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}
